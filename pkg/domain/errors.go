package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPlanNotFound is returned when a plan fingerprint cannot be found
// in a store.
var ErrPlanNotFound = errors.New("plan not found")

// OverlappingForcedOrderError reports endpoints claimed by more than one
// forced-order group. It aborts planning before any hub is built.
type OverlappingForcedOrderError struct {
	Paths []string // the shared endpoints
}

func (e *OverlappingForcedOrderError) Error() string {
	return fmt.Sprintf("forced orders may not overlap, but %s appear(s) in multiple groups",
		strings.Join(e.Paths, ", "))
}

// InconsistentBufferTypeError reports a hub whose producers disagree on
// their buffer type.
type InconsistentBufferTypeError struct {
	Sources []string
	Types   []BufferType
}

func (e *InconsistentBufferTypeError) Error() string {
	kinds := make([]string, len(e.Types))
	for i, t := range e.Types {
		kinds[i] = t.String()
	}
	return fmt.Sprintf("hub sources %s have mixed buffer types (%s)",
		strings.Join(e.Sources, ", "), strings.Join(kinds, ", "))
}

// UnsatisfiableLayoutError reports a hub for which no producer ordering
// gives every consumer a single contiguous run. The connectivity itself
// must change; the planner never retries.
type UnsatisfiableLayoutError struct {
	Sources []string
	Sinks   []string
}

func (e *UnsatisfiableLayoutError) Error() string {
	return fmt.Sprintf("failed to lay out buffers for sources [%s] feeding sinks [%s]: "+
		"no ordering yields contiguous reads, please change connectivity",
		strings.Join(e.Sources, ", "), strings.Join(e.Sinks, ", "))
}

// UnresolvedPathError reports a dotted path that does not resolve in the
// layout tree, naming the segment that failed.
type UnresolvedPathError struct {
	Path    string
	Segment string
}

func (e *UnresolvedPathError) Error() string {
	return fmt.Sprintf("path %q could not be resolved, segment %q missing", e.Path, e.Segment)
}
