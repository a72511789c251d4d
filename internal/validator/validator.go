package validator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/strata/pkg/netdef"
	"github.com/aretw0/strata/pkg/schema"
)

// ValidateNetwork checks a network definition before planning: every
// wire must reference an existing layer and port on both ends, and every
// declared shape must be well-formed. Failures aggregate so the author
// sees all of them at once.
//
// Layers unreachable from any source layer (no inputs) are legal but
// suspicious; they are logged, not rejected.
func ValidateNetwork(reg *netdef.Registry, logger *slog.Logger) error {
	var errs []string

	for _, layer := range reg.Layers() {
		validateShapes(layer, &errs)
		for _, w := range layer.Outgoing {
			validateWire(reg, w, &errs)
		}
	}

	for _, name := range unreachableLayers(reg) {
		logger.Warn("layer is not reachable from any source layer", "layer", name)
	}

	if len(errs) > 0 {
		msg := fmt.Sprintf("%d wiring errors:", len(errs))
		for _, e := range errs {
			msg += "\n  - " + e
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// ValidateNetworkStrict applies the same checks but treats unreachable
// layers as errors instead of warnings.
func ValidateNetworkStrict(reg *netdef.Registry, logger *slog.Logger) error {
	if err := ValidateNetwork(reg, logger); err != nil {
		return err
	}
	if missing := unreachableLayers(reg); len(missing) > 0 {
		return fmt.Errorf("layers not reachable from any source layer: %s", strings.Join(missing, ", "))
	}
	return nil
}

func validateShapes(layer *netdef.Layer, errs *[]string) {
	sections := []struct {
		name string
		s    netdef.Structure
	}{
		{"inputs", layer.Inputs},
		{"outputs", layer.Outputs},
		{"parameters", layer.Params},
		{"internals", layer.Internals},
	}
	for _, sec := range sections {
		for _, f := range sec.s {
			if err := f.Shape.Validate(); err != nil {
				for _, sub := range flattenValidation(err) {
					*errs = append(*errs, fmt.Sprintf("%s.%s.%s: %v", layer.Name, sec.name, f.Name, sub))
				}
			}
		}
	}
}

func flattenValidation(err error) []error {
	if subs := schema.ValidationErrors(err); subs != nil {
		return subs
	}
	return []error{err}
}

func validateWire(reg *netdef.Registry, w netdef.Wire, errs *[]string) {
	src, ok := reg.Get(w.SrcLayer)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("wire references missing layer %q", w.SrcLayer))
	} else if _, ok := src.Outputs.Get(w.Output); !ok {
		*errs = append(*errs, fmt.Sprintf("layer %q has no output %q", w.SrcLayer, w.Output))
	}

	dst, ok := reg.Get(w.DstLayer)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("wire references missing layer %q", w.DstLayer))
	} else if _, ok := dst.Inputs.Get(w.Input); !ok {
		*errs = append(*errs, fmt.Sprintf("layer %q has no input %q", w.DstLayer, w.Input))
	}
}

// unreachableLayers crawls the wire graph from all source layers
// (layers without inputs) and reports the layers never visited.
func unreachableLayers(reg *netdef.Registry) []string {
	visited := make(map[string]bool)
	var queue []string
	for _, layer := range reg.Layers() {
		if len(layer.Inputs) == 0 {
			queue = append(queue, layer.Name)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		layer, ok := reg.Get(current)
		if !ok {
			continue
		}
		for _, w := range layer.Outgoing {
			if !visited[w.DstLayer] {
				queue = append(queue, w.DstLayer)
			}
		}
	}

	var missing []string
	for _, layer := range reg.Layers() {
		if !visited[layer.Name] {
			missing = append(missing, layer.Name)
		}
	}
	return missing
}
