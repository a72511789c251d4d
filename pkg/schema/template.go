package schema

import (
	"github.com/aretw0/strata/pkg/domain"
)

// Dim is one dimension of a shape template. Positive values are fixed
// feature sizes; the negative constants are wildcards resolved at
// execution time.
type Dim int

const (
	// Batch is the per-sample wildcard dimension.
	Batch Dim = -1
	// Time is the per-step wildcard dimension.
	Time Dim = -2
)

// Wildcard reports whether the dimension is resolved at execution time.
func (d Dim) Wildcard() bool { return d < 0 }

func (d Dim) attr() any {
	switch d {
	case Batch:
		return "B"
	case Time:
		return "T"
	default:
		return int(d)
	}
}

// Template is a concrete shape template: an ordered dimension list plus
// an optional context size (extra leading padding for endpoints that
// read back in time).
type Template struct {
	dims    []Dim
	context int
}

// New builds a template from an explicit dimension list. Used when
// reconstructing templates from serialized attribute mappings.
func New(dims ...Dim) Template {
	return Template{dims: append([]Dim(nil), dims...)}
}

// Of builds a template of fixed dimensions only (global buffers).
func Of(dims ...int) Template {
	t := Template{dims: make([]Dim, len(dims))}
	for i, d := range dims {
		t.dims[i] = Dim(d)
	}
	return t
}

// PerBatch builds a template scaled by batch size: (B, feature...).
func PerBatch(feature ...int) Template {
	return prefixed([]Dim{Batch}, feature)
}

// PerStep builds a template scaled by time and batch: (T, B, feature...).
func PerStep(feature ...int) Template {
	return prefixed([]Dim{Time, Batch}, feature)
}

func prefixed(lead []Dim, feature []int) Template {
	t := Template{dims: append([]Dim(nil), lead...)}
	for _, d := range feature {
		t.dims = append(t.dims, Dim(d))
	}
	return t
}

// WithContext returns a copy of the template carrying a context size.
func (t Template) WithContext(n int) Template {
	c := t
	c.dims = append([]Dim(nil), t.dims...)
	c.context = n
	return c
}

// Dims returns a copy of the dimension list.
func (t Template) Dims() []Dim {
	return append([]Dim(nil), t.dims...)
}

// Context returns the declared context size (0 for most endpoints).
func (t Template) Context() int { return t.context }

// ElementCount returns the number of stored elements per logical unit:
// the product of the fixed feature dimensions. Wildcards do not count;
// they scale the whole buffer, not the endpoint's slice.
func (t Template) ElementCount() int {
	n := 1
	for _, d := range t.dims {
		if !d.Wildcard() {
			n *= int(d)
		}
	}
	if len(t.dims) == 0 {
		return 0
	}
	return n
}

// BufferType derives the storage tag from the wildcard dimensions.
func (t Template) BufferType() domain.BufferType {
	for _, d := range t.dims {
		if d == Time {
			return domain.BufferSequence
		}
	}
	for _, d := range t.dims {
		if d == Batch {
			return domain.BufferBatch
		}
	}
	return domain.BufferGlobal
}

// Attrs serializes the template to a plain attribute mapping for the
// layout tree interchange format.
func (t Template) Attrs() map[string]any {
	shape := make([]any, len(t.dims))
	for i, d := range t.dims {
		shape[i] = d.attr()
	}
	attrs := map[string]any{"@shape": shape}
	if t.context != 0 {
		attrs["@context_size"] = t.context
	}
	return attrs
}

// Validate checks the wildcard placement rules:
//   - T requires B, and wildcards precede all fixed dimensions
//   - at least one fixed dimension, every fixed dimension positive
//   - context size is non-negative and only meaningful with T
func (t Template) Validate() error {
	var errs []error
	fixed := 0
	seenFixed := false
	hasBatch, hasTime := false, false
	for i, d := range t.dims {
		switch {
		case d == Batch:
			hasBatch = true
			if seenFixed {
				errs = append(errs, &ValidationError{Dim: i, Reason: "wildcard B after fixed dimension"})
			}
		case d == Time:
			hasTime = true
			if seenFixed {
				errs = append(errs, &ValidationError{Dim: i, Reason: "wildcard T after fixed dimension"})
			}
		case d <= 0:
			errs = append(errs, &ValidationError{Dim: i, Reason: "fixed dimension must be positive", Value: int(d)})
		default:
			seenFixed = true
			fixed++
		}
	}
	if fixed == 0 {
		errs = append(errs, &ValidationError{Dim: -1, Reason: "template needs at least one fixed dimension"})
	}
	if hasTime && !hasBatch {
		errs = append(errs, &ValidationError{Dim: -1, Reason: "wildcard T requires wildcard B"})
	}
	if t.context < 0 {
		errs = append(errs, &ValidationError{Dim: -1, Reason: "context size must be non-negative", Value: t.context})
	}
	if t.context > 0 && !hasTime {
		errs = append(errs, &ValidationError{Dim: -1, Reason: "context size requires wildcard T"})
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return &AggregateError{Errors: errs}
}
