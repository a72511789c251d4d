package schema

import "fmt"

// ValidationError represents a single template validation failure.
type ValidationError struct {
	Dim    int    // dimension position, -1 for template-level failures
	Reason string // human-readable reason for failure
	Value  any    // the offending value, if any
}

func (e *ValidationError) Error() string {
	if e.Dim < 0 {
		if e.Value == nil {
			return e.Reason
		}
		return fmt.Sprintf("%s (got %v)", e.Reason, e.Value)
	}
	if e.Value == nil {
		return fmt.Sprintf("dimension %d: %s", e.Dim, e.Reason)
	}
	return fmt.Sprintf("dimension %d: %s (got %v)", e.Dim, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an
// AggregateError. Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
