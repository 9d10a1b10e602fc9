package chat

import "fmt"

// ValidationError represents missing or unusable user input. It is
// always raised before any session mutation or network call, so the
// triggering operation is a strict no-op.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}
