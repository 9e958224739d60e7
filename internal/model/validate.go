package model

import "fmt"

// ValidationError is returned by save hooks when a record would break a
// model invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
