package stakeservice

import "fmt"

// ValidationError reports a reservation request rejected before any storage
// call was made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
