package typesystem

import "fmt"

// MismatchError indicates an actual type that is not Equal to the expected one
type MismatchError struct {
	Expected Type
	Actual   Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", typeString(e.Expected), typeString(e.Actual))
}

func NewMismatchError(expected, actual Type) *MismatchError {
	return &MismatchError{Expected: expected, Actual: actual}
}

// Check returns a *MismatchError unless expected and actual are Equal.
// A nil expected type accepts everything.
func Check(expected, actual Type) error {
	if expected == nil || Equal(expected, actual) {
		return nil
	}
	return NewMismatchError(expected, actual)
}
