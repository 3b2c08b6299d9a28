package provider

import (
	"fmt"
)

// InstanceError wraps an error with instance context (type and name).
type InstanceError struct {
	Type string
	Name string
	Err  error
}

func (e InstanceError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Type, e.Name, e.Err)
}

func (e InstanceError) Unwrap() error {
	return e.Err
}

// NewInstanceError creates a new InstanceError.
func NewInstanceError(checkType, name string, err error) InstanceError {
	return InstanceError{Type: checkType, Name: name, Err: err}
}
