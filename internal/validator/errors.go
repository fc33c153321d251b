package validator

import (
	"fmt"
)

// InvalidSchemaError reports a schema that could not be decoded or compiled.
type InvalidSchemaError struct {
	ID      string
	Wrapped error
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("schema %s cannot be compiled: %v", e.ID, e.Wrapped)
}

func (e *InvalidSchemaError) Unwrap() error {
	return e.Wrapped
}
