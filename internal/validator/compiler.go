// Package validator checks JSON documents against JSON Schemas.
package validator

// A JSONDocument is a parsed JSON document, as produced by DecodeJSON.
type JSONDocument interface{}

// A JSONSchema is a parsed JSON document holding a JSON Schema. A Compiler
// must compile it before use.
type JSONSchema JSONDocument

// Validator represents something which can be used to validate a JSON document.
type Validator interface {
	// Validate validates JSON document.
	Validate(v JSONDocument) error
}

// ValidatorFunc lets a plain function act as a Validator.
type ValidatorFunc func(doc JSONDocument) error

func (f ValidatorFunc) Validate(doc JSONDocument) error {
	return f(doc)
}

// Compiler defines a JSON Schema compiler. Schemas are registered with
// AddSchema and then compiled by ID.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler.
	AddSchema(id string, data JSONSchema) error

	// Compile creates a Validator from the JSONSchema previously added with the given ID.
	Compile(id string) (Validator, error)
}

// CompileJSON decodes raw, registers it under id and compiles it.
func CompileJSON(c Compiler, id string, raw []byte) (Validator, error) {
	schema, err := DecodeJSON(raw)
	if err != nil {
		return nil, &InvalidSchemaError{ID: id, Wrapped: err}
	}
	if err = c.AddSchema(id, schema); err != nil {
		return nil, &InvalidSchemaError{ID: id, Wrapped: err}
	}
	v, err := c.Compile(id)
	if err != nil {
		return nil, &InvalidSchemaError{ID: id, Wrapped: err}
	}
	return v, nil
}
