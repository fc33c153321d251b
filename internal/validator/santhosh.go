package validator

import (
	"bytes"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DecodeJSON parses data into the representation the santhosh compiler and
// its validators expect. Numbers are kept as json.Number.
func DecodeJSON(data []byte) (JSONDocument, error) {
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// santhoshCompiler serialises access to a jsonschema.Compiler, which is not
// safe for concurrent use.
type santhoshCompiler struct {
	mu sync.Mutex
	c  *jsonschema.Compiler
}

// NewSanthoshCompiler returns a Compiler backed by santhosh-tekuri/jsonschema/v6.
// Schemas without a $schema keyword are treated as draft-07.
func NewSanthoshCompiler() Compiler {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	return &santhoshCompiler{c: c}
}

func (s *santhoshCompiler) AddSchema(id string, schemaData JSONSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.AddResource(id, schemaData)
}

func (s *santhoshCompiler) Compile(id string) (Validator, error) {
	s.mu.Lock()
	schema, err := s.c.Compile(id)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return ValidatorFunc(func(doc JSONDocument) error {
		return schema.Validate(doc)
	}), nil
}
