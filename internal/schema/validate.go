package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceName = "schema.json"

// Validator checks JSON documents against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

func Compile(schemaJSON json.RawMessage) (*Validator, error) {
	if len(schemaJSON) == 0 {
		return nil, fmt.Errorf("schema is empty")
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resourceName, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("schema resource: %w", err)
	}
	s, err := c.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

func (v *Validator) Validate(raw json.RawMessage) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty json")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	return v.schema.Validate(doc)
}

// Validate compiles schemaJSON and validates raw against it. An empty schema
// accepts any document.
func Validate(schemaJSON json.RawMessage, raw json.RawMessage) error {
	if len(schemaJSON) == 0 {
		return nil
	}
	v, err := Compile(schemaJSON)
	if err != nil {
		return err
	}
	return v.Validate(raw)
}
