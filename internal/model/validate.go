package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

// ErrSchema is wrapped by every document validation failure.
var ErrSchema = errors.New("schema validation failed")

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// ValidateDocument checks raw JSON (a whole document or a patch of
// top-level fields) against resume.schema.json.
func ValidateDocument(raw []byte) error {
	return validate(gojsonschema.NewBytesLoader(raw))
}

// ValidateStored checks a document read back from storage. A malformed
// sectionOrder is let through there; loading replaces it with the default.
func ValidateStored(raw []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	delete(doc, string(FieldSectionOrder))
	return validate(gojsonschema.NewGoLoader(doc))
}

// ValidateMap validates a generic map, such as a decoded patch.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

func validate(doc gojsonschema.JSONLoader) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}
	res, err := s.Validate(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}
