package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/render_request.schema.json
var renderRequestSchema []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(renderRequestSchema))
	})
	return schema, schemaErr
}

// ValidateRenderRequest validates a raw request body against the embedded
// render_request.schema.json. Every violation is reported in the error.
func ValidateRenderRequest(body []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// DecodeRenderRequest validates and decodes a raw request body.
func DecodeRenderRequest(body []byte) (*RenderRequest, error) {
	if err := ValidateRenderRequest(body); err != nil {
		return nil, err
	}
	var req RenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode render request: %w", err)
	}
	return &req, nil
}
