package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/qri-io/jsonschema"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationDetail turns validator errors into a short client message.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// Payload schemas for the result endpoints. Every field is optional and
// defaults to empty; unknown keys are tolerated.
const (
	learningStyleSchemaJSON = `{
		"type": "object",
		"properties": {
			"style": {"type": "string"},
			"description": {"type": "string"},
			"recommendations": {"type": "array", "items": {"type": "string"}}
		}
	}`

	personalitySchemaJSON = `{
		"type": "object",
		"properties": {
			"traits": {"type": "array"},
			"recommendations": {"type": "array", "items": {"type": "string"}}
		}
	}`
)

var (
	learningStyleSchema = mustSchema(learningStyleSchemaJSON)
	personalitySchema   = mustSchema(personalitySchemaJSON)
)

func mustSchema(s string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(s), rs); err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return rs
}

// validatePayload checks body against schema and returns a client-facing
// message for the first violation.
func validatePayload(ctx context.Context, schema *jsonschema.Schema, body []byte) error {
	verrs, err := schema.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if len(verrs) > 0 {
		return fmt.Errorf("%s: %s", verrs[0].PropertyPath, verrs[0].Message)
	}
	return nil
}
