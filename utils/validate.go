package utils

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Structured settings arrive as JSON (nested in a JSON body or as a
// JSON-encoded multipart field) and are schema-checked before storage.

var workoutPlanSchema = mustSchema(`{
	"type": "object",
	"required": ["daysOfWeek"],
	"additionalProperties": false,
	"properties": {
		"daysOfWeek": {
			"type": "array",
			"uniqueItems": true,
			"items": { "type": "integer", "minimum": 0, "maximum": 6 }
		}
	}
}`)

var shamePostSettingsSchema = mustSchema(`{
	"type": "object",
	"required": ["isEnabled"],
	"additionalProperties": false,
	"properties": {
		"isEnabled": { "type": "boolean" },
		"noGymStreakLimit": { "type": "integer", "minimum": 0 }
	}
}`)

func mustSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(err)
	}
	return schema
}

func ValidateWorkoutPlan(raw []byte) error {
	return validate(workoutPlanSchema, raw, "workoutPlan")
}

func ValidateShamePostSettings(raw []byte) error {
	return validate(shamePostSettingsSchema, raw, "shamePostSettings")
}

func validate(schema *gojsonschema.Schema, raw []byte, field string) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid %s: %s", field, strings.Join(msgs, "; "))
	}
	return nil
}
