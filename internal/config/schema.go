package config

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema enforces the shape of the configuration document
// before any structural or date-arithmetic validation runs: required
// top-level keys, per-shift required keys, and per-work-pattern
// required keys.
const documentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": [
		"start_date", "end_date", "no_of_employees", "no_of_shifts",
		"shifts", "work_pattern", "min_time_between_shifts", "employees"
	],
	"properties": {
		"start_date": {"type": "string"},
		"end_date": {"type": "string"},
		"no_of_employees": {"type": "integer", "minimum": 1},
		"no_of_shifts": {"type": "integer", "minimum": 1},
		"min_time_between_shifts": {"type": "integer", "minimum": 0},
		"quality_threshold": {"type": "integer"},
		"threshold": {"type": "integer"},
		"csp_time_limit_ms": {"type": "integer"},
		"shifts": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["shift_id", "start_time", "end_time", "min_no_of_employees", "max_no_of_employees"],
				"properties": {
					"shift_id": {"type": "integer", "minimum": 1},
					"start_time": {"type": "string"},
					"end_time": {"type": "string"},
					"min_no_of_employees": {"type": "integer", "minimum": 0},
					"max_no_of_employees": {"type": "integer", "minimum": 0}
				}
			}
		},
		"work_pattern": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["pettern_id", "no_working_days", "no_off_days"],
				"properties": {
					"pettern_id": {"type": "integer", "minimum": 1},
					"no_working_days": {"type": "integer", "minimum": 0},
					"no_off_days": {"type": "integer", "minimum": 0},
					"strict_weekend_off": {"type": "boolean"}
				}
			}
		},
		"employees": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["preferred_work_pattern", "last_shift", "quality"],
				"properties": {
					"preferred_work_pattern": {"type": "integer", "minimum": 1},
					"no_work_days_from_previous_pattern": {"type": "integer", "minimum": 0},
					"no_off_days_from_previous_pattern": {"type": "integer", "minimum": 0},
					"last_shift": {"type": "integer", "minimum": 0},
					"quality": {"type": "array", "items": {"type": "integer"}},
					"shift_preference": {"type": "array", "items": {"type": "integer"}},
					"shift_exclusion": {"type": "array", "items": {"type": "integer"}},
					"leaves": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["start_date", "end_date"],
							"properties": {
								"start_date": {"type": "string"},
								"end_date": {"type": "string"}
							}
						}
					}
				}
			}
		}
	}
}`

// validateSchema runs the document against documentSchema and returns
// one error per schema violation, so Load can report every schema
// violation in one ValidationError instead of stopping at the first.
// Structural checks run only once the document passes the schema.
func validateSchema(raw []byte) []error {
	schemaLoader := gojsonschema.NewStringLoader(documentSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return []error{fmt.Errorf("schema validation: %w", err)}
	}
	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, fmt.Errorf("schema: %s", e.String()))
	}
	return errs
}
