package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ReportSchema is the JSON Schema of the report payload.
func ReportSchema() map[string]any {
	count := map[string]any{"type": "integer", "minimum": 0}
	ratio := map[string]any{"type": "number", "minimum": 0}
	date := map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}

	daily := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"date", "hunters", "ducks", "ducksPerHunter"},
		"properties": map[string]any{
			"date":           date,
			"hunters":        count,
			"ducks":          count,
			"ducksPerHunter": ratio,
		},
	}
	record := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"blind", "totalHunters", "totalDucks", "ducksPerHunter", "daily"},
		"properties": map[string]any{
			"blind":          map[string]any{"type": "string", "minLength": 1},
			"totalHunters":   count,
			"totalDucks":     count,
			"ducksPerHunter": ratio,
			"daily":          map[string]any{"type": "array", "items": daily},
		},
	}
	side := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"areaBlinds", "unitBlinds"},
		"properties": map[string]any{
			"areaBlinds": map[string]any{"type": "array", "items": record},
			"unitBlinds": map[string]any{"type": "array", "items": record},
		},
	}
	weather := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"tempMin":       map[string]any{"type": "number"},
			"tempMax":       map[string]any{"type": "number"},
			"precipitation": map[string]any{"type": "number", "minimum": 0},
			"windBearing":   map[string]any{"type": "number", "minimum": 0, "maximum": 360},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"source", "dates", "eastside", "westside"},
		"properties": map[string]any{
			"source":   map[string]any{"type": "string"},
			"dates":    map[string]any{"type": "array", "items": date},
			"eastside": side,
			"westside": side,
			"weather":  map[string]any{"type": "object", "additionalProperties": weather},
		},
	}
}

// compiledReportSchema holds ReportSchema compiled once per process.
var compiledReportSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(ReportSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal report schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("report.schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add report schema: %w", err)
	}
	schema, err := compiler.Compile("report.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile report schema: %w", err)
	}
	return schema, nil
})

// ValidateReportJSON checks an encoded report against ReportSchema.
func ValidateReportJSON(data []byte) error {
	schema, err := compiledReportSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode report json: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("report json does not match schema: %w", err)
	}
	return nil
}
