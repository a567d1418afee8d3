// Package validate gates client-supplied request bodies with JSON Schema
// before they reach the model or the exporter.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// reportSchema describes a FinancialReport as the client resubmits it. Values
// may still be strings here; they are coerced by the normalizer.
const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "entry": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": ["string", "number", "null"]},
        "value": {"type": ["number", "string", "null"]}
      }
    },
    "entries": {"type": "array", "items": {"$ref": "#/definitions/entry"}},
    "split": {
      "type": "object",
      "properties": {
        "current": {"$ref": "#/definitions/entries"},
        "non_current": {"$ref": "#/definitions/entries"}
      }
    },
    "operating": {
      "type": "object",
      "properties": {
        "operating": {"$ref": "#/definitions/entries"},
        "non_operating": {"$ref": "#/definitions/entries"}
      }
    },
    "report": {
      "type": "object",
      "required": ["balance_sheet", "income_statement"],
      "properties": {
        "balance_sheet": {
          "type": "object",
          "properties": {
            "assets": {"$ref": "#/definitions/split"},
            "liabilities": {"$ref": "#/definitions/split"},
            "equity": {"$ref": "#/definitions/entries"}
          }
        },
        "income_statement": {
          "type": "object",
          "properties": {
            "revenue": {"$ref": "#/definitions/operating"},
            "expenses": {"$ref": "#/definitions/operating"}
          }
        }
      }
    }
  }
}`

const chatRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["message", "financial_data"],
  "properties": {
    "message": {"type": "string", "minLength": 1, "pattern": "\\S"},
    "financial_data": {"$ref": "report.json#/definitions/report"}
  }
}`

const exportRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["financial_data"],
  "properties": {
    "financial_data": {"$ref": "report.json#/definitions/report"}
  }
}`

var (
	compileOnce  sync.Once
	compileErr   error
	chatSchema   *jsonschema.Schema
	exportSchema *jsonschema.Schema
)

func compile() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		resources := map[string]string{
			"report.json": reportSchema,
			"chat.json":   chatRequestSchema,
			"export.json": exportRequestSchema,
		}
		for name, schema := range resources {
			if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
				compileErr = fmt.Errorf("add schema %s: %w", name, err)
				return
			}
		}
		if chatSchema, compileErr = compiler.Compile("chat.json"); compileErr != nil {
			return
		}
		exportSchema, compileErr = compiler.Compile("export.json")
	})
	return compileErr
}

// ChatRequest validates a /api/chat body.
func ChatRequest(body []byte) (interface{}, error) {
	return validateBody(body, func() *jsonschema.Schema { return chatSchema })
}

// ExportRequest validates a /api/export/xlsx body.
func ExportRequest(body []byte) (interface{}, error) {
	return validateBody(body, func() *jsonschema.Schema { return exportSchema })
}

// validateBody decodes body and checks it against the schema. The decoded
// document is returned so callers do not parse twice.
func validateBody(body []byte, schema func() *jsonschema.Schema) (interface{}, error) {
	if err := compile(); err != nil {
		return nil, err
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema().Validate(v); err != nil {
		return nil, fmt.Errorf("json does not match schema: %w", err)
	}
	return v, nil
}
