package catechism

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// catalogSchema constrains custom catalog documents: contiguity is checked
// separately in parse, this catches structural mistakes (missing fields,
// wrong types, unknown parts) with a field-level error message.
const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["sections"],
  "properties": {
    "sections": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["number", "part", "title", "questions"],
        "properties": {
          "number": {"type": "integer", "minimum": 1},
          "part": {"enum": ["misery", "deliverance", "gratitude"]},
          "title": {"type": "string", "minLength": 1},
          "questions": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["number", "question", "answer"],
              "properties": {
                "number": {"type": "integer", "minimum": 1},
                "question": {"type": "string", "minLength": 1},
                "answer": {"type": "string", "minLength": 1}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.json", strings.NewReader(catalogSchema)); err != nil {
		panic(fmt.Sprintf("catechism: invalid catalog schema: %v", err))
	}
	return compiler.MustCompile("catalog.json")
}

// validateCatalog checks a YAML catalog document against the schema.
func validateCatalog(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	// The validator expects json.Unmarshal value shapes, so round-trip the
	// YAML value tree through JSON.
	jsonDoc, err := jsonShape(doc)
	if err != nil {
		return err
	}
	if err := compiledSchema.Validate(jsonDoc); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}

func jsonShape(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("catalog is not JSON-representable: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
