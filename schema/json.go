package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// varSchemaJSON validates the shape of a JSON schema document before we
// decode it, so malformed host payloads fail with a schema error instead
// of silently producing an empty variable set.
const varSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["variables"],
  "properties": {
    "dataset": { "type": "string" },
    "variables": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "type": { "enum": ["numeric", "categorical", "unknown"] }
        }
      }
    }
  }
}`

var varSchema = mustCompileVarSchema()

func mustCompileVarSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema://variables.json", strings.NewReader(varSchemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("schema://variables.json")
}

type jsonVariable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonSchemaDoc struct {
	Dataset   string         `json:"dataset"`
	Variables []jsonVariable `json:"variables"`
}

// LoadJSON reads a variable schema from a JSON document, as served by
// the host application's dataset-schema endpoint. The document is
// checked against an embedded JSON Schema before decoding; array order
// is the variable order.
func LoadJSON(r io.Reader) (*VarSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading schema document: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}
	if err := varSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}

	var doc jsonSchemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding schema document: %w", err)
	}

	vs := New()
	for _, v := range doc.Variables {
		vs.Add(v.Name, ParseColumnType(v.Type))
	}
	return vs, nil
}
