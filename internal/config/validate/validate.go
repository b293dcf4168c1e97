package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	sigsyaml "sigs.k8s.io/yaml"
)

// manifestSchema is the JSON schema every build manifest must satisfy.
const manifestSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"packages": {
			"type": "array",
			"items": {"type": "string", "minLength": 1},
			"minItems": 1
		},
		"output": {"type": "string", "minLength": 1}
	},
	"required": ["packages", "output"],
	"additionalProperties": false
}`

// ValidateAgainstSchema validates JSON data against the given schema.
// name is the resource name registered with the compiler; ref optionally
// selects a sub-schema.
func ValidateAgainstSchema(name string, schema []byte, data []byte, ref string) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return fmt.Errorf("loading schema %s: %w", name, err)
	}

	target := name
	if ref != "" {
		target = name + ref
	}
	sch, err := compiler.Compile(target)
	if err != nil {
		return fmt.Errorf("compiling schema %s: %w", target, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateManifestYAML converts a YAML manifest to JSON and validates it
// against the embedded manifest schema.
func ValidateManifestYAML(data []byte) error {
	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("converting manifest to JSON: %w", err)
	}
	return ValidateAgainstSchema("manifest.schema.json", []byte(manifestSchema), jsonData, "")
}
