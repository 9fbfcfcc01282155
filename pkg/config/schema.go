package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "config.schema.json"

// compileSchema compiles the embedded config schema.
func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to read config schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add config schema: %w", err)
	}
	return c.Compile(schemaURL)
}

// ValidateFile checks a config file against the embedded JSON Schema. Unknown keys,
// wrong value types and out-of-range values are reported together.
func ValidateFile(path string) error {
	raw, err := LoadRaw(path)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return ValidateDocument(raw)
}

// ValidateDocument checks a decoded config document against the embedded schema.
func ValidateDocument(raw map[string]any) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so TOML and YAML values take the JSON number model.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	return sch.Validate(inst)
}
