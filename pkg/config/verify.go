package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var embeddedSchema string

// schemaNode is the part of a JSON schema node used for verification
type schemaNode struct {
	Ref                  string                `json:"$ref"`
	Type                 string                `json:"type"`
	Properties           map[string]schemaNode `json:"properties"`
	AdditionalProperties *bool                 `json:"additionalProperties"`
}

// VerifyAgainstEmbeddedSchema checks the YAML config document against the embedded JSON schema.
// Keys not declared by the schema and scalars in place of sections are reported.
func VerifyAgainstEmbeddedSchema(doc []byte) error {
	var schema struct {
		Ref         string                `json:"$ref"`
		Definitions map[string]schemaNode `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}
	root, ok := schema.Definitions["Config"]
	if !ok {
		return fmt.Errorf("embedded schema has no Config definition")
	}

	var values map[string]any
	if err := yaml.Unmarshal(doc, &values); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	var problems []string
	verifyNode("", values, root, schema.Definitions, &problems)
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func verifyNode(path string, values map[string]any, node schemaNode, defs map[string]schemaNode, problems *[]string) {
	for key, val := range values {
		name := key
		if path != "" {
			name = path + "." + key
		}
		prop, ok := node.Properties[key]
		if !ok {
			if node.AdditionalProperties != nil && !*node.AdditionalProperties {
				*problems = append(*problems, fmt.Sprintf("%s is not allowed", name))
			}
			continue
		}
		if prop.Ref != "" {
			prop = defs[strings.TrimPrefix(prop.Ref, "#/$defs/")]
		}
		if prop.Type != "object" || val == nil {
			continue
		}
		sub, ok := val.(map[string]any)
		if !ok {
			*problems = append(*problems, fmt.Sprintf("%s must be a section, got %v", name, val))
			continue
		}
		verifyNode(name, sub, prop, defs, problems)
	}
}

// GenerateSchema generates a JSON schema for the engine Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}

// GenerateFeedSchema generates a JSON schema for the per-feed conf.json
func GenerateFeedSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&FeedFile{}), nil
}
