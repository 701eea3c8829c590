package params

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAMLFile reads parameters from a YAML file. Nested mappings flatten
// into dotted keys, scalars become their string form, and sequences of
// scalars become comma-joined list values.
func LoadYAMLFile(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameter file: %w", err)
	}
	return FromYAML(data)
}

// FromYAML parses parameters from YAML bytes. See LoadYAMLFile.
func FromYAML(data []byte) (*Params, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse yaml parameters: %w", err)
	}

	values := make(map[string]string)
	if err := flattenYAML("", root, values); err != nil {
		return nil, err
	}
	return FromMap(values), nil
}

func flattenYAML(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			if err := flattenYAML(fullKey, v, out); err != nil {
				return err
			}
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				switch item.(type) {
				case map[string]any, []any:
					return fmt.Errorf("parameter %q: nested structures in lists are not supported", fullKey)
				}
				parts = append(parts, scalarString(item))
			}
			out[fullKey] = strings.Join(parts, ",")
		default:
			out[fullKey] = scalarString(v)
		}
	}
	return nil
}

func scalarString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
