// Package symbols provides an immutable interned string type. Symbols with
// equal text share one canonical copy, so equality is a single comparison and
// repeated keys (document IDs, category labels) cost one allocation total.
package symbols

import (
	"encoding/json"
	"fmt"
	"unique"

	"gopkg.in/yaml.v3"
)

// Symbol is an interned string. The zero value behaves as the empty symbol.
type Symbol struct {
	handle unique.Handle[string]
}

// From interns s and returns its Symbol.
func From(s string) Symbol {
	return Symbol{handle: unique.Make(s)}
}

// String returns the symbol's text.
func (s Symbol) String() string {
	if s.handle == (unique.Handle[string]{}) {
		return ""
	}
	return s.handle.Value()
}

// MarshalJSON serializes the symbol as a plain JSON string.
func (s Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON interns the decoded string.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("unmarshal symbol: %w", err)
	}
	*s = From(text)
	return nil
}

// MarshalYAML serializes the symbol as a plain YAML string.
func (s Symbol) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML interns the decoded string.
func (s *Symbol) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return fmt.Errorf("unmarshal symbol: %w", err)
	}
	*s = From(text)
	return nil
}

// MarshalText allows symbols to serve as map keys in JSON objects.
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText interns the decoded text.
func (s *Symbol) UnmarshalText(data []byte) error {
	*s = From(string(data))
	return nil
}
