// Package serialization provides interchange adapters for types that do not
// serialize naturally: compiled regular expressions round-trip as their
// source text.
package serialization

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Pattern is a compiled regular expression that serializes as its source
// text and recompiles on decode.
type Pattern struct {
	*regexp.Regexp
}

// CompilePattern compiles expr into a Pattern.
func CompilePattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compile pattern: %w", err)
	}
	return Pattern{Regexp: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on invalid
// expressions. Use only for patterns known at compile time.
func MustCompilePattern(expr string) Pattern {
	return Pattern{Regexp: regexp.MustCompile(expr)}
}

// MarshalText serializes the pattern source, covering both JSON and YAML
// encoders.
func (p Pattern) MarshalText() ([]byte, error) {
	if p.Regexp == nil {
		return []byte{}, nil
	}
	return []byte(p.Regexp.String()), nil
}

// UnmarshalText recompiles the pattern from its source text.
func (p *Pattern) UnmarshalText(data []byte) error {
	re, err := regexp.Compile(string(data))
	if err != nil {
		return fmt.Errorf("decode pattern: %w", err)
	}
	p.Regexp = re
	return nil
}

// MarshalYAML serializes the pattern source.
func (p Pattern) MarshalYAML() (any, error) {
	if p.Regexp == nil {
		return "", nil
	}
	return p.Regexp.String(), nil
}

// UnmarshalYAML recompiles the pattern from its source text.
func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	var expr string
	if err := value.Decode(&expr); err != nil {
		return fmt.Errorf("decode pattern: %w", err)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("decode pattern: %w", err)
	}
	p.Regexp = re
	return nil
}
