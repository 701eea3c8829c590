// Package params provides hierarchical key-value run parameters. Keys are
// namespaced with dots ("corpus.docs.list"); values are strings converted on
// access. Parameter sets are immutable once built.
package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Params is an immutable set of dot-namespaced string parameters.
type Params struct {
	namespace []string
	values    map[string]string
}

// FromMap creates a parameter set from a plain map, rooted at the empty
// namespace.
func FromMap(values map[string]string) *Params {
	return FromMapNamespaced(values, nil)
}

// FromMapNamespaced creates a parameter set from a plain map, recording the
// namespace it was drawn from. The namespace only affects error messages and
// Namespace accessors, not lookups.
func FromMapNamespaced(values map[string]string, namespace []string) *Params {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	ns := make([]string, len(namespace))
	copy(ns, namespace)
	return &Params{namespace: ns, values: copied}
}

// Builder accumulates parameters before building an immutable Params.
type Builder struct {
	namespace []string
	values    map[string]string
}

// NewBuilder creates a Builder rooted at the empty namespace.
func NewBuilder() *Builder {
	return NewBuilderNamespaced(nil)
}

// NewBuilderNamespaced creates a Builder rooted at the given namespace.
func NewBuilderNamespaced(namespace []string) *Builder {
	ns := make([]string, len(namespace))
	copy(ns, namespace)
	return &Builder{namespace: ns, values: make(map[string]string)}
}

// Put sets a single parameter, overwriting any earlier value.
func (b *Builder) Put(key, value string) *Builder {
	b.values[key] = value
	return b
}

// PutAll sets every parameter in values.
func (b *Builder) PutAll(values map[string]string) *Builder {
	for k, v := range values {
		b.values[k] = v
	}
	return b
}

// Build creates the immutable parameter set.
func (b *Builder) Build() *Params {
	return FromMapNamespaced(b.values, b.namespace)
}

// SplitNamespace splits a dotted namespace string into its parts. The empty
// string is the root namespace with no parts.
func SplitNamespace(namespace string) []string {
	if namespace == "" {
		return []string{}
	}
	return strings.Split(namespace, ".")
}

// JoinNamespace joins namespace parts with dots.
func JoinNamespace(parts []string) string {
	return strings.Join(parts, ".")
}

// Namespace returns the dotted namespace this parameter set was drawn from.
func (p *Params) Namespace() string {
	return JoinNamespace(p.namespace)
}

// NamespaceAsList returns the namespace parts.
func (p *Params) NamespaceAsList() []string {
	ns := make([]string, len(p.namespace))
	copy(ns, p.namespace)
	return ns
}

// IsPresent reports whether key is defined.
func (p *Params) IsPresent(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys returns all defined keys in sorted order.
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CopyNamespace returns the parameters under prefix, with the prefix
// stripped from their keys and appended to the namespace.
func (p *Params) CopyNamespace(prefix string) *Params {
	sub := make(map[string]string)
	for k, v := range p.values {
		if rest, ok := strings.CutPrefix(k, prefix+"."); ok {
			sub[rest] = v
		}
	}
	return FromMapNamespaced(sub, append(p.NamespaceAsList(), SplitNamespace(prefix)...))
}

// GetString returns the value of key, failing if it is not defined.
func (p *Params) GetString(key string) (string, error) {
	v, ok := p.values[key]
	if !ok {
		return "", &MissingParameterError{Key: key, Namespace: p.Namespace()}
	}
	return v, nil
}

// GetOptionalString returns the value of key if defined.
func (p *Params) GetOptionalString(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// GetStringOr returns the value of key, or fallback if it is not defined.
func (p *Params) GetStringOr(key, fallback string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return fallback
}

// GetInteger returns the value of key converted to an int.
func (p *Params) GetInteger(key string) (int, error) {
	v, err := p.GetString(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, p.conversionError(key, v, "integer")
	}
	return n, nil
}

// GetBoolean returns the value of key converted to a bool.
func (p *Params) GetBoolean(key string) (bool, error) {
	v, err := p.GetString(key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, p.conversionError(key, v, "boolean")
	}
	return b, nil
}

// GetStringList returns the value of key split on commas. An empty value is
// an empty list.
func (p *Params) GetStringList(key string) ([]string, error) {
	v, err := p.GetString(key)
	if err != nil {
		return nil, err
	}
	return splitList(v), nil
}

// GetIntegerList returns the value of key as a comma-separated integer list.
func (p *Params) GetIntegerList(key string) ([]int, error) {
	parts, err := p.GetStringList(key)
	if err != nil {
		return nil, err
	}
	ret := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, p.conversionError(key, part, "integer")
		}
		ret = append(ret, n)
	}
	return ret, nil
}

// GetBooleanList returns the value of key as a comma-separated boolean list.
func (p *Params) GetBooleanList(key string) ([]bool, error) {
	parts, err := p.GetStringList(key)
	if err != nil {
		return nil, err
	}
	ret := make([]bool, 0, len(parts))
	for _, part := range parts {
		b, err := strconv.ParseBool(strings.TrimSpace(part))
		if err != nil {
			return nil, p.conversionError(key, part, "boolean")
		}
		ret = append(ret, b)
	}
	return ret, nil
}

func splitList(v string) []string {
	if v == "" {
		return []string{}
	}
	parts := strings.Split(v, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func (p *Params) conversionError(key, value, wanted string) error {
	return &ConversionError{Key: key, Value: value, Wanted: wanted, Namespace: p.Namespace()}
}

func (p *Params) String() string {
	return fmt.Sprintf("Params{namespace: %q, keys: %d}", p.Namespace(), len(p.values))
}
