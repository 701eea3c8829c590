package files

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rgabbard/bue-common-open/pkg/collections"
	"github.com/rgabbard/bue-common-open/pkg/symbols"
)

// LoadStringToFileMap reads a two-column tab-separated file mapping keys to
// file paths. Duplicate keys are an error.
func LoadStringToFileMap(path string) (map[string]string, error) {
	r, err := OptionallyCompressedReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return readStringToFileMap(r, path)
}

// LoadSymbolToFileMap is LoadStringToFileMap with interned keys.
func LoadSymbolToFileMap(path string) (map[symbols.Symbol]string, error) {
	plain, err := LoadStringToFileMap(path)
	if err != nil {
		return nil, err
	}
	return collections.TransformEntries(plain,
		func(k, v string) (symbols.Symbol, string) { return symbols.From(k), v })
}

func readStringToFileMap(r io.Reader, path string) (map[string]string, error) {
	ret := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected two tab-separated fields", path, lineNum)
		}
		if existing, dup := ret[key]; dup {
			return nil, fmt.Errorf("%s:%d: key %q maps to both %q and %q",
				path, lineNum, key, existing, value)
		}
		ret[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	return ret, nil
}

// LoadStringMultimap reads a two-column tab-separated file where keys may
// repeat, collecting all values per key in file order.
func LoadStringMultimap(path string) (map[string][]string, error) {
	r, err := OptionallyCompressedReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ret := make(map[string][]string)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected two tab-separated fields", path, lineNum)
		}
		ret[key] = append(ret[key], value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read multimap %s: %w", path, err)
	}
	return ret, nil
}

// WriteSymbolToFileMap writes a symbol-to-path map as tab-separated lines
// sorted by key, so output is deterministic.
func WriteSymbolToFileMap(m map[symbols.Symbol]string, path string) error {
	byKey := make(map[string]string, len(m))
	for k, v := range m {
		byKey[k.String()] = v
	}

	var sb strings.Builder
	for _, entry := range collections.SortedEntriesByKey(byKey) {
		sb.WriteString(entry.Key)
		sb.WriteByte('\t')
		sb.WriteString(entry.Value)
		sb.WriteByte('\n')
	}
	if err := WriteAtomic(path, []byte(sb.String()), 0); err != nil {
		return fmt.Errorf("write map %s: %w", path, err)
	}
	return nil
}
