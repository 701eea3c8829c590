package params

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgabbard/bue-common-open/internal/logging"
)

// LoadFile reads a parameter file in "key: value" format.
//
// Blank lines and lines starting with '#' are ignored. A line of the form
// "INCLUDE path" loads another parameter file, resolved relative to the
// including file; later definitions override earlier ones. Values may refer
// to previously defined parameters with %name% interpolation.
func LoadFile(path string) (*Params, error) {
	values := make(map[string]string)
	seen := make(map[string]bool)
	if err := loadFileInto(path, values, seen); err != nil {
		return nil, err
	}
	logging.Default().Debug("loaded parameters",
		logging.FieldPath, path, logging.FieldParam, len(values))
	return FromMap(values), nil
}

func loadFileInto(path string, values map[string]string, seen map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve parameter file %s: %w", path, err)
	}
	if seen[abs] {
		return fmt.Errorf("parameter file %s included more than once", abs)
	}
	seen[abs] = true

	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("open parameter file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if included, ok := strings.CutPrefix(line, "INCLUDE "); ok {
			includedPath := strings.TrimSpace(included)
			if !filepath.IsAbs(includedPath) {
				includedPath = filepath.Join(filepath.Dir(abs), includedPath)
			}
			logging.Default().Debug("including parameter file",
				logging.FieldInclude, includedPath)
			if err := loadFileInto(includedPath, values, seen); err != nil {
				return err
			}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return &LoadError{Path: abs, Line: lineNum, Message: "expected \"key: value\""}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return &LoadError{Path: abs, Line: lineNum, Message: "empty parameter name"}
		}
		interpolated, err := interpolate(strings.TrimSpace(value), values)
		if err != nil {
			return &LoadError{Path: abs, Line: lineNum, Message: err.Error()}
		}
		values[key] = interpolated
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read parameter file %s: %w", abs, err)
	}
	return nil
}

// interpolate replaces %name% references with previously defined values.
// A literal percent sign can be written as %%.
func interpolate(value string, defined map[string]string) (string, error) {
	if !strings.Contains(value, "%") {
		return value, nil
	}

	var sb strings.Builder
	rest := value
	for {
		before, after, ok := strings.Cut(rest, "%")
		sb.WriteString(before)
		if !ok {
			return sb.String(), nil
		}
		name, remainder, ok := strings.Cut(after, "%")
		if !ok {
			return "", fmt.Errorf("unterminated %%reference%% in %q", value)
		}
		if name == "" {
			sb.WriteByte('%')
		} else {
			referenced, ok := defined[name]
			if !ok {
				return "", fmt.Errorf("reference to undefined parameter %q", name)
			}
			sb.WriteString(referenced)
		}
		rest = remainder
	}
}
