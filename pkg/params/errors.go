package params

import "fmt"

// MissingParameterError indicates a lookup of a parameter that is not
// defined.
type MissingParameterError struct {
	Key       string
	Namespace string
}

func (e *MissingParameterError) Error() string {
	if e.Namespace != "" {
		return fmt.Sprintf("parameter %q not defined in namespace %q", e.Key, e.Namespace)
	}
	return fmt.Sprintf("parameter %q not defined", e.Key)
}

// ConversionError indicates a parameter value that could not be converted to
// the requested type.
type ConversionError struct {
	Key       string
	Value     string
	Wanted    string
	Namespace string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("parameter %q: cannot convert %q to %s", e.Key, e.Value, e.Wanted)
}

// LoadError indicates a malformed parameter file.
type LoadError struct {
	Path    string
	Line    int
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}
