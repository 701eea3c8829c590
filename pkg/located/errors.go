package located

import "fmt"

// InvalidRegionError describes a Region whose positions or offsets are
// inconsistent.
type InvalidRegionError struct {
	StartPos int
	EndPos   int
	Message  string
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid region [%d:%d): %s", e.StartPos, e.EndPos, e.Message)
}

// InvalidRangeError describes a GroupRange whose start char offset exceeds
// its end char offset.
type InvalidRangeError struct {
	Start int
	End   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid offset range: start char offset %d exceeds end char offset %d",
		e.Start, e.End)
}

// ConstructionError describes a LocatedString whose bounds and regions do not
// satisfy the containment invariants.
type ConstructionError struct {
	Message string
}

func (e *ConstructionError) Error() string {
	return "invalid located string: " + e.Message
}

// SubstringBoundsError describes a substring request outside the valid range
// of the string.
type SubstringBoundsError struct {
	Start  int
	End    int
	Length int
}

func (e *SubstringBoundsError) Error() string {
	return fmt.Sprintf("substring bounds [%d:%d) invalid for string of length %d",
		e.Start, e.End, e.Length)
}

// OffsetNotFoundError indicates that no region covers the requested char
// offset.
type OffsetNotFoundError struct {
	Offset CharOffset
}

func (e *OffsetNotFoundError) Error() string {
	return fmt.Sprintf("no offset group found for char offset %d", e.Offset)
}
