package located

import "fmt"

// Region tracks the relationship between a contiguous run of string positions
// and the source offsets of that run. What the relationship is, exactly, can
// vary between different parts of a string: inside a markup tag, positions and
// char offsets advance but EDT offsets do not.
//
// Positions are indices into the located string's code points, with StartPos
// inclusive and EndPos exclusive. The offset Groups at both boundaries are
// inclusive.
type Region struct {
	startPos    int
	endPos      int
	startOffset Group
	endOffset   Group
}

// NewRegion creates a Region. The end position must be strictly greater than
// the start position and the end char offset must not precede the start char
// offset.
func NewRegion(startPos, endPos int, start, end Group) (Region, error) {
	if endPos <= startPos {
		return Region{}, &InvalidRegionError{
			StartPos: startPos,
			EndPos:   endPos,
			Message:  "end position not after start position",
		}
	}
	if end.charOffset < start.charOffset {
		return Region{}, &InvalidRegionError{
			StartPos: startPos,
			EndPos:   endPos,
			Message: fmt.Sprintf("end char offset %d precedes start char offset %d",
				end.charOffset, start.charOffset),
		}
	}
	return Region{startPos: startPos, endPos: endPos, startOffset: start, endOffset: end}, nil
}

// region builds a Region whose validity is guaranteed by the caller.
func region(startPos, endPos int, start, end Group) Region {
	return Region{startPos: startPos, endPos: endPos, startOffset: start, endOffset: end}
}

// StartPos returns the inclusive start position.
func (r Region) StartPos() int {
	return r.startPos
}

// EndPos returns the exclusive end position.
func (r Region) EndPos() int {
	return r.endPos
}

// StartOffset returns the offset Group at the start of the region.
func (r Region) StartOffset() Group {
	return r.startOffset
}

// EndOffset returns the inclusive offset Group at the end of the region.
func (r Region) EndOffset() Group {
	return r.endOffset
}

// PosLength returns the length of the region in positions.
func (r Region) PosLength() int {
	return r.endPos - r.startPos
}

// CharLength returns the length of the region in char offsets. Boundary
// offsets are inclusive, hence the +1.
func (r Region) CharLength() int {
	return int(r.endOffset.charOffset) - int(r.startOffset.charOffset) + 1
}

// EDTLength returns the length of the region in EDT offsets. Boundary offsets
// are inclusive, hence the +1.
func (r Region) EDTLength() int {
	return int(r.endOffset.edtOffset) - int(r.startOffset.edtOffset) + 1
}

// IsEDTSkipRegion reports whether EDT offsets do not advance across this
// region, as happens inside markup tags and at carriage returns.
func (r Region) IsEDTSkipRegion() bool {
	return r.CharLength() > 0 && r.startOffset.edtOffset == r.endOffset.edtOffset
}

func (r Region) String() string {
	return fmt.Sprintf("Region{pos: [%d, %d]; %v}", r.startPos, r.endPos,
		groupRange(r.startOffset, r.endOffset))
}
