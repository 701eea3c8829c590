package located

import "fmt"

// ByteOffset is a zero-indexed position in the original byte-encoded source.
// Not every source tracks byte offsets, so a Group may carry no ByteOffset.
type ByteOffset int

// CharOffset is a zero-indexed Unicode code point position in the original
// source.
type CharOffset int

// EDTOffset is like a CharOffset, except that (i) any substring starting with
// '<' and extending to the matching '>' is skipped when counting, and (ii) the
// character '\r' is skipped when counting. Note that (i) is not always
// identical to skipping XML/SGML tags and comments. EDT offsets align text
// with structural annotations made against markup-free content.
type EDTOffset int

// ASRTime is an externally supplied time-alignment value, such as the time in
// a speech signal corresponding to a character. It is carried opaquely and
// never computed here.
type ASRTime int

// Group bundles one offset of each kind for a single point in the source.
// CharOffset and EDTOffset are always present; ByteOffset and ASRTime are
// optional. A Group is an immutable value.
type Group struct {
	byteOffset ByteOffset
	hasByte    bool
	charOffset CharOffset
	edtOffset  EDTOffset
	asrTime    ASRTime
	hasTime    bool
}

// NewGroup creates a Group with only char and EDT offsets.
func NewGroup(char CharOffset, edt EDTOffset) Group {
	return Group{charOffset: char, edtOffset: edt}
}

// NewGroupWithByte creates a Group that also tracks a byte offset.
func NewGroupWithByte(b ByteOffset, char CharOffset, edt EDTOffset) Group {
	return Group{byteOffset: b, hasByte: true, charOffset: char, edtOffset: edt}
}

// NewGroupWithTime creates a Group carrying an ASR time alignment value.
func NewGroupWithTime(char CharOffset, edt EDTOffset, t ASRTime) Group {
	return Group{charOffset: char, edtOffset: edt, asrTime: t, hasTime: true}
}

// GroupFromMatchingCharAndEDT creates a Group whose char and EDT offsets are
// both off.
func GroupFromMatchingCharAndEDT(off int) Group {
	return NewGroup(CharOffset(off), EDTOffset(off))
}

// CharOffset returns the code point offset.
func (g Group) CharOffset() CharOffset {
	return g.charOffset
}

// EDTOffset returns the EDT offset.
func (g Group) EDTOffset() EDTOffset {
	return g.edtOffset
}

// ByteOffset returns the byte offset, if one is tracked.
func (g Group) ByteOffset() (ByteOffset, bool) {
	return g.byteOffset, g.hasByte
}

// ASRTime returns the time alignment value, if one is tracked.
func (g Group) ASRTime() (ASRTime, bool) {
	return g.asrTime, g.hasTime
}

func (g Group) String() string {
	s := fmt.Sprintf("char=%d, edt=%d", g.charOffset, g.edtOffset)
	if g.hasByte {
		s = fmt.Sprintf("byte=%d, %s", g.byteOffset, s)
	}
	if g.hasTime {
		s = fmt.Sprintf("%s, asr=%d", s, g.asrTime)
	}
	return "{" + s + "}"
}

// GroupRange is an inclusive (start, end) pair of Groups bounding a span.
type GroupRange struct {
	start Group
	end   Group
}

// NewGroupRange creates a GroupRange. The start char offset must not exceed
// the end char offset.
func NewGroupRange(start, end Group) (GroupRange, error) {
	if start.charOffset > end.charOffset {
		return GroupRange{}, &InvalidRangeError{
			Start: int(start.charOffset),
			End:   int(end.charOffset),
		}
	}
	return GroupRange{start: start, end: end}, nil
}

// groupRange builds a GroupRange whose validity is guaranteed by the caller.
func groupRange(start, end Group) GroupRange {
	return GroupRange{start: start, end: end}
}

// StartInclusive returns the Group at the start of the range.
func (r GroupRange) StartInclusive() Group {
	return r.start
}

// EndInclusive returns the Group at the end of the range.
func (r GroupRange) EndInclusive() Group {
	return r.end
}

func (r GroupRange) String() string {
	return fmt.Sprintf("%v-%v", r.start, r.end)
}
