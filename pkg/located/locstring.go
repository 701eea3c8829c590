// Package located provides strings that remember where every character came
// from. A LocatedString pairs text read from a source document with the exact
// origin offsets of each of its code points, so that downstream stages can
// slice, transform, and recombine text while always being able to map any
// resulting character back to its position in the original source.
//
// Start and end offsets are zero-indexed and both inclusive. If a character
// came from a single byte at position 12, its start and end ByteOffset are
// both 12; a character encoded with three bytes at positions 14-16 has start
// ByteOffset 14 and end ByteOffset 16.
package located

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"sync"
)

// LocatedString is an immutable string together with the offset bounds of the
// span it came from and the ordered regions relating its positions to source
// offsets. All operations are pure; instances may be freely shared across
// goroutines.
type LocatedString struct {
	content string
	runes   []rune
	bounds  GroupRange
	regions []Region

	hashOnce sync.Once
	hash     uint64
}

// FromText builds a LocatedString for text whose offsets start at initial,
// computing EDT offsets with the markup-aware skip rules. It fails only for
// empty text, which cannot form a region.
func FromText(text string, initial Group) (*LocatedString, error) {
	return fromText(text, initial, false)
}

// FromTextEDTMatchingChar builds a LocatedString for text whose offsets start
// at initial, with EDT offsets simply advancing alongside char offsets. Use
// this for input with no markup semantics.
func FromTextEDTMatchingChar(text string, initial Group) (*LocatedString, error) {
	return fromText(text, initial, true)
}

// FromTextStartingAtZero builds a LocatedString for text whose char and EDT
// offsets both start at zero, with EDT offsets matching char offsets.
func FromTextStartingAtZero(text string) (*LocatedString, error) {
	return fromText(text, GroupFromMatchingCharAndEDT(0), true)
}

func fromText(text string, initial Group, edtIsChar bool) (*LocatedString, error) {
	runes := []rune(text)
	regions := calculateRegions(runes, initial, edtIsChar)
	if len(regions) == 0 {
		return nil, &ConstructionError{Message: "empty text produces no regions"}
	}
	return newLocatedString(text, runes, boundsFromRegions(regions), regions)
}

// New builds a LocatedString from text and an already-computed offset range
// and region list, re-validating the containment invariants between them.
func New(text string, bounds GroupRange, regions []Region) (*LocatedString, error) {
	return newLocatedString(text, []rune(text), bounds, slices.Clone(regions))
}

func newLocatedString(text string, runes []rune, bounds GroupRange, regions []Region) (*LocatedString, error) {
	ls := &LocatedString{content: text, runes: runes, bounds: bounds, regions: regions}
	if err := ls.validate(); err != nil {
		return nil, err
	}
	return ls, nil
}

func (ls *LocatedString) validate() error {
	if len(ls.regions) == 0 {
		return &ConstructionError{Message: fmt.Sprintf("%q with bounds %v lacks regions",
			ls.content, ls.bounds)}
	}
	if ls.bounds.start.charOffset > ls.regions[0].startOffset.charOffset {
		return &ConstructionError{Message: fmt.Sprintf(
			"bounds start char offset %d exceeds first region start char offset %d",
			ls.bounds.start.charOffset, ls.regions[0].startOffset.charOffset)}
	}
	last := ls.regions[len(ls.regions)-1]
	if ls.bounds.end.charOffset > last.endOffset.charOffset {
		return &ConstructionError{Message: fmt.Sprintf(
			"bounds end char offset %d exceeds last region end char offset %d",
			ls.bounds.end.charOffset, last.endOffset.charOffset)}
	}
	pos := 0
	for i, r := range ls.regions {
		if r.startPos != pos {
			return &ConstructionError{Message: fmt.Sprintf(
				"region %d starts at position %d, want %d", i, r.startPos, pos)}
		}
		if r.endPos <= r.startPos {
			return &ConstructionError{Message: fmt.Sprintf("region %d is empty", i)}
		}
		pos = r.endPos
	}
	if pos != len(ls.runes) {
		return &ConstructionError{Message: fmt.Sprintf(
			"regions cover %d positions, string has %d", pos, len(ls.runes))}
	}
	return nil
}

// Text returns the string represented by this LocatedString. It may or may
// not match the original text it came from.
func (ls *LocatedString) Text() string {
	return ls.content
}

// Length returns the length of the string in code points.
func (ls *LocatedString) Length() int {
	return len(ls.runes)
}

// Bounds returns the offsets in the source this LocatedString corresponds to.
func (ls *LocatedString) Bounds() GroupRange {
	return ls.bounds
}

// Regions returns a copy of the ordered region list.
func (ls *LocatedString) Regions() []Region {
	return slices.Clone(ls.regions)
}

// StartEDTOffset returns the EDT offset at the start of the bounds.
func (ls *LocatedString) StartEDTOffset() EDTOffset {
	return ls.bounds.start.edtOffset
}

// EndEDTOffset returns the EDT offset at the end of the bounds.
func (ls *LocatedString) EndEDTOffset() EDTOffset {
	return ls.bounds.end.edtOffset
}

// StartCharOffset returns the char offset at the start of the bounds.
func (ls *LocatedString) StartCharOffset() CharOffset {
	return ls.bounds.start.charOffset
}

// EndCharOffset returns the char offset at the end of the bounds.
func (ls *LocatedString) EndCharOffset() CharOffset {
	return ls.bounds.end.charOffset
}

// Substring returns a LocatedString covering positions [startPos, endPos) of
// this string, with its regions clipped and re-derived for the window.
//
// Because it rebuilds region metadata for every covered region, this is
// significantly more expensive than fetching the text alone; callers who only
// need the text should use RawSubstring instead.
func (ls *LocatedString) Substring(startPos, endPos int) (*LocatedString, error) {
	if err := ls.checkSubstringBounds(startPos, endPos); err != nil {
		return nil, err
	}
	text := string(ls.runes[startPos:endPos])
	regions := ls.regionsOfSubstring(startPos, endPos)
	return newLocatedString(text, ls.runes[startPos:endPos:endPos], boundsFromRegions(regions), regions)
}

// SubstringByCharOffsets returns a LocatedString covering the inclusive char
// offset range [start, end], interpreted relative to this string's bounds.
// See Substring for the cost caveat.
func (ls *LocatedString) SubstringByCharOffsets(start, end CharOffset) (*LocatedString, error) {
	startPos := int(start - ls.bounds.start.charOffset)
	endPos := int(end-ls.bounds.start.charOffset) + 1
	return ls.Substring(startPos, endPos)
}

// RawSubstring returns the plain text of positions [startPos, endPos),
// without recomputing any offsets.
func (ls *LocatedString) RawSubstring(startPos, endPos int) (string, error) {
	if err := ls.checkSubstringBounds(startPos, endPos); err != nil {
		return "", err
	}
	return string(ls.runes[startPos:endPos]), nil
}

// RawSubstringByCharOffsets returns the plain text of the inclusive char
// offset range [start, end], interpreted relative to this string's bounds.
func (ls *LocatedString) RawSubstringByCharOffsets(start, end CharOffset) (string, error) {
	startPos := int(start - ls.bounds.start.charOffset)
	endPos := int(end-ls.bounds.start.charOffset) + 1
	return ls.RawSubstring(startPos, endPos)
}

func (ls *LocatedString) checkSubstringBounds(startPos, endPos int) error {
	if startPos < 0 || endPos > len(ls.runes) || startPos >= endPos {
		return &SubstringBoundsError{Start: startPos, End: endPos, Length: len(ls.runes)}
	}
	return nil
}

// OffsetGroupForCharOffset returns the earliest offset group within this
// string whose char offset matches the one supplied, deriving the EDT offset
// from the containing region. The returned group carries char and EDT offsets
// only. If no region covers the offset, an OffsetNotFoundError is returned.
func (ls *LocatedString) OffsetGroupForCharOffset(offset CharOffset) (Group, error) {
	// If this ever slows us down significantly, we can binary search.
	for _, r := range ls.regions {
		regionStart := r.startOffset.charOffset
		regionEnd := r.endOffset.charOffset

		if regionStart <= offset && offset < regionEnd {
			// EDT offsets are continuous within a region and frozen inside
			// skip regions.
			offsetWithinRegion := EDTOffset(offset - regionStart)
			if r.IsEDTSkipRegion() {
				offsetWithinRegion = 0
			}
			return NewGroup(offset, r.startOffset.edtOffset+offsetWithinRegion), nil
		}
	}
	return Group{}, &OffsetNotFoundError{Offset: offset}
}

// Contains reports whether other is a verbatim substring of this string with
// consistent positions and offsets. It never fails; absence of containment is
// an ordinary false.
func (ls *LocatedString) Contains(other *LocatedString) bool {
	return other.isSubstringOf(ls)
}

func (ls *LocatedString) isSubstringOf(sup *LocatedString) bool {
	supStartPos := sup.positionOfStartOffsetChar(ls.regions[0].startOffset.charOffset)
	if supStartPos < 0 {
		return false
	}
	if supStartPos+ls.Length() > sup.Length() {
		return false
	}

	supStart, ok := sup.startCharOffsetAt(supStartPos)
	if !ok || ls.bounds.start.charOffset != supStart {
		return false
	}
	supEnd, ok := sup.endCharOffsetAt(supStartPos + ls.Length())
	if !ok || ls.bounds.end.charOffset != supEnd-1 {
		return false
	}
	return string(sup.runes[supStartPos:supStartPos+ls.Length()]) == ls.content
}

// positionOfStartOffsetChar finds the position in this string of the first
// character whose char offset equals charOffset, or -1 if there is none.
func (ls *LocatedString) positionOfStartOffsetChar(charOffset CharOffset) int {
	for _, r := range ls.regions {
		if r.startOffset.charOffset > charOffset {
			return -1
		}
		if charOffset <= r.endOffset.charOffset {
			return r.startPos + int(charOffset-r.startOffset.charOffset)
		}
	}
	return -1
}

func (ls *LocatedString) startCharOffsetAt(pos int) (CharOffset, bool) {
	r := ls.regions[ls.lastRegionStartingBefore(pos)]
	if pos < r.startPos || pos > r.endPos-1 {
		return 0, false
	}
	if pos == r.startPos {
		return r.startOffset.charOffset, true
	}
	return r.startOffset.charOffset + CharOffset(pos-r.startPos), true
}

func (ls *LocatedString) endCharOffsetAt(pos int) (CharOffset, bool) {
	r := ls.regions[ls.lastRegionStartingBefore(pos)]
	if pos < r.startPos || pos > r.endPos {
		return 0, false
	}
	if pos == r.endPos-1 {
		return r.endOffset.charOffset, true
	}
	return r.startOffset.charOffset + CharOffset(pos-r.startPos), true
}

// regionsOfSubstring returns the regions covering [startPos, endPos) of this
// string, clipped to the window and with boundary offsets shifted inward by
// however many positions were trimmed from each side.
func (ls *LocatedString) regionsOfSubstring(startPos, endPos int) []Region {
	var ret []Region

	windowLength := endPos - startPos
	for i := ls.lastRegionStartingBefore(startPos); i < len(ls.regions); i++ {
		r := ls.regions[i]

		// Negative when the window starts in the middle of the region.
		regionStartRelativeToWindow := r.startPos - startPos

		newStartPos := max(0, regionStartRelativeToWindow)
		newEndPos := min(windowLength, r.endPos-startPos)

		trimmedFromStart := max(0, -regionStartRelativeToWindow)
		newStartOffset := shiftGroup(r.startOffset, trimmedFromStart, r.IsEDTSkipRegion())

		trimmedFromEnd := max(0, r.endPos-endPos)
		newEndOffset := shiftGroup(r.endOffset, -trimmedFromEnd, r.IsEDTSkipRegion())

		ret = append(ret, region(newStartPos, newEndPos, newStartOffset, newEndOffset))

		if newEndPos >= windowLength {
			break
		}
	}

	return ret
}

// shiftGroup shifts a region boundary by the given amount. Char offsets
// always shift; EDT offsets were never advancing inside a skip region, so
// they stay put there.
func shiftGroup(boundary Group, shift int, isEDTSkipRegion bool) Group {
	if shift == 0 {
		return boundary
	}
	newEDT := boundary.edtOffset
	if !isEDTSkipRegion {
		newEDT += EDTOffset(shift)
	}
	return NewGroup(boundary.charOffset+CharOffset(shift), newEDT)
}

// lastRegionStartingBefore returns the index of the last region whose start
// position is at or before pos.
func (ls *LocatedString) lastRegionStartingBefore(pos int) int {
	i := 1
	for i < len(ls.regions) && ls.regions[i].startPos <= pos {
		i++
	}
	return i - 1
}

// Equal reports structural equality: the same text and offsets, with exactly
// the same interior material omitted, if any.
func (ls *LocatedString) Equal(other *LocatedString) bool {
	if ls == other {
		return true
	}
	if other == nil {
		return false
	}
	if ls.Hash() != other.Hash() {
		return false
	}
	return ls.bounds == other.bounds &&
		ls.content == other.content &&
		slices.Equal(ls.regions, other.regions)
}

// Hash returns a structural hash over (content, bounds, regions). It is
// computed once and cached; concurrent callers are safe.
func (ls *LocatedString) Hash() uint64 {
	ls.hashOnce.Do(func() {
		h := fnv.New64a()
		_, _ = h.Write([]byte(ls.content))
		hashGroup(h.Write, ls.bounds.start)
		hashGroup(h.Write, ls.bounds.end)
		for _, r := range ls.regions {
			hashInt(h.Write, r.startPos)
			hashInt(h.Write, r.endPos)
			hashGroup(h.Write, r.startOffset)
			hashGroup(h.Write, r.endOffset)
		}
		ls.hash = h.Sum64()
	})
	return ls.hash
}

func hashGroup(write func([]byte) (int, error), g Group) {
	hashInt(write, int(g.charOffset))
	hashInt(write, int(g.edtOffset))
	if g.hasByte {
		hashInt(write, int(g.byteOffset))
	}
	if g.hasTime {
		hashInt(write, int(g.asrTime))
	}
}

func hashInt(write func([]byte) (int, error), v int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, _ = write(buf[:])
}

func (ls *LocatedString) String() string {
	return fmt.Sprintf("LocatedString{bounds: %v, content: %q}", ls.bounds, ls.content)
}
