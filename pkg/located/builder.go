package located

// calculateRegions scans text once and produces the ordered region list that
// relates string positions to source offsets, starting from initial.
//
// When edtIsChar is false, EDT offsets do not advance while the scan is inside
// a tag delimited by '<' and the matching '>' or at a '\r' character. Tag
// detection is deliberately a bare open/close counter, not a markup parser: a
// '<' inside already-open tag content merely deepens the counter. Downstream
// offset data depends on this exact heuristic, so it must not be made smarter.
//
// When edtIsChar is true, EDT offsets advance with char offsets for every
// code point scanned.
//
// Byte offsets are only tracked when initial carries one, and advance by the
// UTF-8 encoded length of each code point. Char offsets advance by one per
// code point.
func calculateRegions(text []rune, initial Group, edtIsChar bool) []Region {
	var regions []Region

	inTag := 0
	useByteOffsets := initial.hasByte
	byteOffset := int(initial.byteOffset)
	charOffset := int(initial.charOffset)
	edtOffset := int(initial.edtOffset)

	pos := 0
	startPos := 0
	justLeftTag := false
	var prevChar rune
	start := initial

	for ; pos < len(text); pos++ {
		c := text[pos]

		// A region boundary opens when a skip condition begins or ends: we
		// just hit a '<' or follow a '\r', or we just stepped past the '>'
		// that closed a tag. justLeftTag is delayed one step so the character
		// after tag closure groups with the post-tag region, unless it opens
		// another tag immediately.
		if !edtIsChar && pos > 0 &&
			((inTag == 0 && (c == '<' || prevChar == '\r')) || justLeftTag) &&
			!(justLeftTag && c == '<') {
			prevEDTOffset := edtOffset - 1
			if edtOffset == 0 || prevChar == '\r' {
				prevEDTOffset = edtOffset
			}
			regions = append(regions, region(startPos, pos, start,
				boundaryGroup(useByteOffsets, byteOffset-1, charOffset-1, prevEDTOffset)))
			startPos = pos
			startEDTOffset := edtOffset
			if c == '<' {
				startEDTOffset = edtOffset - 1
			}
			start = boundaryGroup(useByteOffsets, byteOffset, charOffset, startEDTOffset)
		}

		charOffset++
		byteOffset += utf8BytesInRune(c)
		if edtIsChar || !(inTag != 0 || c == '<' || c == '\r') {
			edtOffset++
		}
		if !edtIsChar {
			justLeftTag = false
			if c == '<' {
				inTag++
			} else if inTag > 0 && c == '>' {
				inTag--
				if inTag == 0 {
					justLeftTag = true
				}
			}
		}
		prevChar = c
	}

	if pos > startPos {
		prevEDTOffset := edtOffset - 1
		if int(start.edtOffset) > prevEDTOffset {
			prevEDTOffset = int(start.edtOffset)
		}
		regions = append(regions, region(startPos, pos, start,
			boundaryGroup(useByteOffsets, byteOffset-1, charOffset-1, prevEDTOffset)))
	}

	return regions
}

// boundaryGroup builds the Group for a region boundary, tracking a byte
// offset only when the initial offsets did.
func boundaryGroup(useByteOffsets bool, byteOffset, charOffset, edtOffset int) Group {
	if useByteOffsets {
		return NewGroupWithByte(ByteOffset(byteOffset), CharOffset(charOffset), EDTOffset(edtOffset))
	}
	return NewGroup(CharOffset(charOffset), EDTOffset(edtOffset))
}

// utf8BytesInRune returns the number of bytes used to encode c in UTF-8.
func utf8BytesInRune(c rune) int {
	switch {
	case c <= 0x7f:
		return 1
	case c <= 0x7ff:
		return 2
	case c <= 0xffff:
		return 3
	default:
		return 4
	}
}

// boundsFromRegions derives the overall offset bounds of a string from its
// first and last regions. The region list must be non-empty.
func boundsFromRegions(regions []Region) GroupRange {
	return groupRange(regions[0].startOffset, regions[len(regions)-1].endOffset)
}
