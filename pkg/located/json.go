package located

import (
	"encoding/json"
	"fmt"
)

// Stable wire names for offset values. Optional kinds are omitted when
// absent, never serialized as zero.

type groupJSON struct {
	Char CharOffset  `json:"char"`
	EDT  EDTOffset   `json:"edt"`
	Byte *ByteOffset `json:"byte,omitempty"`
	ASR  *ASRTime    `json:"asrTime,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (g Group) MarshalJSON() ([]byte, error) {
	out := groupJSON{Char: g.charOffset, EDT: g.edtOffset}
	if g.hasByte {
		b := g.byteOffset
		out.Byte = &b
	}
	if g.hasTime {
		t := g.asrTime
		out.ASR = &t
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Group) UnmarshalJSON(data []byte) error {
	var in groupJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal offset group: %w", err)
	}
	*g = Group{charOffset: in.Char, edtOffset: in.EDT}
	if in.Byte != nil {
		g.byteOffset = *in.Byte
		g.hasByte = true
	}
	if in.ASR != nil {
		g.asrTime = *in.ASR
		g.hasTime = true
	}
	return nil
}

type groupRangeJSON struct {
	Start Group `json:"start"`
	End   Group `json:"end"`
}

// MarshalJSON implements json.Marshaler.
func (r GroupRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(groupRangeJSON{Start: r.start, End: r.end})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *GroupRange) UnmarshalJSON(data []byte) error {
	var in groupRangeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal offset range: %w", err)
	}
	rng, err := NewGroupRange(in.Start, in.End)
	if err != nil {
		return err
	}
	*r = rng
	return nil
}

type regionJSON struct {
	StartPos    int   `json:"startPos"`
	EndPos      int   `json:"endPos"`
	StartOffset Group `json:"startOffset"`
	EndOffset   Group `json:"endOffset"`
}

// MarshalJSON implements json.Marshaler.
func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(regionJSON{
		StartPos:    r.startPos,
		EndPos:      r.endPos,
		StartOffset: r.startOffset,
		EndOffset:   r.endOffset,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Region) UnmarshalJSON(data []byte) error {
	var in regionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal region: %w", err)
	}
	reg, err := NewRegion(in.StartPos, in.EndPos, in.StartOffset, in.EndOffset)
	if err != nil {
		return err
	}
	*r = reg
	return nil
}

type locatedStringJSON struct {
	Content string     `json:"content"`
	Bounds  GroupRange `json:"bounds"`
	Regions []Region   `json:"regions"`
}

// MarshalJSON implements json.Marshaler.
func (ls *LocatedString) MarshalJSON() ([]byte, error) {
	return json.Marshal(locatedStringJSON{
		Content: ls.content,
		Bounds:  ls.bounds,
		Regions: ls.regions,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded value is
// re-validated exactly as in New.
func (ls *LocatedString) UnmarshalJSON(data []byte) error {
	var in locatedStringJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal located string: %w", err)
	}
	decoded, err := New(in.Content, in.Bounds, in.Regions)
	if err != nil {
		return err
	}
	*ls = LocatedString{
		content: decoded.content,
		runes:   decoded.runes,
		bounds:  decoded.bounds,
		regions: decoded.regions,
	}
	return nil
}
