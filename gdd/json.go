package gdd

import (
	"encoding/json"
	"fmt"
)

// JSON form of a Compressed stream. Bit vectors become plain 0/1 arrays and
// base entries are tagged by which field is present, so the interface types
// survive the round trip.

type baseJSON struct {
	Bits []int `json:"bits,omitempty"`
	Ref  *int  `json:"ref,omitempty"`
}

type compressedJSON struct {
	Family     string
	Bases      []baseJSON
	Deviations [][]int
	Padded     bool
}

// MarshalJSON implements json.Marshaler.
func (c *Compressed) MarshalJSON() ([]byte, error) {
	cj := compressedJSON{
		Family:     c.Family.String(),
		Bases:      make([]baseJSON, 0, len(c.Bases)),
		Deviations: make([][]int, 0, len(c.Deviations)),
		Padded:     c.Padded,
	}
	for i, b := range c.Bases {
		switch e := b.(type) {
		case Literal:
			cj.Bases = append(cj.Bases, baseJSON{Bits: vectorBits(e.Bits)})
		case Reference:
			index := e.Index
			cj.Bases = append(cj.Bases, baseJSON{Ref: &index})
		default:
			return nil, fmt.Errorf("base %v: %w: unknown entry %T", i, ErrCorrupted, b)
		}
	}
	for _, d := range c.Deviations {
		cj.Deviations = append(cj.Deviations, vectorBits(d))
	}
	return json.Marshal(cj)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Compressed) UnmarshalJSON(data []byte) error {
	var cj compressedJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	var family Family
	switch cj.Family {
	case SevenFour.String():
		family = SevenFour
	case FifteenEleven.String():
		family = FifteenEleven
	default:
		return fmt.Errorf("%w: unknown family %q", ErrCorrupted, cj.Family)
	}

	bases := make([]Base, 0, len(cj.Bases))
	for i, b := range cj.Bases {
		switch {
		case b.Ref != nil && b.Bits == nil:
			bases = append(bases, Reference{Index: *b.Ref})
		case b.Ref == nil && b.Bits != nil:
			bits, err := bitsVector(b.Bits)
			if err != nil {
				return fmt.Errorf("base %v: %w", i, err)
			}
			bases = append(bases, Literal{Bits: bits})
		default:
			return fmt.Errorf("base %v: %w: entry must have exactly one of bits or ref", i, ErrCorrupted)
		}
	}

	c.Family = family
	c.Bases = bases
	c.Deviations = nil
	for i, d := range cj.Deviations {
		v, err := bitsVector(d)
		if err != nil {
			return fmt.Errorf("deviation %v: %w", i, err)
		}
		c.Deviations = append(c.Deviations, v)
	}
	c.Padded = cj.Padded
	return nil
}
