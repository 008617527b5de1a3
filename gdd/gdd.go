// Package gdd implements generalized deviation deduplication, a lossless
// compression scheme built on the coset structure of the catalog Hamming
// codes. Every block of input bits is decoded into the message of its
// nearest codeword (the base) plus the syndrome that separates the block
// from that codeword (the deviation). Repeating bases are stored once and
// back-referenced afterwards; re-encoding a base and replaying its
// deviation reconstructs the original bits exactly.
package gdd

import (
	"errors"
	"fmt"

	"github.com/nathanhack/gdd/linearblock"
	"github.com/nathanhack/gdd/linearblock/hamming"
	mat "github.com/nathanhack/sparsemat"
)

// ErrCorrupted is returned when a compressed stream fails internal
// consistency checks during decompression or deserialization.
var ErrCorrupted = errors.New("corrupted compressed stream")

// Family selects which catalog code drives the pipeline.
type Family int

const (
	// SevenFour chunks one byte at a time through Hamming(7,4).
	SevenFour Family = iota
	// FifteenEleven chunks two bytes at a time through Hamming(15,11).
	FifteenEleven
)

func (f Family) String() string {
	switch f {
	case SevenFour:
		return "hamming(7,4)"
	case FifteenEleven:
		return "hamming(15,11)"
	}
	return fmt.Sprintf("unknown(%d)", int(f))
}

// ParseFamily maps a CLI-style code length ("7" or "15", optionally the
// full "7,4"/"15,11") to a Family.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "7", "7,4":
		return SevenFour, nil
	case "15", "15,11":
		return FifteenEleven, nil
	}
	return 0, fmt.Errorf("%w: %q", hamming.ErrUnsupportedCodeLength, s)
}

// code resolves the catalog code once per pipeline call.
func (f Family) code() (*linearblock.LinearBlock, error) {
	switch f {
	case SevenFour:
		return hamming.SevenFour(), nil
	case FifteenEleven:
		return hamming.FifteenEleven(), nil
	}
	return nil, fmt.Errorf("%w: family %v", hamming.ErrUnsupportedCodeLength, int(f))
}

// blockBytes is the number of input bytes consumed per block: the codeword
// bits plus the single carry bit always total a whole number of bytes.
func (f Family) blockBytes() int {
	if f == FifteenEleven {
		return 2
	}
	return 1
}

// Base is one entry of the compressed base sequence: either the literal
// data bits of a block or a back reference to an earlier identical base.
type Base interface {
	isBase()
}

// Literal holds the data bits of the first occurrence of a base value.
type Literal struct {
	Bits mat.SparseVector
}

// Reference points at the index of an earlier Literal with the same bits.
type Reference struct {
	Index int
}

func (Literal) isBase()   {}
func (Reference) isBase() {}

// Compressed is the output of Compress: parallel base and deviation
// sequences plus the padding marker for odd-length (15,11) input.
type Compressed struct {
	Family     Family
	Bases      []Base
	Deviations []mat.SparseVector
	Padded     bool
}

// Blocks returns the number of blocks in the stream.
func (c *Compressed) Blocks() int {
	return len(c.Bases)
}

// LiteralCount returns how many bases are stored literally; the remainder
// are back references.
func (c *Compressed) LiteralCount() int {
	count := 0
	for _, b := range c.Bases {
		if _, ok := b.(Literal); ok {
			count++
		}
	}
	return count
}

// SizeBits is the information content of the stream: full width for every
// deviation and for literal bases, nothing for back references. It is the
// figure compression ratios are reported against.
func (c *Compressed) SizeBits() int {
	bits := 0
	for _, b := range c.Bases {
		if lit, ok := b.(Literal); ok {
			bits += lit.Bits.Len()
		}
	}
	for _, d := range c.Deviations {
		bits += d.Len()
	}
	return bits
}
