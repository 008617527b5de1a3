package gdd

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// Decompress reconstructs the exact bytes Compress was given. Each base is
// resolved (back references point at literals, never at other references),
// re-encoded into its codeword, and the recorded deviation is replayed on
// top of it: Correct flips the one bit the original block differed from the
// codeword by, and the carry bit completes the block.
func Decompress(c *Compressed) ([]byte, error) {
	code, err := c.Family.code()
	if err != nil {
		return nil, err
	}
	if len(c.Bases) != len(c.Deviations) {
		return nil, fmt.Errorf("%w: %v bases but %v deviations", ErrCorrupted, len(c.Bases), len(c.Deviations))
	}

	n := code.CodewordLength()
	k := code.MessageLength()
	m := code.ParitySymbols()
	blockBytes := c.Family.blockBytes()

	out := make([]byte, 0, len(c.Bases)*blockBytes)
	for i := range c.Bases {
		base, err := resolve(c.Bases, i)
		if err != nil {
			return nil, fmt.Errorf("chunk %v: %w", i, err)
		}
		if base.Len() != k {
			return nil, fmt.Errorf("chunk %v: %w: base length %v, want %v", i, ErrCorrupted, base.Len(), k)
		}

		deviation := c.Deviations[i]
		if deviation.Len() != m+1 {
			return nil, fmt.Errorf("chunk %v: %w: deviation length %v, want %v", i, ErrCorrupted, deviation.Len(), m+1)
		}
		syndrome := deviation.Slice(0, m)
		carry := deviation.At(m)

		codeword, err := code.Encode(base)
		if err != nil {
			return nil, fmt.Errorf("chunk %v: %w", i, err)
		}
		window, err := code.Correct(codeword, syndrome)
		if err != nil {
			return nil, fmt.Errorf("chunk %v: %w", i, err)
		}

		bits := mat.CSRVec(n + 1)
		for _, j := range window.NonzeroArray() {
			bits.Set(j, 1)
		}
		bits.Set(n, carry)

		bs, err := bitsToBytes(bits)
		if err != nil {
			return nil, fmt.Errorf("chunk %v: %w", i, err)
		}
		out = append(out, bs...)
	}

	if c.Padded {
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: padded flag set on empty stream", ErrCorrupted)
		}
		out = out[:len(out)-1]
	}

	logrus.Debugf("decompressed %v blocks with %v into %v bytes", len(c.Bases), c.Family, len(out))
	return out, nil
}

// resolve returns the literal bits for entry i, following at most one back
// reference. The compressor only ever emits references to literals, so a
// reference chain means the stream is corrupt.
func resolve(bases []Base, i int) (mat.SparseVector, error) {
	switch b := bases[i].(type) {
	case Literal:
		return b.Bits, nil
	case Reference:
		if b.Index < 0 || b.Index >= len(bases) {
			return nil, fmt.Errorf("%w: reference %v out of range", ErrCorrupted, b.Index)
		}
		lit, ok := bases[b.Index].(Literal)
		if !ok {
			return nil, fmt.Errorf("%w: reference %v points at another reference", ErrCorrupted, b.Index)
		}
		return lit.Bits, nil
	}
	return nil, fmt.Errorf("%w: unknown base entry %T", ErrCorrupted, bases[i])
}
