package gdd

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// Compress decodes data block by block into (base, deviation) pairs and
// deduplicates repeated bases. The (7,4) family consumes one byte per
// block: the first 7 bits form the codeword, the 8th rides along in the
// deviation as a carry bit. The (15,11) family consumes two bytes per
// block the same way; odd-length input gets one zero byte appended and the
// Padded flag set. The dedup table lives only for the duration of the call.
func Compress(data []byte, family Family) (*Compressed, error) {
	code, err := family.code()
	if err != nil {
		return nil, err
	}

	padded := false
	blockBytes := family.blockBytes()
	if len(data)%blockBytes != 0 {
		// full slice expression so the append copies instead of
		// scribbling past the caller's length
		data = append(data[:len(data):len(data)], 0)
		padded = true
	}

	n := code.CodewordLength()
	m := code.ParitySymbols()
	blocks := len(data) / blockBytes

	c := &Compressed{
		Family:     family,
		Bases:      make([]Base, 0, blocks),
		Deviations: make([]mat.SparseVector, 0, blocks),
		Padded:     padded,
	}

	// base value -> index of its first (literal) occurrence
	seen := make(map[string]int)

	for i := 0; i < blocks; i++ {
		window := bytesToBits(data[i*blockBytes : (i+1)*blockBytes])
		codeword := window.Slice(0, n)
		carry := window.At(n)

		base, syndrome, err := code.Decode(codeword)
		if err != nil {
			return nil, fmt.Errorf("chunk %v: %w", i, err)
		}

		deviation := mat.CSRVec(m + 1)
		for j := 0; j < m; j++ {
			deviation.Set(j, syndrome.At(j))
		}
		deviation.Set(m, carry)

		if at, has := seen[base.String()]; has {
			c.Bases = append(c.Bases, Reference{Index: at})
		} else {
			seen[base.String()] = len(c.Bases)
			c.Bases = append(c.Bases, Literal{Bits: base})
		}
		c.Deviations = append(c.Deviations, deviation)
	}

	logrus.Debugf("compressed %v bytes with %v: %v blocks, %v distinct bases",
		len(data), family, blocks, len(seen))
	return c, nil
}
