package gdd

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/nathanhack/gdd/linearblock/hamming"
	mat "github.com/nathanhack/sparsemat"
)

// The binary form starts with a fixed header (magic, codeword length,
// flags, big-endian block count) followed by one MSB-first bit stream:
// each base entry is a tag bit then either the k literal bits or a 32-bit
// reference index, then every deviation at its full n-k+1 bits. The tail
// is zero padded to a byte boundary. Bit widths are fixed per family, so
// equal streams marshal to equal bytes.

const wireMagic = "GDD1"

const flagPadded byte = 1 << 0

const referenceIndexBits = 32

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Compressed) MarshalBinary() ([]byte, error) {
	code, err := c.Family.code()
	if err != nil {
		return nil, err
	}
	if len(c.Bases) != len(c.Deviations) {
		return nil, fmt.Errorf("%w: %v bases but %v deviations", ErrCorrupted, len(c.Bases), len(c.Deviations))
	}

	k := code.MessageLength()
	m := code.ParitySymbols()

	buf := &bytes.Buffer{}
	buf.WriteString(wireMagic)
	buf.WriteByte(byte(code.CodewordLength()))
	var flags byte
	if c.Padded {
		flags |= flagPadded
	}
	buf.WriteByte(flags)
	if err := binary.Write(buf, binary.BigEndian, uint32(len(c.Bases))); err != nil {
		return nil, err
	}

	bw := bitWriter{buf: buf}
	for i, b := range c.Bases {
		switch e := b.(type) {
		case Literal:
			if e.Bits.Len() != k {
				return nil, fmt.Errorf("base %v: %w: literal length %v, want %v", i, ErrCorrupted, e.Bits.Len(), k)
			}
			bw.writeBit(0)
			for j := 0; j < k; j++ {
				bw.writeBit(e.Bits.At(j))
			}
		case Reference:
			if e.Index < 0 || e.Index >= len(c.Bases) {
				return nil, fmt.Errorf("base %v: %w: reference %v out of range", i, ErrCorrupted, e.Index)
			}
			bw.writeBit(1)
			bw.writeBits(uint64(e.Index), referenceIndexBits)
		default:
			return nil, fmt.Errorf("base %v: %w: unknown entry %T", i, ErrCorrupted, b)
		}
	}
	for i, d := range c.Deviations {
		if d.Len() != m+1 {
			return nil, fmt.Errorf("deviation %v: %w: length %v, want %v", i, ErrCorrupted, d.Len(), m+1)
		}
		for j := 0; j <= m; j++ {
			bw.writeBit(d.At(j))
		}
	}
	bw.flush()

	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *Compressed) UnmarshalBinary(data []byte) error {
	if len(data) < len(wireMagic)+6 {
		return fmt.Errorf("%w: truncated header", ErrCorrupted)
	}
	if string(data[:len(wireMagic)]) != wireMagic {
		return fmt.Errorf("%w: bad magic %q", ErrCorrupted, data[:len(wireMagic)])
	}
	rest := data[len(wireMagic):]

	var family Family
	switch rest[0] {
	case 7:
		family = SevenFour
	case 15:
		family = FifteenEleven
	default:
		return fmt.Errorf("%w: codeword length %v", hamming.ErrUnsupportedCodeLength, rest[0])
	}
	padded := rest[1]&flagPadded != 0
	blocks := int(binary.BigEndian.Uint32(rest[2:6]))

	code, err := family.code()
	if err != nil {
		return err
	}
	k := code.MessageLength()
	m := code.ParitySymbols()

	// Each block needs at least a tag bit plus its m+1 deviation bits, so a
	// count the payload cannot hold is corruption; check before allocating.
	if blocks > 8*len(rest[6:])/(m+2) {
		return fmt.Errorf("%w: block count %v exceeds payload", ErrCorrupted, blocks)
	}

	br := bitReader{data: rest[6:]}
	bases := make([]Base, 0, blocks)
	for i := 0; i < blocks; i++ {
		tag, err := br.readBit()
		if err != nil {
			return fmt.Errorf("base %v: %w", i, err)
		}
		if tag == 0 {
			bits := mat.CSRVec(k)
			for j := 0; j < k; j++ {
				bit, err := br.readBit()
				if err != nil {
					return fmt.Errorf("base %v: %w", i, err)
				}
				bits.Set(j, bit)
			}
			bases = append(bases, Literal{Bits: bits})
			continue
		}
		index, err := br.readBits(referenceIndexBits)
		if err != nil {
			return fmt.Errorf("base %v: %w", i, err)
		}
		if int(index) >= blocks {
			return fmt.Errorf("base %v: %w: reference %v out of range", i, ErrCorrupted, index)
		}
		bases = append(bases, Reference{Index: int(index)})
	}

	deviations := make([]mat.SparseVector, 0, blocks)
	for i := 0; i < blocks; i++ {
		d := mat.CSRVec(m + 1)
		for j := 0; j <= m; j++ {
			bit, err := br.readBit()
			if err != nil {
				return fmt.Errorf("deviation %v: %w", i, err)
			}
			d.Set(j, bit)
		}
		deviations = append(deviations, d)
	}

	c.Family = family
	c.Bases = bases
	c.Deviations = deviations
	c.Padded = padded
	return nil
}

// bitWriter packs bits MSB-first into a bytes.Buffer.
type bitWriter struct {
	buf *bytes.Buffer
	cur byte
	n   uint8
}

func (bw *bitWriter) writeBit(bit int) {
	bw.cur <<= 1
	if bit != 0 {
		bw.cur |= 1
	}
	bw.n++
	if bw.n == 8 {
		bw.buf.WriteByte(bw.cur)
		bw.cur = 0
		bw.n = 0
	}
}

// writeBits writes the low n bits of v, most significant first.
func (bw *bitWriter) writeBits(v uint64, n uint8) {
	for i := int(n) - 1; i >= 0; i-- {
		bw.writeBit(int(v>>uint(i)) & 1)
	}
}

// flush zero pads the current byte and emits it.
func (bw *bitWriter) flush() {
	if bw.n == 0 {
		return
	}
	bw.cur <<= 8 - bw.n
	bw.buf.WriteByte(bw.cur)
	bw.cur = 0
	bw.n = 0
}

// bitReader reads bits MSB-first from a byte slice.
type bitReader struct {
	data []byte
	pos  int
	cur  byte
	n    uint8
}

func (br *bitReader) readBit() (int, error) {
	if br.n == 0 {
		if br.pos >= len(br.data) {
			return 0, fmt.Errorf("%w: bit stream truncated", ErrCorrupted)
		}
		br.cur = br.data[br.pos]
		br.pos++
		br.n = 8
	}
	bit := int(br.cur >> 7)
	br.cur <<= 1
	br.n--
	return bit, nil
}

func (br *bitReader) readBits(n uint8) (uint64, error) {
	var v uint64
	for i := 0; i < int(n); i++ {
		bit, err := br.readBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint64(bit)
	}
	return v, nil
}
