package gdd

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

// byteToBits converts a byte to its 8-bit vector, most significant bit
// first. The pipeline depends on this ordering: bit 0 of the vector is the
// high bit of the byte.
func byteToBits(b byte) mat.SparseVector {
	return bytesToBits([]byte{b})
}

// bytesToBits concatenates the MSB-first bit forms of bs.
func bytesToBits(bs []byte) mat.SparseVector {
	v := mat.CSRVec(8 * len(bs))
	for i, b := range bs {
		for j := 0; j < 8; j++ {
			v.Set(i*8+j, int(b>>(7-j))&1)
		}
	}
	return v
}

// bitsToBytes reverses bytesToBits. The vector length must be a multiple
// of eight.
func bitsToBytes(v mat.SparseVector) ([]byte, error) {
	if v.Len()%8 != 0 {
		return nil, fmt.Errorf("bit vector length %v is not a whole number of bytes", v.Len())
	}

	bs := make([]byte, v.Len()/8)
	for _, i := range v.NonzeroArray() {
		bs[i/8] |= 1 << (7 - i%8)
	}
	return bs, nil
}

// vectorBits flattens a bit vector into a plain int slice, used by the JSON
// representation.
func vectorBits(v mat.SparseVector) []int {
	bits := make([]int, v.Len())
	for _, i := range v.NonzeroArray() {
		bits[i] = 1
	}
	return bits
}

// bitsVector builds a bit vector from a plain int slice.
func bitsVector(bits []int) (mat.SparseVector, error) {
	v := mat.CSRVec(len(bits))
	for i, b := range bits {
		switch b {
		case 0:
		case 1:
			v.Set(i, 1)
		default:
			return nil, fmt.Errorf("bit %v is %v, must be 0 or 1", i, b)
		}
	}
	return v, nil
}
