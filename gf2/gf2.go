// Package gf2 provides the mod-2 scalar and matrix arithmetic the codecs
// are built on. Bits are ints restricted to {0,1}, vectors and matrices are
// sparsemat values.
package gf2

import (
	"errors"
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

// ErrDimensionMismatch is returned when vector and matrix shapes disagree.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Add adds two bits over GF(2) (XOR).
func Add(a, b int) int {
	return (a ^ b) & 1
}

// Mul multiplies two bits over GF(2) (AND).
func Mul(a, b int) int {
	return a & b & 1
}

// VecMat computes the row vector v times the matrix m over GF(2).
// The result is the XOR of the rows of m selected by v's nonzero entries,
// which stays cheap when v or m is sparse.
func VecMat(v mat.SparseVector, m mat.SparseMat) (mat.SparseVector, error) {
	rows, cols := m.Dims()
	if v.Len() != rows {
		return nil, fmt.Errorf("%w: vector length %v must equal matrix rows %v", ErrDimensionMismatch, v.Len(), rows)
	}

	result := mat.CSRVec(cols)
	for _, r := range v.NonzeroArray() {
		for _, c := range m.Row(r).NonzeroArray() {
			result.Set(c, result.At(c)^1)
		}
	}
	return result, nil
}

// MatVec computes the matrix m times the column vector v over GF(2).
// Each output entry is the mod-2 dot product of the matching row with v.
func MatVec(m mat.SparseMat, v mat.SparseVector) (mat.SparseVector, error) {
	rows, cols := m.Dims()
	if cols != v.Len() {
		return nil, fmt.Errorf("%w: vector length %v must equal matrix columns %v", ErrDimensionMismatch, v.Len(), cols)
	}

	result := mat.CSRVec(rows)
	for i := 0; i < rows; i++ {
		result.Set(i, m.Row(i).Dot(v))
	}
	return result, nil
}
