package hamming

import (
	"errors"
	"fmt"

	"github.com/nathanhack/gdd/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

// ErrUnsupportedCodeLength is returned when a length selects no catalog code.
var ErrUnsupportedCodeLength = errors.New("unsupported code length")

// New creates the systematic Hamming code with paritySymbols number of
// parity symbols, so n == 2^paritySymbols-1 and k == n-paritySymbols.
// Hamming codes can detect up to two-bit errors or correct one-bit errors
// without detection of uncorrected errors.
//
// The parity check columns are the binary forms of every number in [1,n].
// Here they are laid out systematically: the non-power-of-two values come
// first (in increasing order) followed by the powers of two, which makes
// H = [A.T, I] and G = [I, A] with the data bits leading in the codeword.
func New(paritySymbols int) (*linearblock.LinearBlock, error) {
	if paritySymbols < 3 {
		return nil, fmt.Errorf("hamming codes require >=3 parity symbols, found %v", paritySymbols)
	}
	n := 1<<paritySymbols - 1
	k := n - paritySymbols

	// A has one row per data bit, holding that bit's parity pattern
	A := mat.CSRMat(k, paritySymbols)
	row := 0
	for i := 1; i <= n; i++ {
		if i&(i-1) == 0 {
			// powers of two become the identity block instead
			continue
		}
		for j := 0; j < paritySymbols; j++ {
			if i&(1<<j) > 0 {
				A.Set(row, j, 1)
			}
		}
		row++
	}

	G := mat.DOKMat(k, n)
	G.SetMatrix(mat.CSRIdentity(k), 0, 0)
	G.SetMatrix(A, 0, k)

	H := mat.DOKMat(paritySymbols, n)
	H.SetMatrix(A.T(), 0, 0)
	H.SetMatrix(mat.CSRIdentity(paritySymbols), 0, k)

	return linearblock.New(G, H, linearblock.Leading)
}

// SevenFour returns the Hamming(7,4) code.
func SevenFour() *linearblock.LinearBlock {
	return mustNew(3)
}

// FifteenEleven returns the Hamming(15,11) code.
func FifteenEleven() *linearblock.LinearBlock {
	return mustNew(4)
}

func mustNew(paritySymbols int) *linearblock.LinearBlock {
	l, err := New(paritySymbols)
	if err != nil {
		panic(err)
	}
	return l
}

// ByMessageLength selects a catalog code by its message length (4 or 11).
func ByMessageLength(k int) (*linearblock.LinearBlock, error) {
	switch k {
	case 4:
		return SevenFour(), nil
	case 11:
		return FifteenEleven(), nil
	}
	return nil, fmt.Errorf("%w: no catalog code with message length %v", ErrUnsupportedCodeLength, k)
}

// ByCodewordLength selects a catalog code by its codeword length (7 or 15).
func ByCodewordLength(n int) (*linearblock.LinearBlock, error) {
	switch n {
	case 7:
		return SevenFour(), nil
	case 15:
		return FifteenEleven(), nil
	}
	return nil, fmt.Errorf("%w: no catalog code with codeword length %v", ErrUnsupportedCodeLength, n)
}
