package hamming

import (
	"errors"
	"strconv"
	"testing"

	"github.com/nathanhack/gdd/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

func vectorFrom(bits []int) mat.SparseVector {
	v := mat.CSRVec(len(bits))
	for i, b := range bits {
		if b == 1 {
			v.Set(i, 1)
		}
	}
	return v
}

func TestNew(t *testing.T) {
	tests := []struct {
		paritySymbols int
		n, k          int
	}{
		{3, 7, 4},
		{4, 15, 11},
		{5, 31, 26},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := New(test.paritySymbols)
			if err != nil {
				t.Fatalf("expected no error found: %v", err)
			}

			if !actual.Validate() {
				t.Fatalf("expected valid linearblock code")
			}
			if actual.CodewordLength() != test.n || actual.MessageLength() != test.k {
				t.Fatalf("expected (%v,%v) found (%v,%v)", test.n, test.k,
					actual.CodewordLength(), actual.MessageLength())
			}
		})
	}
}

func TestNewTooFewParitySymbols(t *testing.T) {
	if _, err := New(2); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestParityCheckColumns(t *testing.T) {
	// construction already enforces distinct nonzero columns; keep the
	// property visible against the catalog codes anyway
	for _, l := range []*linearblock.LinearBlock{SevenFour(), FifteenEleven()} {
		seen := make(map[string]bool)
		for i := 0; i < l.CodewordLength(); i++ {
			col := l.H.Column(i)
			if col.IsZero() {
				t.Fatalf("(%v,%v) column %v is zero", l.CodewordLength(), l.MessageLength(), i)
			}
			key := col.String()
			if seen[key] {
				t.Fatalf("(%v,%v) column %v duplicates an earlier column", l.CodewordLength(), l.MessageLength(), i)
			}
			seen[key] = true
		}
	}
}

func TestFixedScenario(t *testing.T) {
	// [1,0,1,1] through the leading-identity (7,4) generator
	l := SevenFour()

	message := vectorFrom([]int{1, 0, 1, 1})
	expected := vectorFrom([]int{1, 0, 1, 1, 0, 1, 0})

	codeword, err := l.Encode(message)
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}
	if !codeword.Equals(expected) {
		t.Fatalf("expected %v but found %v", expected, codeword)
	}

	for p := 0; p < l.CodewordLength(); p++ {
		received := mat.CSRVecCopy(codeword)
		received.Set(p, received.At(p)^1)

		decoded, _, err := l.Decode(received)
		if err != nil {
			t.Fatalf("bit %v: expected no error found: %v", p, err)
		}
		if !decoded.Equals(message) {
			t.Fatalf("bit %v: expected %v but found %v", p, message, decoded)
		}
	}
}

func TestByMessageLength(t *testing.T) {
	tests := []struct {
		k         int
		expectedN int
		err       bool
	}{
		{4, 7, false},
		{11, 15, false},
		{5, 0, true},
		{0, 0, true},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			l, err := ByMessageLength(test.k)
			if test.err {
				if !errors.Is(err, ErrUnsupportedCodeLength) {
					t.Fatalf("expected ErrUnsupportedCodeLength found: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error found: %v", err)
			}
			if l.CodewordLength() != test.expectedN {
				t.Fatalf("expected codeword length %v found %v", test.expectedN, l.CodewordLength())
			}
		})
	}
}

func TestByCodewordLength(t *testing.T) {
	tests := []struct {
		n         int
		expectedK int
		err       bool
	}{
		{7, 4, false},
		{15, 11, false},
		{8, 0, true},
		{31, 0, true},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			l, err := ByCodewordLength(test.n)
			if test.err {
				if !errors.Is(err, ErrUnsupportedCodeLength) {
					t.Fatalf("expected ErrUnsupportedCodeLength found: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error found: %v", err)
			}
			if l.MessageLength() != test.expectedK {
				t.Fatalf("expected message length %v found %v", test.expectedK, l.MessageLength())
			}
		})
	}
}
