package linearblock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathanhack/gdd/gf2"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidLength is returned when a message or codeword has the wrong length for the code.
	ErrInvalidLength = errors.New("invalid length")
	// ErrUncorrectableSyndrome is returned when a nonzero syndrome matches no parity check column.
	ErrUncorrectableSyndrome = errors.New("uncorrectable syndrome")
)

// DataBitsPosition states where the generator matrix carries its identity
// block, and therefore where the data bits sit verbatim in a codeword.
type DataBitsPosition int

const (
	// Leading means the first k codeword bits are the data bits.
	Leading DataBitsPosition = iota
	// Trailing means the last k codeword bits are the data bits.
	Trailing
)

// LinearBlock is an immutable binary linear block code. G is the k x n
// generator matrix, H the (n-k) x n parity check matrix. The syndrome
// lookup table is built once at construction so Correct is a map lookup
// instead of a column scan.
type LinearBlock struct {
	G            mat.SparseMat
	H            mat.SparseMat
	DataPosition DataBitsPosition
	syndromes    map[string]int
}

// New validates the pair of matrices and builds the code. It requires G to
// be k x n with k < n, H to be (n-k) x n, every row of G orthogonal to every
// row of H, and the columns of H pairwise distinct and nonzero. The column
// conditions are what make single-bit error positions unambiguous, so a
// violation is rejected here rather than surfacing later in Correct.
func New(G, H mat.SparseMat, dataPosition DataBitsPosition) (*LinearBlock, error) {
	k, n := G.Dims()
	hRows, hCols := H.Dims()
	if k >= n {
		return nil, fmt.Errorf("G matrix shape == (rows, cols) where rows < cols required, found (%v, %v)", k, n)
	}
	if hCols != n || hRows != n-k {
		return nil, fmt.Errorf("H matrix shape (%v, %v) inconsistent with G shape (%v, %v)", hRows, hCols, k, n)
	}

	if !validateGH(G, H) {
		return nil, fmt.Errorf("G*H.T != 0: not a valid generator/parity check pair")
	}

	syndromes := make(map[string]int, n)
	for i := 0; i < n; i++ {
		col := H.Column(i)
		if col.IsZero() {
			return nil, fmt.Errorf("H column %v is zero", i)
		}
		key := vectorKey(col)
		if prev, has := syndromes[key]; has {
			return nil, fmt.Errorf("H columns %v and %v are equal", prev, i)
		}
		syndromes[key] = i
	}

	logrus.Debugf("constructed (%v,%v) linear block code", n, k)
	return &LinearBlock{
		G:            G,
		H:            H,
		DataPosition: dataPosition,
		syndromes:    syndromes,
	}, nil
}

// Encode takes in a message and returns the codeword produced by the
// generator matrix.
func (l *LinearBlock) Encode(message mat.SparseVector) (codeword mat.SparseVector, err error) {
	if message.Len() != l.MessageLength() {
		return nil, fmt.Errorf("%w: message length == %v is required but found %v", ErrInvalidLength, l.MessageLength(), message.Len())
	}

	codeword, err = gf2.VecMat(message, l.G)
	if err != nil {
		// dims were checked at construction, so this is a corrupted code value
		panic(err)
	}
	return codeword, nil
}

// Decode takes in a codeword with at most one bit in error and returns the
// message contained in it along with the received word's syndrome. The
// returned syndrome is the one computed before correction: together with
// the message it fully describes the received word.
func (l *LinearBlock) Decode(codeword mat.SparseVector) (message, syndrome mat.SparseVector, err error) {
	n := l.CodewordLength()
	if codeword.Len() != n {
		return nil, nil, fmt.Errorf("%w: codeword length == %v required but found %v", ErrInvalidLength, n, codeword.Len())
	}

	syndrome, err = gf2.MatVec(l.H, codeword)
	if err != nil {
		panic(err)
	}

	fixed, err := l.Correct(codeword, syndrome)
	if err != nil {
		return nil, nil, err
	}

	k := l.MessageLength()
	switch l.DataPosition {
	case Leading:
		message = fixed.Slice(0, k)
	default:
		message = fixed.Slice(n-k, k)
	}
	return message, syndrome, nil
}

// Correct returns a copy of codeword with the single bit indicated by the
// syndrome flipped. A zero syndrome returns the codeword as is. The same
// operation also replays a recorded syndrome onto a freshly encoded
// codeword, which is how the compression pipeline reconstructs raw bits.
func (l *LinearBlock) Correct(codeword, syndrome mat.SparseVector) (mat.SparseVector, error) {
	if syndrome.IsZero() {
		return mat.CSRVecCopy(codeword), nil
	}

	bit, has := l.syndromes[vectorKey(syndrome)]
	if !has {
		return nil, fmt.Errorf("%w: no parity check column equals syndrome %v", ErrUncorrectableSyndrome, syndrome)
	}

	fixed := mat.CSRVecCopy(codeword)
	fixed.Set(bit, fixed.At(bit)^1)
	return fixed, nil
}

func (l *LinearBlock) MessageLength() int {
	k, _ := l.G.Dims()
	return k
}

func (l *LinearBlock) ParitySymbols() int {
	m, _ := l.H.Dims()
	return m
}

func (l *LinearBlock) CodewordLength() int {
	_, n := l.H.Dims()
	return n
}

func (l *LinearBlock) CodeRate() float64 {
	return float64(l.MessageLength()) / float64(l.CodewordLength())
}

// Validate will test if this linear block satisfies G*H.T=0, where G is the
// generator matrix and H.T is the transpose of H.
func (l *LinearBlock) Validate() bool {
	return validateGH(l.G, l.H)
}

func (l *LinearBlock) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nG:\n")
	buf.WriteString(l.G.String())
	buf.WriteString("\nH:\n")
	buf.WriteString(l.H.String())
	buf.WriteString(fmt.Sprintf("DataPosition: %v", l.DataPosition))
	buf.WriteString("\n}\n")
	return buf.String()
}

// validateGH tests if G*H.T == 0 where H.T is the transpose of H.
func validateGH(G, H mat.SparseMat) bool {
	gRows, _ := G.Dims()
	hRows, _ := H.Dims()

	// caching rows of H beats taking the actual H.T() then multiplying
	cache := make([]mat.SparseVector, hRows)
	for i := 0; i < hRows; i++ {
		cache[i] = H.Row(i)
	}
	for i := 0; i < gRows; i++ {
		row := G.Row(i)
		for j := 0; j < hRows; j++ {
			//equiv to G*H.T
			if row.Dot(cache[j]) > 0 {
				return false
			}
		}
	}
	return true
}

// vectorKey renders a bit vector into a map key. Built by hand so keys are
// identical across sparsemat implementations.
func vectorKey(v mat.SparseVector) string {
	buf := strings.Builder{}
	buf.Grow(v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.At(i) == 1 {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	return buf.String()
}
