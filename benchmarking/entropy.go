package benchmarking

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ByteEntropy returns the zeroth-order entropy of the byte distribution in
// data, in bits per byte. Zero-length input has zero entropy.
func ByteEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	counts := make([]float64, 256)
	for _, b := range data {
		counts[b]++
	}
	for i := range counts {
		counts[i] /= float64(len(data))
	}

	// stat.Entropy works in nats
	return stat.Entropy(counts) / math.Ln2
}
