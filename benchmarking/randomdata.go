package benchmarking

import (
	"math/rand"
)

// RandomData creates n uniformly random bytes.
func RandomData(n int) []byte {
	data := make([]byte, n)
	rand.Read(data)
	return data
}

// RandomDataAlphabet creates n bytes drawn from a random alphabet of
// `distinct` byte values. Small alphabets produce few distinct bases and so
// exercise the dedup path hard.
func RandomDataAlphabet(n, distinct int) []byte {
	if distinct < 1 {
		distinct = 1
	}
	if distinct > 256 {
		distinct = 256
	}

	alphabet := make([]byte, 0, distinct)
	used := make(map[byte]bool, distinct)
	for len(alphabet) < distinct {
		b := byte(rand.Intn(256))
		if used[b] {
			continue
		}
		used[b] = true
		alphabet = append(alphabet, b)
	}

	data := make([]byte, n)
	for i := range data {
		data[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return data
}
