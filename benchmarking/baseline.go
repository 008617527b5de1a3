package benchmarking

import (
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/nathanhack/avgstd"
)

// ZstdSize returns the zstd-compressed size of data in bytes, used as a
// reference point when judging GDD ratios.
func ZstdSize(data []byte) int {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		panic(err)
	}
	defer enc.Close()

	return len(enc.EncodeAll(data, nil))
}

// ZstdRatio returns ZstdSize over the original size.
func ZstdRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	return float64(ZstdSize(data)) / float64(len(data))
}

// ZstdBaseline wraps createData so every trial input it produces is also
// compressed with zstd, accumulating the baseline ratio over the same bytes
// the trials consume. Read the returned stats after the run finishes.
func ZstdBaseline(createData DataConstructor) (DataConstructor, *avgstd.AvgStd) {
	baseline := &avgstd.AvgStd{}
	mux := sync.Mutex{}
	wrapped := func(trial int) []byte {
		data := createData(trial)
		ratio := ZstdRatio(data)
		mux.Lock()
		baseline.Update(ratio)
		mux.Unlock()
		return data
	}
	return wrapped, baseline
}
