// Package benchmarking measures GDD compression over generated data:
// ratio, dedup rate, input entropy, and a round-trip check per trial.
package benchmarking

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/gdd/gdd"
	"github.com/nathanhack/threadpool"
)

type Stats struct {
	Ratio          avgstd.AvgStd // compressed bits / original bits
	DedupRate      avgstd.AvgStd // fraction of blocks stored as back references
	Entropy        avgstd.AvgStd // input entropy in bits per byte
	RoundTripError avgstd.AvgStd // 1 when decompress(compress(data)) != data
}

func (s Stats) String() string {
	return fmt.Sprintf("{Ratio:%0.03f, Dedup:%0.03f, Entropy:%0.02f bits/byte, RoundTripError:%0.04f}",
		s.Ratio.Mean,
		s.DedupRate.Mean,
		s.Entropy.Mean,
		s.RoundTripError.Mean,
	)
}

type Checkpoints func(updatedStats Stats)

// DataConstructor returns the input bytes for one trial; it must return at
// least one byte and may be called from multiple goroutines.
type DataConstructor func(trial int) (data []byte)

// BenchmarkCompression runs trials of compress/decompress through the given
// code family and accumulates stats. Trials run on a threadpool; each trial
// has its own dedup table inside Compress, so splitting across workers does
// not change any single trial's result.
func BenchmarkCompression(ctx context.Context,
	trials, threads int,
	createData DataConstructor,
	family gdd.Family,
	checkpoints Checkpoints,
	showProgress bool) Stats {
	return BenchmarkCompressionContinueStats(ctx, trials, threads, createData, family, checkpoints, Stats{}, showProgress)
}

// BenchmarkCompressionContinueStats continues accumulating into
// previousStats until it holds `trials` trials in total.
func BenchmarkCompressionContinueStats(ctx context.Context,
	trials, threads int,
	createData DataConstructor,
	family gdd.Family,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trialsToRun := trials - previousStats.Ratio.Count
	if trialsToRun <= 0 {
		return previousStats
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}

	pool := threadpool.NewFixedSize(ctx, threads, trialsToRun)
	statsMux := sync.Mutex{}

	trial := func(i int) {
		if showProgress {
			bar.Increment()
		}
		data := createData(i)

		compressed, err := gdd.Compress(data, family)
		if err != nil {
			// valid input through a catalog family cannot fail to compress
			panic(err)
		}

		ratio := float64(compressed.SizeBits()) / float64(8*len(data))
		dedup := float64(compressed.Blocks()-compressed.LiteralCount()) / float64(compressed.Blocks())

		roundTripError := 0.0
		restored, err := gdd.Decompress(compressed)
		if err != nil || !bytes.Equal(restored, data) {
			roundTripError = 1.0
		}

		entropy := ByteEntropy(data)

		statsMux.Lock()
		previousStats.Ratio.Update(ratio)
		previousStats.DedupRate.Update(dedup)
		previousStats.Entropy.Update(entropy)
		previousStats.RoundTripError.Update(roundTripError)
		if checkpoints != nil {
			checkpoints(previousStats) //give them the updated checkpoint
		}
		statsMux.Unlock()
	}

	for i := previousStats.Ratio.Count; i < trials; i++ {
		tmp := i
		pool.Add(func() { trial(tmp) })
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}
	return previousStats
}
