package benchmarking

import (
	"context"
	"math"
	"testing"

	"github.com/nathanhack/gdd/gdd"
)

func TestBenchmarkCompression(t *testing.T) {
	createData := func(trial int) []byte {
		return RandomDataAlphabet(128, 4)
	}

	checkpoints := 0
	stats := BenchmarkCompression(context.Background(), 10, 2, createData, gdd.SevenFour,
		func(updatedStats Stats) { checkpoints++ }, false)

	if stats.Ratio.Count != 10 {
		t.Fatalf("expected 10 trials found %v", stats.Ratio.Count)
	}
	if checkpoints != 10 {
		t.Fatalf("expected 10 checkpoints found %v", checkpoints)
	}
	if stats.RoundTripError.Mean != 0 {
		t.Fatalf("expected no round trip errors found %v", stats.RoundTripError.Mean)
	}
	if stats.Ratio.Mean <= 0 || stats.Ratio.Mean > 1 {
		t.Fatalf("expected ratio in (0,1] found %v", stats.Ratio.Mean)
	}
	// a 4-symbol alphabet has at most 4 distinct bases per stream, so
	// nearly every block dedups
	if stats.DedupRate.Mean < 0.5 {
		t.Fatalf("expected heavy dedup found %v", stats.DedupRate.Mean)
	}
}

func TestBenchmarkCompressionContinueStats(t *testing.T) {
	createData := func(trial int) []byte {
		return RandomData(64)
	}

	stats := BenchmarkCompression(context.Background(), 3, 1, createData, gdd.FifteenEleven, nil, false)
	if stats.Ratio.Count != 3 {
		t.Fatalf("expected 3 trials found %v", stats.Ratio.Count)
	}

	stats = BenchmarkCompressionContinueStats(context.Background(), 5, 1, createData, gdd.FifteenEleven, nil, stats, false)
	if stats.Ratio.Count != 5 {
		t.Fatalf("expected 5 trials found %v", stats.Ratio.Count)
	}

	// already at the requested count, nothing more to run
	stats = BenchmarkCompressionContinueStats(context.Background(), 5, 1, createData, gdd.FifteenEleven, nil, stats, false)
	if stats.Ratio.Count != 5 {
		t.Fatalf("expected 5 trials found %v", stats.Ratio.Count)
	}
}

func TestByteEntropy(t *testing.T) {
	uniform := make([]byte, 256)
	for i := range uniform {
		uniform[i] = byte(i)
	}
	if e := ByteEntropy(uniform); math.Abs(e-8) > 1e-9 {
		t.Fatalf("expected 8 bits/byte found %v", e)
	}

	same := make([]byte, 100)
	if e := ByteEntropy(same); e != 0 {
		t.Fatalf("expected 0 bits/byte found %v", e)
	}

	if e := ByteEntropy(nil); e != 0 {
		t.Fatalf("expected 0 bits/byte found %v", e)
	}
}

func TestRandomDataAlphabet(t *testing.T) {
	data := RandomDataAlphabet(1000, 4)
	if len(data) != 1000 {
		t.Fatalf("expected 1000 bytes found %v", len(data))
	}

	distinct := make(map[byte]bool)
	for _, b := range data {
		distinct[b] = true
	}
	if len(distinct) > 4 {
		t.Fatalf("expected at most 4 distinct bytes found %v", len(distinct))
	}
}

func TestZstdBaseline(t *testing.T) {
	fixed := RandomDataAlphabet(512, 4)
	createData, baseline := ZstdBaseline(func(trial int) []byte {
		return fixed
	})

	stats := BenchmarkCompression(context.Background(), 8, 2, createData, gdd.SevenFour, nil, false)

	if stats.Ratio.Count != 8 {
		t.Fatalf("expected 8 trials found %v", stats.Ratio.Count)
	}
	// the baseline must cover exactly the trial inputs
	if baseline.Count != 8 {
		t.Fatalf("expected 8 baseline samples found %v", baseline.Count)
	}
	if baseline.Mean != ZstdRatio(fixed) {
		t.Fatalf("expected baseline ratio %v found %v", ZstdRatio(fixed), baseline.Mean)
	}
}

func TestZstdSize(t *testing.T) {
	data := RandomDataAlphabet(4096, 2)
	size := ZstdSize(data)
	if size <= 0 || size >= len(data) {
		t.Fatalf("expected a real compressed size found %v", size)
	}
	if r := ZstdRatio(data); r <= 0 || r >= 1 {
		t.Fatalf("expected ratio in (0,1) found %v", r)
	}
}
