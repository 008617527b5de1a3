package bench

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nathanhack/gdd/benchmarking"
	"github.com/nathanhack/gdd/cmd/internal/tools"
	"github.com/nathanhack/gdd/gdd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Trials    uint
	Threads   uint
	Size      uint
	Alphabets []uint
	Code      string
)

var Run = func(cmd *cobra.Command, args []string) {
	family, err := gdd.ParseFamily(Code)
	if err != nil {
		fmt.Println(err)
		return
	}

	//next we see if the RESULT_JSON exists if so we load it and validate we're running it against the right thing
	data, err := tools.LoadResults(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	//if data is nil then we create it
	if data == nil {
		data = &tools.BenchStats{
			TypeInfo: typeInfo(family),
			Stats:    make(map[uint]benchmarking.Stats),
		}
	}

	//in either case lets validate it
	if data.TypeInfo != typeInfo(family) {
		fmt.Printf("results loaded do not match: expected %v but found %v\n", typeInfo(family), data.TypeInfo)
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	for _, alphabet := range Alphabets {
		if ctx.Err() != nil {
			break
		}
		a := int(alphabet)

		createData, zstdBaseline := benchmarking.ZstdBaseline(func(trial int) []byte {
			return benchmarking.RandomDataAlphabet(int(Size), a)
		})

		logrus.Infof("alphabet %v: running up to %v trials", alphabet, Trials)
		stats := benchmarking.BenchmarkCompressionContinueStats(ctx,
			int(Trials), int(Threads),
			createData, family,
			nil, data.Stats[alphabet], true)
		data.Stats[alphabet] = stats

		if zstdBaseline.Count > 0 {
			logrus.Infof("alphabet %v: %v (zstd baseline ratio %0.3f over %v trials)",
				alphabet, stats, zstdBaseline.Mean, zstdBaseline.Count)
		} else {
			logrus.Infof("alphabet %v: %v", alphabet, stats)
		}

		if err := tools.SaveResults(args[0], data); err != nil {
			fmt.Println(err)
			return
		}
	}
}

func typeInfo(family gdd.Family) string {
	return fmt.Sprintf("GDD:%v/%v bytes", family, Size)
}
