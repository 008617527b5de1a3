package chart

import (
	"fmt"
	"os"

	"github.com/nathanhack/gdd/cmd/internal/tools"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var Run = func(cmd *cobra.Command, args []string) {
	outputFile := args[0]

	// loop through all the results files and collect data needed for displaying

	stats := make([]*tools.BenchStats, len(args)-1)
	var err error
	alphabetSet := make(map[uint]bool)
	for i, resultFile := range args[1:] {
		stats[i], err = tools.LoadResults(resultFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		if stats[i] == nil {
			fmt.Printf("results file %v not found\n", resultFile)
			return
		}
		for a := range stats[i].Stats {
			alphabetSet[a] = true
		}
	}

	//now make the x axis values

	alphabets, xnames := xAxisAndValues(alphabetSet)

	f, err := os.Create(outputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	// create a new bar instance
	bar := charts.NewBar()
	// set some global options like Title/Legend/ToolTip or anything else
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: "Compression Ratios",
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
			Type:   "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Alphabet Size",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Compressed / Original",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	bar.SetXAxis(xnames)

	// Put data into instance
	for i, s := range stats {
		bar.AddSeries(args[i+1], series(s, alphabets))
	}

	bar.Render(f)
}

func xAxisAndValues(alphabetSet map[uint]bool) ([]uint, []string) {
	nums := make([]uint, 0, len(alphabetSet))
	strs := make([]string, 0, len(alphabetSet))
	for a := range alphabetSet {
		nums = append(nums, a)
	}

	slices.Sort(nums)

	for _, n := range nums {
		strs = append(strs, fmt.Sprint(n))
	}

	return nums, strs
}

func series(stat *tools.BenchStats, alphabets []uint) []opts.BarData {
	results := make([]opts.BarData, len(alphabets))
	null := opts.BarData{Value: nil}
	for i, a := range alphabets {
		x, has := stat.Stats[a]
		if !has {
			results[i] = null
			continue
		}

		results[i] = opts.BarData{
			Value: x.Ratio.Mean,
		}
	}
	return results
}
