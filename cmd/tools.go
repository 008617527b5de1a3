package cmd

import (
	"github.com/nathanhack/gdd/cmd/internal/tools/bench"
	"github.com/nathanhack/gdd/cmd/internal/tools/chart"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for GDD compression",
	Long:    `Tools for GDD compression`,
}

// toolsBenchCmd represents the bench command
var toolsBenchCmd = &cobra.Command{
	Use:     "bench RESULT_JSON",
	Aliases: []string{"b"},
	Short:   "Benchmarks compression over generated data",
	Long: `Benchmarks GDD compression ratios over random data for a range of
alphabet sizes, accumulating the results into RESULT_JSON. Rerunning with
more trials continues from the saved stats.`,
	Args: cobra.ExactArgs(1),
	Run:  bench.Run,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:     "chart OUTPUT_HTML RESULT_JSON...",
	Aliases: []string{"c"},
	Short:   "Charts benchmark results",
	Long:    `Creates an HTML bar chart of compression ratios from one or more bench result files.`,
	Args:    cobra.MinimumNArgs(2),
	Run:     chart.Run,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.AddCommand(toolsBenchCmd)
	toolsBenchCmd.Flags().UintVarP(&bench.Trials, "trials", "n", 100, "the number of trials per alphabet size")
	toolsBenchCmd.Flags().UintVarP(&bench.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
	toolsBenchCmd.Flags().UintVarP(&bench.Size, "size", "s", 4096, "the number of bytes per trial")
	toolsBenchCmd.Flags().UintSliceVarP(&bench.Alphabets, "alphabets", "a", []uint{2, 16, 64, 256}, "the alphabet sizes to benchmark")
	toolsBenchCmd.Flags().StringVarP(&bench.Code, "code", "c", "7", "the code family by codeword length: 7 or 15")

	toolsCmd.AddCommand(toolsChartCmd)
}
