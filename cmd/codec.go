package cmd

import (
	"github.com/nathanhack/gdd/cmd/internal/compress"
	"github.com/nathanhack/gdd/cmd/internal/decompress"

	"github.com/spf13/cobra"
)

// compressCmd represents the compress command
var compressCmd = &cobra.Command{
	Use:     "compress INPUT_FILE OUTPUT_FILE",
	Aliases: []string{"c"},
	Short:   "compresses a file with GDD",
	Long:    `Compresses a file with GDD and writes the binary compressed stream to OUTPUT_FILE.`,
	Args:    cobra.ExactArgs(2),
	Run:     compress.Run,
}

// decompressCmd represents the decompress command
var decompressCmd = &cobra.Command{
	Use:     "decompress INPUT_FILE OUTPUT_FILE",
	Aliases: []string{"d"},
	Short:   "decompresses a GDD compressed file",
	Long:    `Decompresses a binary compressed stream produced by compress, restoring the original bytes.`,
	Args:    cobra.ExactArgs(2),
	Run:     decompress.Run,
}

func init() {
	rootCmd.AddCommand(compressCmd)
	compressCmd.Flags().StringVarP(&compress.Code, "code", "c", "7", "the code family by codeword length: 7 for Hamming(7,4) or 15 for Hamming(15,11)")

	rootCmd.AddCommand(decompressCmd)
}
