package compress

import (
	"fmt"
	"os"

	"github.com/nathanhack/gdd/gdd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Code string
)

var Run = func(cmd *cobra.Command, args []string) {
	family, err := gdd.ParseFamily(Code)
	if err != nil {
		fmt.Println(err)
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("unable to read input file: ", err)
		return
	}

	compressed, err := gdd.Compress(data, family)
	if err != nil {
		fmt.Println("unable to compress: ", err)
		return
	}

	bs, err := compressed.MarshalBinary()
	if err != nil {
		fmt.Println("unable to serialize the compressed stream: ", err)
		return
	}

	err = os.WriteFile(args[1], bs, 0644)
	if err != nil {
		fmt.Println("unable to write file: ", err)
		return
	}

	originalBits := 8 * len(data)
	coreBits := compressed.SizeBits()
	logrus.Infof("%v: %v bytes -> %v bytes on disk", family, len(data), len(bs))
	if originalBits > 0 {
		logrus.Infof("bases+deviations: %v bits vs %v bits (%.1f%% reduction), %v of %v bases deduplicated",
			coreBits, originalBits,
			100-100*float64(coreBits)/float64(originalBits),
			compressed.Blocks()-compressed.LiteralCount(), compressed.Blocks())
	}
}
