package decompress

import (
	"fmt"
	"os"

	"github.com/nathanhack/gdd/gdd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Run = func(cmd *cobra.Command, args []string) {
	bs, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Println("unable to read input file: ", err)
		return
	}

	var compressed gdd.Compressed
	if err := compressed.UnmarshalBinary(bs); err != nil {
		fmt.Println("unable to parse the compressed stream: ", err)
		return
	}

	data, err := gdd.Decompress(&compressed)
	if err != nil {
		fmt.Println("unable to decompress: ", err)
		return
	}

	err = os.WriteFile(args[1], data, 0644)
	if err != nil {
		fmt.Println("unable to write file: ", err)
		return
	}

	logrus.Infof("%v: %v blocks -> %v bytes", compressed.Family, compressed.Blocks(), len(data))
}
