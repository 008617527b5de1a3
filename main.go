package main

import "github.com/nathanhack/gdd/cmd"

func main() {
	cmd.Execute()
}
