package main

import (
	"fmt"
	"os"

	"github.com/freightlayer/extraction-engine/cmd/extractctl/commands"
)

var version = "0.1.0"

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
