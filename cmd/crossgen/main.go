// Command crossgen generates, validates, and converts 5x5 mini
// crossword puzzle documents from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/tcstacks/minixword/cmd/crossgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
