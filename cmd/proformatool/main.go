// proformatool parses, validates, and round-trips ProForma 2.0/2.1
// proteoform notation from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/noatgnu/proforma-go/cmd/proformatool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
