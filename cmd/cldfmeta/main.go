// Command cldfmeta harvests CLDF dataset metadata from Zenodo, downloads
// the dataset archives and extracts cross-dataset statistics.
package main

import (
	"fmt"
	"os"

	"github.com/cldfstats/cldfmeta-cli/internal/adapters/driving/cli"
)

func main() {
	cleanup, err := cli.Initialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cldfmeta: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
