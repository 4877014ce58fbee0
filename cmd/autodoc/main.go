package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "autodoc",
		Short:   "autodoc — LLM-backed code documentation generator",
		Version: version,
	}

	root.AddCommand(
		newGenerateCmd(),
		newCacheCmd(),
		newStatsCmd(),
		newTemplatesCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
