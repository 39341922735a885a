package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pklrun",
	Short: "Load and evaluate Pkl modules against the pklcore runtime",
	Long: `pklrun is CLI glue around pklcore's embedding surface: configure a
security manager and resource readers via a Holder, load a module through
the module cache, force it, and export the result as text, JSON, or YAML.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}
