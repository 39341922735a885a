package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkl-community/pklcore/internal/modcache"
	"github.com/pkl-community/pklcore/pkg/pklapi"
)

const runtimeVersion = "0.1.0"

var evalFormat string

func init() {
	cmd := newEvalCmd()
	cmd.Flags().StringVar(&evalFormat, "format", "text", "Output format (text, json, yaml)")
	rootCmd.AddCommand(cmd)
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <module>",
		Short: "Load and evaluate a module, printing its exported form",
		Long: `The eval command loads a module through the module cache, forces it
recursively, and prints its exported properties.

Example:
  pklrun eval config.json
  pklrun eval config.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(args[0])
		},
	}
}

func runEval(path string) error {
	holder := pklapi.DefaultHolder()
	mc := modcache.New(runtimeVersion)

	module, err := loadModule(mc, holder, path)
	if err != nil {
		printError("%v\n", err)
		return err
	}

	out, err := render(module.Export(), evalFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
