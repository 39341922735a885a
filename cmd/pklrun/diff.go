package main

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/pkl-community/pklcore/internal/modcache"
	"github.com/pkl-community/pklcore/pkg/pklapi"
)

func init() {
	rootCmd.AddCommand(newDiffCmd())
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <module1> <module2>",
		Short: "Compare two modules' exported text forms",
		Long: `The diff command loads and evaluates two modules independently (each
gets its own module cache and Holder, so neither run can see the other's
cached state) and prints a unified diff of their exported text forms.

Example:
  pklrun diff before.json after.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1])
		},
	}
}

func runDiff(pathA, pathB string) error {
	textA, err := evalText(pathA)
	if err != nil {
		printError("%v\n", err)
		return err
	}
	textB, err := evalText(pathB)
	if err != nil {
		printError("%v\n", err)
		return err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(textA),
		B:        difflib.SplitLines(textB),
		FromFile: pathA,
		ToFile:   pathB,
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("computing diff: %w", err)
	}
	if out == "" {
		fmt.Println("no differences")
		return nil
	}
	fmt.Print(out)
	return nil
}

func evalText(path string) (string, error) {
	holder := pklapi.DefaultHolder()
	mc := modcache.New(runtimeVersion)
	module, err := loadModule(mc, holder, path)
	if err != nil {
		return "", err
	}
	return renderText(module.Export()), nil
}
