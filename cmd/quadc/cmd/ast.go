package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadlang/quadc/internal/prettyprinter"
)

var chartPath string

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a program and print its syntax tree",
	Long: `Parse a program and print an indented tree listing. With --chart,
additionally write the chart sidecar file consumed by the AST chart
page.

Examples:
  quadc ast program.qc
  quadc ast --chart AST.js program.qc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)

	astCmd.Flags().StringVar(&chartPath, "chart", "", "write the JSON-ish chart sidecar to this file")
}

func runAST(cmd *cobra.Command, args []string) error {
	source, path, err := readInput(args)
	if err != nil {
		return err
	}

	ctx := frontend(source, path)
	if ctx.Failed() {
		return reportErrors(ctx)
	}

	printer := prettyprinter.NewTreePrinter()
	printer.Print(ctx.Root)
	fmt.Print(printer.String())

	if chartPath != "" {
		chart := prettyprinter.NewChartPrinter()
		chart.Print(ctx.Root, ctx.RunID.String())
		if err := os.WriteFile(chartPath, []byte(chart.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write chart file: %w", err)
		}
	}
	return nil
}
