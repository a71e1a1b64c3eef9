package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quadlang/quadc/internal/ir"
)

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Print the three-address code of a program",
	Long: `Run the full pipeline and print the quadruple listing, always
bypassing the build cache.

Examples:
  quadc ir program.qc
  quadc ir -e "{ int i; i = 0; while (i < 3) { i = i + 1; } return i; }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
}

func runIR(cmd *cobra.Command, args []string) error {
	source, path, err := readInput(args)
	if err != nil {
		return err
	}

	ctx := compile(source, path)
	if ctx.Failed() {
		return reportErrors(ctx)
	}

	fmt.Print(ir.RenderProgram(ctx.IR))
	return nil
}
