package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quadlang/quadc/internal/lexer"
	"github.com/quadlang/quadc/internal/pipeline"
	"github.com/quadlang/quadc/internal/token"
)

var showPos bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a program and print the token stream",
	Long: `Tokenize a program and print its lexemes joined by single spaces,
equivalent to the source modulo whitespace and comments.

Examples:
  quadc tokens program.qc
  quadc tokens --show-pos program.qc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVar(&showPos, "show-pos", false, "print one token per line with kind and position")
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, path, err := readInput(args)
	if err != nil {
		return err
	}

	// Only the lexer runs here; unknown lexemes surface at parse time.
	ctx := pipeline.NewContext(source)
	ctx.FilePath = path
	ctx = (&lexer.LexerProcessor{}).Process(ctx)

	if showPos {
		for _, tok := range ctx.Tokens {
			if tok.Kind == token.FILE_END {
				continue
			}
			fmt.Println(tok)
		}
		return nil
	}

	fmt.Println(lexer.Render(ctx.Tokens))
	return nil
}
