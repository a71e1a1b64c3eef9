package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadlang/quadc/internal/analyzer"
	"github.com/quadlang/quadc/internal/backend"
	"github.com/quadlang/quadc/internal/config"
	"github.com/quadlang/quadc/internal/lexer"
	"github.com/quadlang/quadc/internal/parser"
	"github.com/quadlang/quadc/internal/pipeline"
)

// Version information (set by build flags)
var Version = "0.1.0-dev"

var evalExpr string

var rootCmd = &cobra.Command{
	Use:   "quadc",
	Short: "quadc compiler front end",
	Long: `quadc compiles a small C-like integer language down to a
three-address intermediate representation.

The pipeline tokenizes the source, parses it into a syntax tree,
resolves every name against a nested scope table, and lowers the tree
into quadruples with compiler-minted temporaries and labels.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&evalExpr, "eval", "e", "", "compile inline code instead of reading from file")
}

// readInput resolves the source text from the -e flag or the file arg.
func readInput(args []string) (source, path string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
	}
	path = args[0]
	if !isSourceFile(path) {
		return "", "", fmt.Errorf("%s: not a recognized source file (want %s)", path, strings.Join(config.SourceFileExtensions, ", "))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), path, nil
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// frontend runs lexer and parser only.
func frontend(source, path string) *pipeline.Context {
	ctx := pipeline.NewContext(source)
	ctx.FilePath = path
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	).Run(ctx)
}

// compile runs the full pipeline down to quadruples.
func compile(source, path string) *pipeline.Context {
	ctx := pipeline.NewContext(source)
	ctx.FilePath = path
	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.AnalyzerProcessor{},
		backend.NewGeneratorProcessor(),
	).Run(ctx)
}

// reportErrors renders every diagnostic with its source snippet and
// returns an error suitable for cobra's RunE.
func reportErrors(ctx *pipeline.Context) error {
	for _, diag := range ctx.Errors {
		fmt.Fprintln(os.Stderr, diag.Render())
	}
	return fmt.Errorf("compilation failed")
}
