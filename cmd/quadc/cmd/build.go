package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quadlang/quadc/internal/cache"
	"github.com/quadlang/quadc/internal/ir"
)

var (
	noCache    bool
	cachePath  string
	showScopes bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a source file to three-address code",
	Long: `Compile a program and print its intermediate representation.

Successful builds of a file are recorded in a local sqlite cache keyed
by source path and content hash; an unchanged file is served from the
cache without re-running the pipeline. Inline code (-e) and --scopes
builds always run the pipeline and are not recorded.

Examples:
  # Compile a file
  quadc build program.qc

  # Compile inline code
  quadc build -e "{ int a; a = 1; return a; }"

  # Show the scope table of the build
  quadc build --scopes program.qc

  # Force a fresh run
  quadc build --no-cache program.qc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the build cache")
	buildCmd.Flags().StringVar(&cachePath, "cache", "", "build cache location (default: user cache dir)")
	buildCmd.Flags().BoolVar(&showScopes, "scopes", false, "print the scope table after a successful build")
}

func runBuild(cmd *cobra.Command, args []string) error {
	source, path, err := readInput(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	var buildCache *cache.Cache
	useCache := !noCache && !showScopes && path != "<eval>"
	if useCache {
		buildCache, err = openCache()
		if err != nil {
			// A broken cache never blocks a build.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			buildCache = nil
		}
	}
	if buildCache != nil {
		defer buildCache.Close()

		irText, hit, err := buildCache.Lookup(path, cache.HashSource(source))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else if hit {
			if verbose {
				fmt.Fprintf(os.Stderr, "cache hit for %s\n", path)
			}
			fmt.Print(irText)
			return nil
		}
	}

	ctx := compile(source, path)
	if ctx.Failed() {
		return reportErrors(ctx)
	}

	irText := ir.RenderProgram(ctx.IR)
	fmt.Print(irText)

	if showScopes && ctx.GlobalScope != nil {
		fmt.Println()
		fmt.Print(ctx.GlobalScope.Render())
	}

	if buildCache != nil {
		if err := buildCache.Store(path, cache.HashSource(source), ctx.RunID.String(), irText); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	return nil
}

func openCache() (*cache.Cache, error) {
	path := cachePath
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache: no cache dir: %w", err)
		}
		path = filepath.Join(dir, "quadc")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		path = filepath.Join(path, "builds.db")
	}
	return cache.Open(path)
}
