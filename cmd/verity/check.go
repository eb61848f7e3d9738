package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verity-dev/verity/internal/config"
	"github.com/verity-dev/verity/internal/engine"
	"github.com/verity-dev/verity/internal/output"
)

var (
	format          string
	outFile         string
	includeTags     []string
	excludeTags     []string
	includePolicies []string
	excludePolicies []string
	maxConcurrent   int
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <suite.yaml>...",
	Short: "Run policy checks from one or more suites",
	Long: `Load suite configurations and run the declared policy checks.
Each suite runs in its own report scope; a failing check aborts that suite's
run and its report lists every policy attempted up to the failure.

Filtering:
  --tags fast,security       Run checks with 'fast' OR 'security' tags
  --policy env_is_production Run specific policies (exclusive)
  --exclude-tags slow        Exclude checks with the 'slow' tag
  --exclude-policy legacy    Exclude specific policies`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckAction(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml")
	checkCmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file path (default: stdout)")
	checkCmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 4, "Maximum suites run concurrently")

	// Filtering flags
	checkCmd.Flags().StringSliceVar(&includeTags, "tags", nil, "Run checks with these tags (comma-separated)")
	checkCmd.Flags().StringSliceVar(&includePolicies, "policy", nil, "Run specific policies (exclusive, comma-separated)")
	checkCmd.Flags().StringSliceVar(&excludeTags, "exclude-tags", nil, "Exclude checks with these tags (comma-separated)")
	checkCmd.Flags().StringSliceVar(&excludePolicies, "exclude-policy", nil, "Exclude specific policies (comma-separated)")
}

// runCheckAction implements the core logic for the check command.
func runCheckAction(ctx context.Context, paths []string) error {
	suites := make([]*config.Suite, len(paths))
	for i, path := range paths {
		slog.Info("loading suite", "path", path)

		suite, err := config.LoadSuite(path)
		if err != nil {
			return fmt.Errorf("failed to load suite %s: %w", path, err)
		}
		if err := config.ValidateVars(suite); err != nil {
			return fmt.Errorf("suite %s: %w", path, err)
		}

		slog.Info("suite loaded", "name", suite.Metadata.Name, "version", suite.Metadata.Version, "checks", suite.RuleCount())
		suites[i] = suite
	}

	eng := engine.New(engine.Options{
		IncludeTags:     includeTags,
		IncludePolicies: includePolicies,
		ExcludeTags:     excludeTags,
		ExcludePolicies: excludePolicies,
	})

	// Each suite runs in its own goroutine with its own report scope, so
	// trails never interleave across runs.
	results := make([]*engine.RunResult, len(suites))
	runErrs := make([]error, len(suites))

	g, gctx := errgroup.WithContext(ctx)
	if maxConcurrent > 0 {
		g.SetLimit(maxConcurrent)
	}
	for i, suite := range suites {
		g.Go(func() error {
			result, err := eng.Run(gctx, suite)
			results[i] = result
			runErrs[i] = err
			if result == nil && err != nil {
				// Setup failure: abort remaining suites.
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	writer, closeWriter, err := openOutput()
	if err != nil {
		return err
	}
	defer closeWriter()

	failed := 0
	for i, result := range results {
		if err := formatOutput(writer, result, format); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		if runErrs[i] != nil {
			failed++
			slog.Error("suite run failed", "suite", result.SuiteName, "attempted", result.Attempted)
		} else {
			slog.Info("suite run complete",
				"suite", result.SuiteName,
				"duration", result.Duration,
				"passed", result.Summary.Passed,
				"failed", result.Summary.Failed,
				"skipped", result.Summary.Skipped)
		}
	}

	if failed > 0 {
		return fmt.Errorf("check failed: %d of %d suites raised an aggregate failure", failed, len(results))
	}
	return nil
}

// openOutput returns the writer for formatted results.
func openOutput() (io.Writer, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}

	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(outFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	slog.Info("writing output", "file", outFile, "format", format)
	return file, func() { _ = file.Close() }, nil
}

// formatOutput formats the result using the specified formatter.
func formatOutput(writer io.Writer, result *engine.RunResult, format string) error {
	switch format {
	case "table":
		return output.NewTableFormatter(writer).Format(result)
	case "json":
		return output.NewJSONFormatter(writer, true).Format(result)
	case "yaml":
		return output.NewYAMLFormatter(writer).Format(result)
	default:
		return fmt.Errorf("unknown format: %s (supported: table, json, yaml)", format)
	}
}
