// Package output renders run results in human- and machine-readable formats.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verity-dev/verity/internal/engine"
)

// TableFormatter formats run results as a human-readable table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// Format writes the run result as a table.
func (f *TableFormatter) Format(result *engine.RunResult) error {
	fmt.Fprintf(f.writer, "Suite: %s (v%s)\n", result.SuiteName, result.SuiteVersion)
	fmt.Fprintf(f.writer, "Run: %s\n", result.RunID)
	fmt.Fprintf(f.writer, "Executed: %s\n", result.StartTime.Format(time.RFC3339))
	fmt.Fprintf(f.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintln(f.writer)

	if len(result.Rules) == 0 {
		fmt.Fprintln(f.writer, "No checks executed.")
		return nil
	}

	fmt.Fprintln(f.writer, "Checks:")
	fmt.Fprintln(f.writer, strings.Repeat("─", 80))

	for _, rule := range result.Rules {
		f.formatRule(rule)
	}

	fmt.Fprintln(f.writer, strings.Repeat("─", 80))
	fmt.Fprintln(f.writer)

	f.formatAttempted(result)
	f.formatSummary(result.Summary)

	if result.Err != "" {
		fmt.Fprintln(f.writer)
		fmt.Fprintf(f.writer, "Failure: %s\n", result.Err)
	}

	return nil
}

// formatRule formats a single rule outcome.
func (f *TableFormatter) formatRule(rule engine.RuleOutcome) {
	fmt.Fprintf(f.writer, "%s %s\n", f.getStatusSymbol(rule.Status), rule.Policy)

	if rule.Description != "" {
		fmt.Fprintf(f.writer, "  Description: %s\n", rule.Description)
	}
	if len(rule.Tags) > 0 {
		fmt.Fprintf(f.writer, "  Tags: %s\n", strings.Join(rule.Tags, ", "))
	}

	fmt.Fprintf(f.writer, "  Status: %s\n", strings.ToUpper(string(rule.Status)))
	if rule.Message != "" {
		fmt.Fprintf(f.writer, "  Message: %s\n", rule.Message)
	}
	fmt.Fprintln(f.writer)
}

// formatAttempted lists the policies tagged during the run, in order.
func (f *TableFormatter) formatAttempted(result *engine.RunResult) {
	fmt.Fprintln(f.writer, "Policies attempted:")
	if len(result.Attempted) == 0 {
		fmt.Fprintln(f.writer, "  (none)")
	}
	for i, name := range result.Attempted {
		fmt.Fprintf(f.writer, "  %d. %s\n", i+1, name)
	}
	fmt.Fprintln(f.writer)
}

// formatSummary formats the summary statistics.
func (f *TableFormatter) formatSummary(summary engine.RunSummary) {
	fmt.Fprintln(f.writer, "Summary:")
	fmt.Fprintln(f.writer, strings.Repeat("─", 80))
	fmt.Fprintf(f.writer, "Checks:      %d total\n", summary.Total)
	fmt.Fprintf(f.writer, "  ✓ Passed:  %d\n", summary.Passed)
	fmt.Fprintf(f.writer, "  ✗ Failed:  %d\n", summary.Failed)
	fmt.Fprintf(f.writer, "  ⚠ Errors:  %d\n", summary.Errors)
	fmt.Fprintf(f.writer, "  − Skipped: %d\n", summary.Skipped)
	fmt.Fprintln(f.writer, strings.Repeat("─", 80))
}

// getStatusSymbol returns a symbol for the given status.
func (f *TableFormatter) getStatusSymbol(status engine.Status) string {
	switch status {
	case engine.StatusPass:
		return "✓"
	case engine.StatusFail:
		return "✗"
	case engine.StatusError:
		return "⚠"
	case engine.StatusSkipped:
		return "−"
	default:
		return "?"
	}
}
