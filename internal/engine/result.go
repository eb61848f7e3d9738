// Package engine runs suite rules as registered policy checks and collects
// the attempted-policy report.
package engine

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the outcome of a single rule.
type Status string

const (
	// StatusPass indicates the rule's condition held
	StatusPass Status = "pass"
	// StatusFail indicates the rule's condition did not hold (but ran successfully)
	StatusFail Status = "fail"
	// StatusError indicates the rule's check raised an error
	StatusError Status = "error"
	// StatusSkipped indicates the rule was filtered out or never reached
	StatusSkipped Status = "skipped"
)

// RunResult represents the complete result of running one suite.
type RunResult struct {
	RunID        string        `json:"run_id" yaml:"run_id"`
	SuiteName    string        `json:"suite_name" yaml:"suite_name"`
	SuiteVersion string        `json:"suite_version" yaml:"suite_version"`
	StartTime    time.Time     `json:"start_time" yaml:"start_time"`
	EndTime      time.Time     `json:"end_time" yaml:"end_time"`
	Duration     time.Duration `json:"duration_ms" yaml:"duration_ms"`

	// Attempted is the ordered list of policy names tagged during the run,
	// including the policy whose check failed, excluding anything after it.
	Attempted []string `json:"attempted" yaml:"attempted"`

	Rules   []RuleOutcome `json:"rules" yaml:"rules"`
	Err     string        `json:"error,omitempty" yaml:"error,omitempty"`
	Summary RunSummary    `json:"summary" yaml:"summary"`
}

// RuleOutcome represents the outcome of a single rule.
type RuleOutcome struct {
	Policy      string        `json:"policy" yaml:"policy"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Status      Status        `json:"status" yaml:"status"`
	Message     string        `json:"message,omitempty" yaml:"message,omitempty"`
	Duration    time.Duration `json:"duration_ms" yaml:"duration_ms"`
}

// RunSummary provides aggregate statistics about the run.
type RunSummary struct {
	Total   int `json:"total" yaml:"total"`
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
	Errors  int `json:"errors" yaml:"errors"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// NewRunResult creates a run result with a fresh run ID.
func NewRunResult(suiteName, suiteVersion string) *RunResult {
	return &RunResult{
		RunID:        uuid.NewString(),
		SuiteName:    suiteName,
		SuiteVersion: suiteVersion,
		StartTime:    time.Now(),
		Attempted:    []string{},
		Rules:        make([]RuleOutcome, 0),
	}
}

// Errored reports whether the run raised an aggregate failure.
func (r *RunResult) Errored() bool {
	return r.Err != ""
}

// Finalize completes the run result and calculates the summary.
func (r *RunResult) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.calculateSummary()
}

// calculateSummary computes summary statistics from rule outcomes.
func (r *RunResult) calculateSummary() {
	r.Summary = RunSummary{Total: len(r.Rules)}

	for _, rule := range r.Rules {
		switch rule.Status {
		case StatusPass:
			r.Summary.Passed++
		case StatusFail:
			r.Summary.Failed++
		case StatusError:
			r.Summary.Errors++
		case StatusSkipped:
			r.Summary.Skipped++
		}
	}
}
