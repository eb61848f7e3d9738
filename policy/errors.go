package policy

import (
	"fmt"
	"strings"
)

// ConfigError indicates invalid check setup, such as an empty policy name.
// It is raised when the check is constructed, never during evaluation.
type ConfigError struct {
	Field   string // Field that failed validation
	Message string // Error message
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// ReportError is the aggregate failure raised when an error escapes a report
// scope. It carries the ordered list of policy names tagged during the scope,
// including the policy whose check failed. The original error is kept as the
// wrapped cause but does not contribute to the aggregate's own message.
type ReportError struct {
	Policies []string
	cause    error
}

// NewReportError builds an aggregate report failure. Used by scope exit;
// exported for callers that re-raise through their own scope handling.
func NewReportError(policies []string, cause error) *ReportError {
	return &ReportError{Policies: policies, cause: cause}
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("checks failed while applying rules in validation: [%s]",
		strings.Join(e.Policies, ", "))
}

// Unwrap returns the error that escaped the scope body.
func (e *ReportError) Unwrap() error {
	return e.cause
}
