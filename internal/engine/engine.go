package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/verity-dev/verity/internal/config"
	"github.com/verity-dev/verity/policy"
)

// Options controls which rules run.
type Options struct {
	// Include filters (OR logic within slice)
	IncludeTags     []string
	IncludePolicies []string // Exclusive - if set, other filters ignored

	// Exclude filters (take precedence over includes)
	ExcludeTags     []string
	ExcludePolicies []string
}

// Engine compiles suite rules into policy checks and runs them under a
// report scope.
type Engine struct {
	opts Options
}

// New creates an engine with the given rule filters.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// compiledRule pairs an active rule with its compiled expect program and the
// outcome slot it writes to.
type compiledRule struct {
	rule    config.Rule
	program *vm.Program
	slot    int
}

// Run executes one suite. Rules run sequentially in file order inside a
// single report scope; the first check error aborts the run and the result's
// Attempted list is the scope's trail. The returned error is the aggregate
// *policy.ReportError for check failures, or a plain error for setup
// problems (an unparseable expect expression). The result is non-nil in the
// aggregate-failure case so callers can still render the report.
func (e *Engine) Run(ctx context.Context, suite *config.Suite) (*RunResult, error) {
	result := NewRunResult(suite.Metadata.Name, suite.Metadata.Version)

	env := buildEnv(suite.Vars)

	var active []compiledRule
	for _, rule := range suite.Checks {
		outcome := RuleOutcome{
			Policy:      rule.Policy,
			Description: rule.Description,
			Tags:        rule.Tags,
			Status:      StatusSkipped,
		}

		if run, reason := e.shouldRun(&rule); !run {
			outcome.Message = reason
			result.Rules = append(result.Rules, outcome)
			continue
		}

		program, err := expr.Compile(rule.Expect, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("invalid expect expression for policy %s: %w", rule.Policy, err)
		}

		outcome.Message = "not reached"
		result.Rules = append(result.Rules, outcome)
		active = append(active, compiledRule{rule: rule, program: program, slot: len(result.Rules) - 1})
	}

	checkable := &policy.Checkable{}
	for _, cr := range active {
		if err := checkable.Register(cr.rule.Policy, e.checkFunc(cr, env, result)); err != nil {
			return nil, err
		}
	}

	attempted, err := policy.Collect(ctx, checkable.Validate)
	result.Attempted = attempted
	if err != nil {
		result.Err = err.Error()
	}
	result.Finalize()

	if err != nil {
		return result, err
	}
	return result, nil
}

// checkFunc wraps one compiled rule into a policy check body that records
// its own outcome before returning.
func (e *Engine) checkFunc(cr compiledRule, env map[string]interface{}, result *RunResult) policy.CheckFunc {
	return func(_ context.Context) (bool, error) {
		started := time.Now()
		outcome := &result.Rules[cr.slot]

		out, err := expr.Run(cr.program, env)
		outcome.Duration = time.Since(started)

		if err != nil {
			outcome.Status = StatusError
			outcome.Message = err.Error()
			return false, fmt.Errorf("check %s: %w", cr.rule.Policy, err)
		}

		held := out.(bool)
		if held {
			outcome.Status = StatusPass
			outcome.Message = "condition held"
		} else {
			outcome.Status = StatusFail
			outcome.Message = "condition did not hold"
		}
		return held, nil
	}
}

// shouldRun determines if a rule should run based on the configured filters.
func (e *Engine) shouldRun(rule *config.Rule) (bool, string) {
	// EXCLUSIVE MODE: --policy overrides all other filters
	if len(e.opts.IncludePolicies) > 0 {
		if contains(e.opts.IncludePolicies, rule.Policy) {
			return true, ""
		}
		return false, "excluded by --policy filter"
	}

	if contains(e.opts.ExcludePolicies, rule.Policy) {
		return false, "excluded by --exclude-policy"
	}

	if len(e.opts.ExcludeTags) > 0 && rule.HasAnyTag(e.opts.ExcludeTags) {
		return false, "excluded by --exclude-tags"
	}

	if len(e.opts.IncludeTags) > 0 && !rule.HasAnyTag(e.opts.IncludeTags) {
		return false, "excluded by --tags filter"
	}

	return true, ""
}

// buildEnv copies suite vars and adds the fail helper, which lets a suite
// force a domain error from inside an expression. A user var named fail
// takes precedence.
func buildEnv(vars map[string]interface{}) map[string]interface{} {
	env := map[string]interface{}{
		"fail": func(msg string) (bool, error) {
			return false, errors.New(msg)
		},
	}
	for k, v := range vars {
		env[k] = v
	}
	return env
}

// contains checks if a string is present in a slice.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
