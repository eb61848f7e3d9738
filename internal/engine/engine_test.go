package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-dev/verity/internal/config"
	"github.com/verity-dev/verity/policy"
)

func fourPolicySuite() *config.Suite {
	return &config.Suite{
		Metadata: config.SuiteMetadata{Name: "evaluation", Version: "1.0.0"},
		Checks: []config.Rule{
			{Policy: "policy_1", Expect: "false"},
			{Policy: "policy_2", Expect: "true"},
			{Policy: "policy_3", Expect: `fail("no value")`},
			{Policy: "policy_4", Expect: "true"},
		},
	}
}

func TestRun_FailingCheckAbortsAndReportsAttempted(t *testing.T) {
	result, err := New(Options{}).Run(context.Background(), fourPolicySuite())
	require.Error(t, err)
	require.NotNil(t, result)

	var repErr *policy.ReportError
	require.ErrorAs(t, err, &repErr)
	assert.Equal(t, []string{"policy_1", "policy_2", "policy_3"}, repErr.Policies)
	assert.Equal(t, []string{"policy_1", "policy_2", "policy_3"}, result.Attempted)
	assert.Contains(t, errors.Unwrap(err).Error(), "no value")

	require.Len(t, result.Rules, 4)
	assert.Equal(t, StatusFail, result.Rules[0].Status)
	assert.Equal(t, StatusPass, result.Rules[1].Status)
	assert.Equal(t, StatusError, result.Rules[2].Status)
	assert.Equal(t, StatusSkipped, result.Rules[3].Status)
	assert.Equal(t, "not reached", result.Rules[3].Message)

	assert.True(t, result.Errored())
	assert.Equal(t, RunSummary{Total: 4, Passed: 1, Failed: 1, Errors: 1, Skipped: 1}, result.Summary)
}

func TestRun_CleanSuite(t *testing.T) {
	suite := &config.Suite{
		Metadata: config.SuiteMetadata{Name: "clean", Version: "0.1.0"},
		Vars:     map[string]interface{}{"environment": "production", "replicas": 3},
		Checks: []config.Rule{
			{Policy: "env_is_production", Expect: `environment == "production"`},
			{Policy: "replicas_at_least_two", Expect: "replicas >= 2"},
			{Policy: "never_holds", Expect: "false"},
		},
	}

	result, err := New(Options{}).Run(context.Background(), suite)
	require.NoError(t, err)

	// Every rule was attempted in file order, including the false one: a
	// false condition is not a failure of the run.
	assert.Equal(t, []string{"env_is_production", "replicas_at_least_two", "never_holds"}, result.Attempted)
	assert.False(t, result.Errored())
	assert.Equal(t, 2, result.Summary.Passed)
	assert.Equal(t, 1, result.Summary.Failed)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "clean", result.SuiteName)
}

func TestRun_InvalidExpressionIsSetupError(t *testing.T) {
	suite := &config.Suite{
		Metadata: config.SuiteMetadata{Name: "broken", Version: "1.0.0"},
		Checks: []config.Rule{
			{Policy: "policy_1", Expect: "this is not (("},
		},
	}

	result, err := New(Options{}).Run(context.Background(), suite)
	require.Error(t, err)
	assert.Nil(t, result)

	var repErr *policy.ReportError
	assert.False(t, errors.As(err, &repErr), "setup errors are not aggregate failures")
	assert.Contains(t, err.Error(), "policy_1")
}

func TestRun_TagFilteringSkipsWithoutTagging(t *testing.T) {
	suite := &config.Suite{
		Metadata: config.SuiteMetadata{Name: "filtered", Version: "1.0.0"},
		Checks: []config.Rule{
			{Policy: "fast_check", Tags: []string{"fast"}, Expect: "true"},
			{Policy: "slow_check", Tags: []string{"slow"}, Expect: "true"},
		},
	}

	result, err := New(Options{ExcludeTags: []string{"slow"}}).Run(context.Background(), suite)
	require.NoError(t, err)

	// Filtered rules are never registered, so never tagged.
	assert.Equal(t, []string{"fast_check"}, result.Attempted)
	assert.Equal(t, StatusSkipped, result.Rules[1].Status)
	assert.Contains(t, result.Rules[1].Message, "exclude-tags")
}

func TestRun_PolicyFilterIsExclusive(t *testing.T) {
	suite := fourPolicySuite()

	result, err := New(Options{
		IncludePolicies: []string{"policy_2"},
		IncludeTags:     []string{"ignored-when-policy-set"},
	}).Run(context.Background(), suite)
	require.NoError(t, err)

	assert.Equal(t, []string{"policy_2"}, result.Attempted)
	assert.Equal(t, 3, result.Summary.Skipped)
}

func TestRun_UserVarOverridesFailHelper(t *testing.T) {
	suite := &config.Suite{
		Metadata: config.SuiteMetadata{Name: "shadow", Version: "1.0.0"},
		Vars:     map[string]interface{}{"fail": false},
		Checks: []config.Rule{
			{Policy: "policy_1", Expect: "!fail"},
		},
	}

	result, err := New(Options{}).Run(context.Background(), suite)
	require.NoError(t, err)
	assert.Equal(t, StatusPass, result.Rules[0].Status)
}
