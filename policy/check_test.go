package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passing(_ context.Context) (bool, error) { return true, nil }

func TestNew_Valid(t *testing.T) {
	chk, err := New("policy_1", passing)
	require.NoError(t, err)
	assert.Equal(t, "policy_1", chk.Name())
}

func TestNew_EmptyPolicyName(t *testing.T) {
	_, err := New("", passing)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "policy", cfgErr.Field)
}

func TestNew_BlankPolicyName(t *testing.T) {
	_, err := New("   ", passing)
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNew_NilFunc(t *testing.T) {
	_, err := New("policy_1", nil)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "check", cfgErr.Field)
}

func TestMustCheck_PanicsOnEmptyName(t *testing.T) {
	assert.Panics(t, func() {
		MustCheck("", passing)
	})
}

func TestCheck_RunTagsBeforeInvocation(t *testing.T) {
	// The trail must already contain the policy name when the body runs,
	// so a failing check still shows up in the report.
	chk := MustCheck("policy_1", func(ctx context.Context) (bool, error) {
		trail, ok := FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, []string{"policy_1"}, trail.Names())
		return false, errors.New("boom")
	})

	ctx, scope := Begin(context.Background())
	_, err := chk.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{"policy_1"}, scope.Names())
}

func TestCheck_RunWithoutScope(t *testing.T) {
	// No active scope: tagging is a no-op, the body still runs normally.
	ran := false
	chk := MustCheck("policy_1", func(_ context.Context) (bool, error) {
		ran = true
		return true, nil
	})

	ok, err := chk.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, ran)
}

func TestCheck_RunPropagatesResult(t *testing.T) {
	chk := MustCheck("policy_1", func(_ context.Context) (bool, error) {
		return false, nil
	})

	ctx, _ := Begin(context.Background())
	ok, err := chk.Run(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
