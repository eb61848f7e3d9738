package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-dev/verity/internal/config"
)

func TestBuildScaffold(t *testing.T) {
	suite, err := buildScaffold("baseline", []string{"env_is_production", "disk_has_space"})
	require.NoError(t, err)

	assert.Equal(t, "baseline", suite.Metadata.Name)
	require.Equal(t, 2, suite.RuleCount())
	assert.Equal(t, "env_is_production", suite.Checks[0].Policy)
	assert.Equal(t, "true", suite.Checks[0].Expect)
}

func TestBuildScaffold_RequiresName(t *testing.T) {
	_, err := buildScaffold("", nil)
	require.Error(t, err)
}

func TestBuildScaffold_DefaultPolicy(t *testing.T) {
	suite, err := buildScaffold("baseline", nil)
	require.NoError(t, err)
	require.Equal(t, 1, suite.RuleCount())
	assert.Equal(t, "policy_1", suite.Checks[0].Policy)
}

func TestWriteSuite_RoundTrips(t *testing.T) {
	suite, err := buildScaffold("baseline", []string{"policy_1"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, writeSuite(suite, path))

	loaded, err := config.LoadSuite(path)
	require.NoError(t, err)
	assert.Equal(t, "baseline", loaded.Metadata.Name)
	assert.True(t, loaded.HasRule("policy_1"))
}

func TestWriteSuite_RefusesOverwrite(t *testing.T) {
	suite, err := buildScaffold("baseline", nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

	err = writeSuite(suite, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
