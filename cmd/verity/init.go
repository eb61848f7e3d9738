package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/verity-dev/verity/internal/config"
)

var (
	initName          string
	initPolicies      []string
	initOutput        string
	initNoInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a new check suite",
	Long: `Generate a starter suite YAML with placeholder checks. Without
--no-interactive, missing values are prompted for.`,
	Example: `  verity init
  verity init --name baseline --policies env_is_production,disk_has_space --no-interactive`,
	RunE: runInitAction,
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Suite name")
	initCmd.Flags().StringSliceVar(&initPolicies, "policies", nil, "Starter policy names (comma-separated)")
	initCmd.Flags().StringVar(&initOutput, "output", "suite.yaml", "Output file path")
	initCmd.Flags().BoolVar(&initNoInteractive, "no-interactive", false, "Disable interactive prompts")

	rootCmd.AddCommand(initCmd)
}

func runInitAction(_ *cobra.Command, _ []string) error {
	if !initNoInteractive {
		if initName == "" {
			if err := huh.NewInput().
				Title("Suite name").
				Value(&initName).
				Run(); err != nil {
				return err
			}
		}

		if len(initPolicies) == 0 {
			var raw string
			if err := huh.NewInput().
				Title("Starter policy names (comma-separated)").
				Placeholder("policy_1, policy_2").
				Value(&raw).
				Run(); err != nil {
				return err
			}
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					initPolicies = append(initPolicies, p)
				}
			}
		}
	}

	suite, err := buildScaffold(initName, initPolicies)
	if err != nil {
		return err
	}

	if err := writeSuite(suite, initOutput); err != nil {
		return fmt.Errorf("failed to save suite: %w", err)
	}

	fmt.Printf("✓ Suite saved to %s\n", initOutput)
	fmt.Printf("Run 'verity check %s' to execute it.\n", initOutput)
	return nil
}

// buildScaffold assembles a starter suite with always-true placeholder checks.
func buildScaffold(name string, policies []string) (*config.Suite, error) {
	if name == "" {
		return nil, fmt.Errorf("suite name is required")
	}
	if len(policies) == 0 {
		policies = []string{"policy_1"}
	}

	suite := &config.Suite{
		Metadata: config.SuiteMetadata{
			Name:        name,
			Version:     "0.1.0",
			Description: "Generated by verity init",
		},
	}
	for _, p := range policies {
		if err := suite.AddRule(config.Rule{
			Policy:      p,
			Description: "TODO: describe this policy",
			Expect:      "true",
		}); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(suite); err != nil {
		return nil, err
	}
	return suite, nil
}

// writeSuite marshals the suite to YAML, refusing to overwrite existing files.
func writeSuite(suite *config.Suite, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := yaml.Marshal(suite)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
