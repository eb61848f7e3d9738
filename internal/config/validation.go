package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Policy names must be alphanumeric with dashes and underscores
var policyNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validate performs structural validation of a suite.
// Returns an error describing all validation failures found.
func Validate(suite *Suite) error {
	var errs []string

	if err := validateMetadata(suite.Metadata); err != nil {
		errs = append(errs, err.Error())
	}

	if err := validateRules(suite.Checks); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("suite validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ValidateVars validates the suite's vars against its vars_schema, when one
// is declared. Suites without a schema always pass.
func ValidateVars(suite *Suite) error {
	if len(suite.VarsSchema) == 0 {
		return nil
	}

	schemaJSON, err := json.Marshal(suite.VarsSchema)
	if err != nil {
		return fmt.Errorf("failed to encode vars_schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("suite-vars.json", bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("invalid vars_schema: %w", err)
	}
	schema, err := compiler.Compile("suite-vars.json")
	if err != nil {
		return fmt.Errorf("invalid vars_schema: %w", err)
	}

	// Round-trip through JSON so the validator sees canonical types.
	varsJSON, err := json.Marshal(suite.Vars)
	if err != nil {
		return fmt.Errorf("failed to encode vars: %w", err)
	}
	var vars interface{}
	if err := json.Unmarshal(varsJSON, &vars); err != nil {
		return fmt.Errorf("failed to decode vars: %w", err)
	}

	if err := schema.Validate(vars); err != nil {
		return fmt.Errorf("vars schema validation failed: %w", err)
	}

	return nil
}

// validateMetadata validates suite metadata fields.
func validateMetadata(meta SuiteMetadata) error {
	var errs []string

	if meta.Name == "" {
		errs = append(errs, "suite name is required")
	}

	if meta.Version == "" {
		errs = append(errs, "suite version is required")
	} else if _, err := semver.NewVersion(meta.Version); err != nil {
		errs = append(errs, fmt.Sprintf("suite version %q is not valid semver", meta.Version))
	}

	if len(errs) > 0 {
		return fmt.Errorf("suite metadata: %s", strings.Join(errs, "; "))
	}

	return nil
}

// validateRules validates the checks section.
func validateRules(rules []Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("at least one check is required")
	}

	seen := make(map[string]bool)
	var errs []string

	for i, rule := range rules {
		if err := validateRule(rule); err != nil {
			errs = append(errs, fmt.Sprintf("check %d: %s", i, err.Error()))
		}

		if rule.Policy != "" {
			if seen[rule.Policy] {
				errs = append(errs, fmt.Sprintf("duplicate policy: %s", rule.Policy))
			}
			seen[rule.Policy] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}

// validateRule validates a single rule.
func validateRule(rule Rule) error {
	var errs []string

	if rule.Policy == "" {
		errs = append(errs, "policy name is required")
	} else if !policyNamePattern.MatchString(rule.Policy) {
		errs = append(errs, fmt.Sprintf("policy name %q must be alphanumeric with dashes and underscores", rule.Policy))
	}

	if strings.TrimSpace(rule.Expect) == "" {
		errs = append(errs, "expect expression is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}
