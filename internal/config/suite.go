// Package config provides suite configuration loading and validation for
// Verity. A suite is a YAML document declaring named policy checks whose
// bodies are boolean expressions over the suite's variables.
package config

import "fmt"

// Suite represents a complete check suite configuration.
type Suite struct {
	Metadata   SuiteMetadata          `yaml:"suite"`
	Defaults   *RuleDefaults          `yaml:"defaults,omitempty"`
	Vars       map[string]interface{} `yaml:"vars,omitempty"`
	VarsSchema map[string]interface{} `yaml:"vars_schema,omitempty"`
	Checks     []Rule                 `yaml:"checks"`
}

// SuiteMetadata contains metadata about the suite.
type SuiteMetadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// RuleDefaults defines default values applied to all rules.
// Individual rules can extend these defaults.
type RuleDefaults struct {
	Tags []string `yaml:"tags,omitempty"`
}

// Rule declares a single named policy check.
type Rule struct {
	Policy      string   `yaml:"policy"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Expect      string   `yaml:"expect"`
}

// HasTag checks if the rule carries a specific tag.
func (r *Rule) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag checks if the rule carries any of the specified tags.
func (r *Rule) HasAnyTag(tags []string) bool {
	for _, t := range tags {
		if r.HasTag(t) {
			return true
		}
	}
	return false
}

// GetRule returns a pointer to the rule with the given policy name, or nil.
func (s *Suite) GetRule(policy string) *Rule {
	for i := range s.Checks {
		if s.Checks[i].Policy == policy {
			return &s.Checks[i]
		}
	}
	return nil
}

// HasRule checks if a rule with the given policy name exists in the suite.
func (s *Suite) HasRule(policy string) bool {
	return s.GetRule(policy) != nil
}

// RuleCount returns the number of rules in the suite.
func (s *Suite) RuleCount() int {
	return len(s.Checks)
}

// AddRule adds a rule to the suite, rejecting duplicate policy names.
func (s *Suite) AddRule(r Rule) error {
	if s.HasRule(r.Policy) {
		return fmt.Errorf("duplicate policy: %s", r.Policy)
	}
	s.Checks = append(s.Checks, r)
	return nil
}

// ApplyDefaults merges the suite-level default tags into every rule.
// Rule-specific tags are kept; duplicates are dropped.
func (s *Suite) ApplyDefaults() {
	if s.Defaults == nil || len(s.Defaults.Tags) == 0 {
		return
	}

	for i := range s.Checks {
		rule := &s.Checks[i]

		seen := make(map[string]bool, len(rule.Tags)+len(s.Defaults.Tags))
		merged := make([]string, 0, len(rule.Tags)+len(s.Defaults.Tags))
		for _, tag := range rule.Tags {
			if !seen[tag] {
				seen[tag] = true
				merged = append(merged, tag)
			}
		}
		for _, tag := range s.Defaults.Tags {
			if !seen[tag] {
				seen[tag] = true
				merged = append(merged, tag)
			}
		}
		rule.Tags = merged
	}
}
