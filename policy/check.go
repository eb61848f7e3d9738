package policy

import (
	"context"
	"strings"
)

// CheckFunc is the body of a single validation check. It takes no arguments
// beyond the context, reports whether the checked condition holds, and may
// fail with a domain error.
type CheckFunc func(ctx context.Context) (bool, error)

// Check pairs a policy name with a check body. The zero value is invalid;
// construct with New or MustCheck.
type Check struct {
	name string
	fn   CheckFunc
}

// New creates a named check. The policy name must be non-blank and the body
// non-nil; violations are configuration errors raised eagerly, never at
// check time.
func New(name string, fn CheckFunc) (Check, error) {
	if strings.TrimSpace(name) == "" {
		return Check{}, &ConfigError{Field: "policy", Message: "policy name not set"}
	}
	if fn == nil {
		return Check{}, &ConfigError{Field: "check", Message: "check function not set"}
	}
	return Check{name: name, fn: fn}, nil
}

// MustCheck creates a named check or panics on a configuration error.
func MustCheck(name string, fn CheckFunc) Check {
	c, err := New(name, fn)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the policy name this check is tagged with.
func (c Check) Name() string {
	return c.name
}

// Run tags the active trail with the policy name and then invokes the check
// body, returning its result or error unchanged. Tagging happens before
// invocation so a check that fails still appears in the report. Outside a
// report scope the tag is a no-op and the body runs normally.
func (c Check) Run(ctx context.Context) (bool, error) {
	if trail, ok := FromContext(ctx); ok {
		trail.add(c.name)
	}
	return c.fn(ctx)
}
