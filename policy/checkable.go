package policy

import "context"

// Checkable is the base capability for validation-bearing types. Embed it and
// register checks during construction; evaluation order is registration order,
// a deliberate property rather than an accident of reflection.
type Checkable struct {
	checks []Check
}

// Register creates a named check and appends it to the evaluation list.
// Returns a *ConfigError for a blank policy name or nil body.
func (c *Checkable) Register(name string, fn CheckFunc) error {
	chk, err := New(name, fn)
	if err != nil {
		return err
	}
	c.checks = append(c.checks, chk)
	return nil
}

// MustRegister registers a check or panics on a configuration error.
// Intended for constructors where a bad policy name is a programming error.
func (c *Checkable) MustRegister(name string, fn CheckFunc) {
	c.checks = append(c.checks, MustCheck(name, fn))
}

// Add appends an already-constructed check to the evaluation list.
func (c *Checkable) Add(chk Check) {
	c.checks = append(c.checks, chk)
}

// Checks returns a copy of the registered checks in evaluation order.
func (c *Checkable) Checks() []Check {
	out := make([]Check, len(c.checks))
	copy(out, c.checks)
	return out
}

// Len returns the number of registered checks.
func (c *Checkable) Len() int {
	return len(c.checks)
}

// ApplyRules invokes every registered check in registration order and returns
// the logical OR of their results. Boolean outcomes never short-circuit: all
// checks run regardless of earlier results. The first check error aborts
// evaluation immediately; remaining checks are neither tagged nor run.
func (c *Checkable) ApplyRules(ctx context.Context) (bool, error) {
	any := false
	for _, chk := range c.checks {
		ok, err := chk.Run(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			any = true
		}
	}
	return any, nil
}

// Validate runs ApplyRules and discards the boolean, existing only to trigger
// the checks and let a failure propagate to an enclosing report scope.
func (c *Checkable) Validate(ctx context.Context) error {
	_, err := c.ApplyRules(ctx)
	return err
}
