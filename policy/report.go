// Package policy provides scoped bookkeeping of named validation checks.
// A report scope installs an ordered trail of policy names in the context;
// every check tagged with a policy name records itself on that trail before
// running, so a failed validation can report exactly which policies were
// attempted, in order, including the one that failed.
package policy

import "context"

type trailKey struct{}

// Trail is the ordered record of policy names tagged during one report scope.
// It is owned by the scope that created it; nested scopes install their own
// trail and never write to an enclosing one.
type Trail struct {
	names []string
}

func newTrail() *Trail {
	return &Trail{names: make([]string, 0, 8)}
}

func (t *Trail) add(name string) {
	t.names = append(t.names, name)
}

// Names returns a copy of the recorded policy names in tag order.
func (t *Trail) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of policies tagged so far.
func (t *Trail) Len() int {
	return len(t.names)
}

// FromContext returns the trail installed by the innermost report scope,
// or false if the context carries no active scope.
func FromContext(ctx context.Context) (*Trail, bool) {
	t, ok := ctx.Value(trailKey{}).(*Trail)
	return t, ok
}

// Collect runs body inside a fresh report scope. The derived context passed
// to body carries a new empty trail; the parent context (and any enclosing
// scope's trail) is left untouched.
//
// If body returns an error, Collect returns a *ReportError carrying the
// ordered policy names tagged up to that point, with the original error
// preserved as the wrapped cause. On clean completion it returns the
// recorded names and a nil error.
func Collect(ctx context.Context, body func(ctx context.Context) error) ([]string, error) {
	scoped, scope := Begin(ctx)
	if err := body(scoped); err != nil {
		return scope.Names(), scope.End(err)
	}
	return scope.Names(), nil
}

// Scope is a bracket-style report scope for callers that want to inspect the
// live trail between entry and exit. Obtain one with Begin, run the guarded
// code with the derived context, and finish with End.
type Scope struct {
	trail *Trail
}

// Begin opens a report scope: it installs a fresh trail in a derived context
// and returns the context together with the scope handle. The enclosing
// context keeps whatever trail it had, so nesting restores naturally when
// the caller resumes using the outer context.
func Begin(ctx context.Context) (context.Context, *Scope) {
	trail := newTrail()
	return context.WithValue(ctx, trailKey{}, trail), &Scope{trail: trail}
}

// Names returns the policy names tagged in this scope so far, in tag order.
func (s *Scope) Names() []string {
	return s.trail.Names()
}

// End closes the scope. Given a nil error it returns nil and the trail stays
// available through Names. Given the error that escaped the scope body it
// returns a *ReportError listing every policy tagged during the scope; the
// original error is reachable via errors.Unwrap, not re-raised as-is.
func (s *Scope) End(err error) error {
	if err == nil {
		return nil
	}
	return &ReportError{Policies: s.trail.Names(), cause: err}
}
