// Package seam is the single designated call-site through which the
// external proposal source is consumed. It enforces two structural
// invariants: the source is invoked at most once per run, and its output
// crosses into the rest of the pipeline only as opaque bytes.
package seam

// ViolationError indicates the acquisition seam was used twice on one
// RunContext. This is a caller bug, not a data problem: unlike every
// data-shaped failure it propagates as a hard error instead of
// collapsing into a REJECT artifact.
type ViolationError struct{}

func (e *ViolationError) Error() string {
	return "seam violation: proposal acquisition may be called exactly once per run"
}

// RunContext is a single-use token owned by one pipeline invocation.
// The orchestrating caller creates it and passes it by reference into
// Acquire; a second acquisition against the same context fails with a
// *ViolationError.
type RunContext struct {
	used bool
}

// NewRunContext returns an unused context.
func NewRunContext() *RunContext {
	return &RunContext{}
}

// MarkUsed transitions the context to used. The transition is one-way;
// a second call returns *ViolationError.
func (c *RunContext) MarkUsed() error {
	if c.used {
		return &ViolationError{}
	}
	c.used = true
	return nil
}

// Used reports whether acquisition has already happened on this context.
func (c *RunContext) Used() bool {
	return c.used
}
