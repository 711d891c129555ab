// Package gateway is the sole authorized call site to the sealed
// external execution runtime. Nothing else in the repository may invoke
// the runtime; every dispatch is gated on a structurally valid ACCEPT
// artifact.
package gateway

import (
	"context"
	"errors"

	"github.com/ppiankov/routegate/internal/artifact"
	"github.com/ppiankov/routegate/internal/model"
)

// ExecFn represents "run the sealed external runtime". It returns the
// runtime's exit status and raw stdout bytes. The gateway never parses
// the byte stream; it only gates whether the call happens.
type ExecFn func(ctx context.Context) (exitStatus int, stdout []byte, err error)

// Result reports the outcome of a gated execution attempt.
type Result struct {
	Executed         bool
	Decision         string // ACCEPT, REJECT, or INVALID
	ExitStatus       int
	Stdout           []byte
	ValidationErrors []string
	Err              error
}

// Gate decisions rendered in results.
const (
	decisionInvalid = "INVALID"
)

// ExecuteIfAccepted dispatches to the runtime if and only if the record
// is structurally valid and carries an ACCEPT decision. REJECT records
// and records that fail validation — including tampered records that
// merely look ACCEPT-ish — return Executed:false without fn ever being
// called. On dispatch, fn is called exactly once and its exit status
// captured. The record itself is never mutated.
func ExecuteIfAccepted(ctx context.Context, rec *artifact.Record, fn ExecFn) Result {
	if err := artifact.Validate(rec); err != nil {
		res := Result{Executed: false, Decision: decisionInvalid}
		var ve *artifact.ValidationError
		if errors.As(err, &ve) {
			res.ValidationErrors = ve.Errors
		} else {
			res.ValidationErrors = []string{err.Error()}
		}
		return res
	}

	if rec.Decision != model.Accept {
		return Result{Executed: false, Decision: string(rec.Decision)}
	}

	status, stdout, err := fn(ctx)
	return Result{
		Executed:   true,
		Decision:   string(model.Accept),
		ExitStatus: status,
		Stdout:     stdout,
		Err:        err,
	}
}
