package routegate

import (
	"fmt"

	"github.com/ppiankov/routegate/internal/artifact"
	"github.com/ppiankov/routegate/internal/model"
)

// Decision is the gating outcome.
type Decision string

const (
	Accept Decision = Decision(model.Accept)
	Reject Decision = Decision(model.Reject)
)

// Route is the accepted routing envelope.
type Route struct {
	Intent string
	Target string
	Mode   string
}

// Transition describes an accepted single-step lifecycle transition.
type Transition struct {
	OrderID  string
	From     string
	Event    string
	To       string
	Terminal bool
}

// Result is a decision outcome. Exactly one of Route and Transition is
// set on ACCEPT, selected by Kind; Reason is set only on REJECT.
type Result struct {
	RunID         string
	Decision      Decision
	Reason        string
	Kind          string
	Route         *Route
	Transition    *Transition
	ProposalCount int
	ErrorCodes    []string
}

// Allowed reports whether the instruction was accepted.
func (r Result) Allowed() bool { return r.Decision == Accept }

// BlockedError is returned by gated functions when an instruction is
// rejected.
type BlockedError struct {
	Input    string
	Decision Decision
	Reason   string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("routegate blocked (%s): %s", e.Reason, e.Input)
}

// toResult maps a decision record to an SDK Result.
func toResult(rec *artifact.Record) Result {
	res := Result{
		RunID:         rec.RunID,
		Decision:      Decision(rec.Decision),
		ProposalCount: rec.Construction.ProposalCount,
	}
	if ap := rec.AcceptPayload; ap != nil {
		res.Kind = ap.Kind
		if ap.Route != nil {
			res.Route = &Route{Intent: ap.Route.Intent, Target: ap.Route.Target, Mode: ap.Route.Mode}
		}
		if ap.Transition != nil {
			res.Transition = &Transition{
				OrderID:  ap.Transition.OrderID,
				From:     ap.Transition.PreviousState,
				Event:    ap.Transition.Event,
				To:       ap.Transition.CurrentState,
				Terminal: ap.Transition.Terminal,
			}
		}
	}
	if rp := rec.RejectPayload; rp != nil {
		res.Reason = rp.ReasonCode
		res.ErrorCodes = rp.ValidatorErrors
	}
	return res
}
