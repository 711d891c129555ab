// Package decision applies the M2_RULESET_V1 ruleset to a validated
// ProposalSet and produces the run's single ArtifactRecord.
//
// Evaluation order (must not be changed):
//  1. Validation failure — REJECT INVALID_PROPOSALS
//  2. Zero proposals — REJECT NO_PROPOSALS
//  3. Two or more proposals — REJECT AMBIGUOUS_PROPOSALS
//  4. Exactly one proposal — dispatch on kind:
//     ROUTE_CANDIDATE through the exact-envelope gate,
//     STATE_TRANSITION_REQUEST through the lifecycle legality gate.
//
// Every branch is an exact equality or a table lookup. There is no
// scoring, ranking, or closest-match logic anywhere.
package decision

import (
	"errors"

	"github.com/ppiankov/routegate/internal/artifact"
	"github.com/ppiankov/routegate/internal/lifecycle"
	"github.com/ppiankov/routegate/internal/model"
	"github.com/ppiankov/routegate/internal/proposal"
)

// Meta carries the run-identifying references stamped into the record.
type Meta struct {
	RunID          string
	InputRef       string
	ProposalSetRef string
}

// Decide produces the authoritative decision record for one run. When
// verr is non-nil the proposal bytes failed schema validation and ps is
// ignored. The returned record is complete and immutable; callers must
// not modify it.
func Decide(ps *proposal.ProposalSet, verr *proposal.ValidationError, meta Meta) *artifact.Record {
	if verr != nil || ps == nil {
		var codes []string
		if verr != nil {
			codes = verr.Codes
		}
		return reject(meta, model.ReasonInvalidProposals, 0, codes)
	}

	count := len(ps.Proposals)
	if count == 0 {
		return reject(meta, model.ReasonNoProposals, 0, nil)
	}
	if count >= 2 {
		return reject(meta, model.ReasonAmbiguousProposals, count, nil)
	}

	p := ps.Proposals[0]
	switch p.Kind {
	case proposal.KindRouteCandidate:
		return decideRoute(p.Route, meta)
	case proposal.KindStateTransition:
		return decideTransition(p.Transition, meta)
	default:
		// Unreachable for schema-validated input; totality guard.
		return reject(meta, model.ReasonInvalidProposals, 1, []string{"UNKNOWN_PROPOSAL_KIND"})
	}
}

// decideRoute applies the exact-envelope allow-list. The boundary is
// deliberately narrower than schema validity: only a STATUS_QUERY for
// target alpha with no mode is accepted. Everything else that passed
// the schema is an envelope mismatch.
func decideRoute(route *proposal.RouteCandidate, meta Meta) *artifact.Record {
	if route.Intent != proposal.StatusQuery || route.Target != proposal.TargetAlpha || route.Mode != "" {
		return reject(meta, model.ReasonEnvelopeMismatch, 1, nil)
	}
	return accept(meta, &artifact.AcceptPayload{
		Kind: artifact.AcceptKindRoute,
		Route: &artifact.Route{
			Intent: string(route.Intent),
			Target: string(route.Target),
		},
	})
}

// decideTransition applies the lifecycle legality gate from the fixed
// initial state. Each run starts at CREATED and applies at most one
// transition; nothing persists across runs.
func decideTransition(req *proposal.StateTransitionRequest, meta Meta) *artifact.Record {
	next, err := lifecycle.Transition(lifecycle.InitialState, lifecycle.EventToken(req.EventToken))
	if err != nil {
		var te *lifecycle.TransitionError
		if errors.As(err, &te) {
			return reject(meta, te.Code, 1, nil)
		}
		return reject(meta, lifecycle.ReasonIllegalTransition, 1, nil)
	}
	return accept(meta, &artifact.AcceptPayload{
		Kind: artifact.AcceptKindStateTransition,
		Transition: &artifact.TransitionInfo{
			OrderID:       lifecycle.DemoOrderID,
			PreviousState: string(lifecycle.InitialState),
			Event:         req.EventToken,
			CurrentState:  string(next),
			Terminal:      lifecycle.IsTerminal(next),
		},
	})
}

func accept(meta Meta, payload *artifact.AcceptPayload) *artifact.Record {
	index := 0
	return &artifact.Record{
		ArtifactVersion: artifact.Version,
		RunID:           meta.RunID,
		InputRef:        meta.InputRef,
		ProposalSetRef:  meta.ProposalSetRef,
		Decision:        model.Accept,
		AcceptPayload:   payload,
		Construction: artifact.Construction{
			RulesetID:             artifact.RulesetID,
			ProposalCount:         1,
			SelectedProposalIndex: &index,
		},
	}
}

func reject(meta Meta, reason string, count int, validatorErrors []string) *artifact.Record {
	if len(validatorErrors) > proposal.MaxErrors {
		validatorErrors = validatorErrors[:proposal.MaxErrors]
	}
	return &artifact.Record{
		ArtifactVersion: artifact.Version,
		RunID:           meta.RunID,
		InputRef:        meta.InputRef,
		ProposalSetRef:  meta.ProposalSetRef,
		Decision:        model.Reject,
		RejectPayload: &artifact.RejectPayload{
			ReasonCode:      reason,
			ProposalCount:   count,
			ValidatorErrors: validatorErrors,
		},
		Construction: artifact.Construction{
			RulesetID:             artifact.RulesetID,
			ProposalCount:         count,
			SelectedProposalIndex: nil,
		},
	}
}
