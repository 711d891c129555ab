package decision

import (
	"bytes"
	"testing"

	"github.com/ppiankov/routegate/internal/artifact"
	"github.com/ppiankov/routegate/internal/model"
	"github.com/ppiankov/routegate/internal/proposal"
)

var testMeta = Meta{RunID: "run-1", InputRef: "input.txt", ProposalSetRef: "proposal_set.json"}

func oneRoute(intent proposal.Intent, target proposal.Target, mode proposal.Mode) *proposal.ProposalSet {
	return &proposal.ProposalSet{
		SchemaVersion: proposal.SchemaVersion,
		Proposals: []proposal.Proposal{{
			Kind:  proposal.KindRouteCandidate,
			Route: &proposal.RouteCandidate{Intent: intent, Target: target, Mode: mode},
		}},
	}
}

func oneTransition(token string) *proposal.ProposalSet {
	return &proposal.ProposalSet{
		SchemaVersion: proposal.SchemaVersion,
		Proposals: []proposal.Proposal{{
			Kind:       proposal.KindStateTransition,
			Transition: &proposal.StateTransitionRequest{EventToken: token},
		}},
	}
}

func expectReject(t *testing.T, rec *artifact.Record, reason string) {
	t.Helper()
	if rec.Decision != model.Reject {
		t.Fatalf("expected REJECT, got %s", rec.Decision)
	}
	if rec.RejectPayload == nil || rec.RejectPayload.ReasonCode != reason {
		t.Fatalf("expected reason %s, got %+v", reason, rec.RejectPayload)
	}
	if rec.AcceptPayload != nil {
		t.Error("REJECT record carries accept_payload")
	}
	if rec.Construction.SelectedProposalIndex != nil {
		t.Error("REJECT record selects a proposal")
	}
	if err := artifact.Validate(rec); err != nil {
		t.Errorf("reject record fails structural validation: %v", err)
	}
}

func expectAccept(t *testing.T, rec *artifact.Record) {
	t.Helper()
	if rec.Decision != model.Accept {
		t.Fatalf("expected ACCEPT, got %s (%+v)", rec.Decision, rec.RejectPayload)
	}
	if rec.Construction.SelectedProposalIndex == nil || *rec.Construction.SelectedProposalIndex != 0 {
		t.Error("ACCEPT record must select proposal 0")
	}
	if err := artifact.Validate(rec); err != nil {
		t.Errorf("accept record fails structural validation: %v", err)
	}
}

func TestRejectOnValidationFailure(t *testing.T) {
	verr := &proposal.ValidationError{Codes: []string{"ROOT_NOT_OBJECT"}}
	rec := Decide(nil, verr, testMeta)
	expectReject(t, rec, model.ReasonInvalidProposals)
	if len(rec.RejectPayload.ValidatorErrors) != 1 || rec.RejectPayload.ValidatorErrors[0] != "ROOT_NOT_OBJECT" {
		t.Errorf("validator errors not carried: %v", rec.RejectPayload.ValidatorErrors)
	}
}

func TestRejectNoProposals(t *testing.T) {
	rec := Decide(proposal.Empty(), nil, testMeta)
	expectReject(t, rec, model.ReasonNoProposals)
}

func TestRejectAmbiguous(t *testing.T) {
	ps := oneRoute(proposal.StatusQuery, proposal.TargetAlpha, "")
	ps.Proposals = append(ps.Proposals, ps.Proposals[0])
	rec := Decide(ps, nil, testMeta)
	expectReject(t, rec, model.ReasonAmbiguousProposals)
	if rec.RejectPayload.ProposalCount != 2 {
		t.Errorf("proposal_count = %d, want 2", rec.RejectPayload.ProposalCount)
	}
}

func TestEnvelopeExactness(t *testing.T) {
	t.Run("exact envelope accepted", func(t *testing.T) {
		rec := Decide(oneRoute(proposal.StatusQuery, proposal.TargetAlpha, ""), nil, testMeta)
		expectAccept(t, rec)
		if rec.AcceptPayload.Kind != artifact.AcceptKindRoute {
			t.Fatalf("unexpected payload kind %s", rec.AcceptPayload.Kind)
		}
		route := rec.AcceptPayload.Route
		if route.Intent != "STATUS_QUERY" || route.Target != "alpha" || route.Mode != "" {
			t.Errorf("unexpected route: %+v", route)
		}
	})

	mismatches := []struct {
		name   string
		intent proposal.Intent
		target proposal.Target
		mode   proposal.Mode
	}{
		{"wrong target", proposal.StatusQuery, proposal.TargetBeta, ""},
		{"wrong intent", proposal.RestartSubsystem, proposal.TargetAlpha, ""},
		{"extra mode", proposal.StatusQuery, proposal.TargetAlpha, proposal.ModeGraceful},
		{"missing target", proposal.StatusQuery, "", ""},
	}
	for _, tc := range mismatches {
		t.Run(tc.name, func(t *testing.T) {
			rec := Decide(oneRoute(tc.intent, tc.target, tc.mode), nil, testMeta)
			expectReject(t, rec, model.ReasonEnvelopeMismatch)
		})
	}
}

func TestTransitionGate(t *testing.T) {
	t.Run("legal from CREATED", func(t *testing.T) {
		rec := Decide(oneTransition("create_payment"), nil, testMeta)
		expectAccept(t, rec)
		tr := rec.AcceptPayload.Transition
		if tr.PreviousState != "CREATED" || tr.CurrentState != "PAYMENT_PENDING" || tr.Terminal {
			t.Errorf("unexpected transition info: %+v", tr)
		}
		if tr.OrderID != "demo-order-1" {
			t.Errorf("order_id = %q", tr.OrderID)
		}
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		rec := Decide(oneTransition("cancel_order"), nil, testMeta)
		expectAccept(t, rec)
		tr := rec.AcceptPayload.Transition
		if tr.CurrentState != "CANCELLED" || !tr.Terminal {
			t.Errorf("unexpected transition info: %+v", tr)
		}
	})

	t.Run("no edge from CREATED", func(t *testing.T) {
		rec := Decide(oneTransition("payment_succeeded"), nil, testMeta)
		expectReject(t, rec, "ILLEGAL_TRANSITION")
	})

	t.Run("unknown token", func(t *testing.T) {
		rec := Decide(oneTransition("teleport_order"), nil, testMeta)
		expectReject(t, rec, "INVALID_EVENT_TOKEN")
	})
}

func TestDeterminism(t *testing.T) {
	ps := oneTransition("create_payment")
	first, err := artifact.ToJSON(Decide(ps, nil, testMeta))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := artifact.ToJSON(Decide(ps, nil, testMeta))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different serializations")
	}
}
