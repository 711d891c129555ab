package gateway

import (
	"context"
	"testing"

	"github.com/ppiankov/routegate/internal/artifact"
	"github.com/ppiankov/routegate/internal/model"
)

// countingExec is a call-counting stub for the execution boundary.
type countingExec struct {
	calls  int
	status int
	stdout []byte
}

func (c *countingExec) fn(ctx context.Context) (int, []byte, error) {
	c.calls++
	return c.status, c.stdout, nil
}

func acceptRecord() *artifact.Record {
	index := 0
	return &artifact.Record{
		ArtifactVersion: artifact.Version,
		RunID:           "run-1",
		Decision:        model.Accept,
		AcceptPayload: &artifact.AcceptPayload{
			Kind:  artifact.AcceptKindRoute,
			Route: &artifact.Route{Intent: "STATUS_QUERY", Target: "alpha"},
		},
		Construction: artifact.Construction{
			RulesetID:             artifact.RulesetID,
			ProposalCount:         1,
			SelectedProposalIndex: &index,
		},
	}
}

func rejectRecord() *artifact.Record {
	return &artifact.Record{
		ArtifactVersion: artifact.Version,
		RunID:           "run-1",
		Decision:        model.Reject,
		RejectPayload:   &artifact.RejectPayload{ReasonCode: model.ReasonNoProposals},
		Construction: artifact.Construction{
			RulesetID:     artifact.RulesetID,
			ProposalCount: 0,
		},
	}
}

func TestAcceptExecutesExactlyOnce(t *testing.T) {
	stub := &countingExec{status: 0, stdout: []byte("order_id=demo-order-1\n")}
	res := ExecuteIfAccepted(context.Background(), acceptRecord(), stub.fn)

	if !res.Executed {
		t.Fatal("expected execution")
	}
	if stub.calls != 1 {
		t.Errorf("exec fn called %d times, want 1", stub.calls)
	}
	if res.ExitStatus != 0 {
		t.Errorf("exit status = %d", res.ExitStatus)
	}
	if string(res.Stdout) != "order_id=demo-order-1\n" {
		t.Errorf("stdout not passed through: %q", res.Stdout)
	}
}

func TestRejectNeverExecutes(t *testing.T) {
	stub := &countingExec{}
	res := ExecuteIfAccepted(context.Background(), rejectRecord(), stub.fn)

	if res.Executed {
		t.Fatal("REJECT record executed")
	}
	if stub.calls != 0 {
		t.Errorf("exec fn called %d times on REJECT", stub.calls)
	}
	if res.Decision != "REJECT" {
		t.Errorf("decision = %s", res.Decision)
	}
}

func TestTamperedAcceptNeverExecutes(t *testing.T) {
	cases := []struct {
		name   string
		tamper func(*artifact.Record)
	}{
		{"reject payload smuggled in", func(r *artifact.Record) {
			r.RejectPayload = &artifact.RejectPayload{ReasonCode: model.ReasonNoProposals}
		}},
		{"accept payload stripped", func(r *artifact.Record) {
			r.AcceptPayload = nil
		}},
		{"selected index cleared", func(r *artifact.Record) {
			r.Construction.SelectedProposalIndex = nil
		}},
		{"wrong ruleset", func(r *artifact.Record) {
			r.Construction.RulesetID = "M2_RULESET_V2"
		}},
		{"wrong version", func(r *artifact.Record) {
			r.ArtifactVersion = "artifact_v0"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := acceptRecord()
			tc.tamper(rec)

			stub := &countingExec{}
			res := ExecuteIfAccepted(context.Background(), rec, stub.fn)

			if res.Executed || stub.calls != 0 {
				t.Errorf("tampered record executed (calls=%d)", stub.calls)
			}
			if res.Decision != "INVALID" {
				t.Errorf("decision = %s, want INVALID", res.Decision)
			}
			if len(res.ValidationErrors) == 0 {
				t.Error("expected validation errors in result")
			}
		})
	}
}

func TestNilRecordNeverExecutes(t *testing.T) {
	stub := &countingExec{}
	res := ExecuteIfAccepted(context.Background(), nil, stub.fn)
	if res.Executed || stub.calls != 0 {
		t.Error("nil record executed")
	}
}

func TestRuntimeArgs(t *testing.T) {
	rec := acceptRecord()
	args := runtimeArgs(rec)
	if len(args) != 3 || args[0] != "route" || args[1] != "STATUS_QUERY" || args[2] != "alpha" {
		t.Errorf("unexpected args: %v", args)
	}

	rec.AcceptPayload = &artifact.AcceptPayload{
		Kind: artifact.AcceptKindStateTransition,
		Transition: &artifact.TransitionInfo{
			OrderID: "demo-order-1", Event: "create_payment",
			PreviousState: "CREATED", CurrentState: "PAYMENT_PENDING",
		},
	}
	args = runtimeArgs(rec)
	if len(args) != 3 || args[0] != "transition" || args[1] != "demo-order-1" || args[2] != "create_payment" {
		t.Errorf("unexpected args: %v", args)
	}
}
