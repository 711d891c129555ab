package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/routegate/internal/infer"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAllCasesPass(t *testing.T) {
	s := &Scenario{
		Name: "basic gating",
		Cases: []Case{
			{Input: "status of alpha", Expect: "ACCEPT", Kind: "ROUTE"},
			{Input: "status of beta", Expect: "REJECT", Reason: "L3_ENVELOPE_MISMATCH"},
			{Input: "create payment", Expect: "ACCEPT", Kind: "STATE_TRANSITION", State: "PAYMENT_PENDING"},
			{Input: "ship order", Expect: "REJECT", Reason: "ILLEGAL_TRANSITION"},
			{Input: "make me a sandwich", Expect: "REJECT", Reason: "NO_PROPOSALS"},
		},
	}

	result := Run(s, infer.Engine)
	if result.Failed != 0 {
		t.Fatalf("expected 0 failures, got %d: %+v", result.Failed, result.Cases)
	}
	if result.Passed != 5 {
		t.Errorf("expected 5 passed, got %d", result.Passed)
	}
}

func TestFailedAssertionDetected(t *testing.T) {
	s := &Scenario{
		Name: "wrong expectation",
		Cases: []Case{
			// status of alpha is the accepted envelope; expecting REJECT must fail
			{Input: "status of alpha", Expect: "REJECT"},
		},
	}

	result := Run(s, infer.Engine)
	if result.Failed != 1 {
		t.Errorf("expected 1 failure, got %d", result.Failed)
	}
	if result.Passed != 0 {
		t.Errorf("expected 0 passed, got %d", result.Passed)
	}
}

func TestWrongReasonCodeFailsCase(t *testing.T) {
	s := &Scenario{
		Name: "reason mismatch",
		Cases: []Case{
			// envelope mismatch, not NO_PROPOSALS
			{Input: "status of gamma", Expect: "REJECT", Reason: "NO_PROPOSALS"},
		},
	}

	result := Run(s, infer.Engine)
	if result.Failed != 1 {
		t.Errorf("expected reason mismatch to fail the case, got %+v", result.Cases)
	}
	if result.Cases[0].Reason != "L3_ENVELOPE_MISMATCH" {
		t.Errorf("actual reason = %q", result.Cases[0].Reason)
	}
}

func TestWrongKindFailsCase(t *testing.T) {
	s := &Scenario{
		Name: "kind mismatch",
		Cases: []Case{
			{Input: "status of alpha", Expect: "ACCEPT", Kind: "STATE_TRANSITION"},
		},
	}

	result := Run(s, infer.Engine)
	if result.Failed != 1 {
		t.Errorf("expected kind mismatch to fail the case, got %+v", result.Cases)
	}
}

func TestLoadAndRun(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "gate.yaml", `
name: file suite
cases:
  - input: status of alpha
    expect: ACCEPT
  - input: cancel order
    expect: ACCEPT
    next_state: CANCELLED
`)

	result, err := LoadAndRun(path, infer.Engine)
	if err != nil {
		t.Fatalf("LoadAndRun: %v", err)
	}
	if result.File != path {
		t.Errorf("result.File = %q", result.File)
	}
	if result.Failed != 0 {
		t.Errorf("expected 0 failures, got %+v", result.Cases)
	}
}

func TestLoadAndRunMissingFile(t *testing.T) {
	if _, err := LoadAndRun(filepath.Join(t.TempDir(), "nope.yaml"), infer.Engine); err == nil {
		t.Error("missing file accepted")
	}
}
