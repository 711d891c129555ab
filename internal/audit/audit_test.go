package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	entries := []Entry{
		{RunID: "run-1", Decision: "ACCEPT", ProposalCount: 1, Executed: true},
		{RunID: "run-2", Decision: "REJECT", ReasonCode: "NO_PROPOSALS"},
		{RunID: "run-3", Decision: "REJECT", ReasonCode: "ILLEGAL_TRANSITION", ProposalCount: 1},
	}
	for _, e := range entries {
		if err := log.Record(e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("chain invalid: %s", result.Error)
	}
	if result.Lines != 3 {
		t.Errorf("lines = %d, want 3", result.Lines)
	}
}

func TestChainRecoveryAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := log.Record(Entry{RunID: "run-1", Decision: "ACCEPT"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	log.Close()

	log, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := log.Record(Entry{RunID: "run-2", Decision: "REJECT"}); err != nil {
		t.Fatalf("record after reopen: %v", err)
	}
	log.Close()

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("chain broke across reopen: %s", result.Error)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.jsonl")

	log, _ := Open(path)
	log.Record(Entry{RunID: "run-1", Decision: "REJECT", ReasonCode: "NO_PROPOSALS"})
	log.Record(Entry{RunID: "run-2", Decision: "ACCEPT"})
	log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	tampered := strings.Replace(string(data), `"REJECT"`, `"ACCEPT"`, 1)
	if err := os.WriteFile(path, []byte(tampered), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	result := Verify(path)
	if result.Valid {
		t.Fatal("tampered log verified as intact")
	}
	if result.ErrorLine != 2 {
		t.Errorf("broken link reported at line %d, want 2", result.ErrorLine)
	}
}
