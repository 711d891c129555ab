package routegate

import (
	"context"
	"testing"
)

func TestGateCallsAccepted(t *testing.T) {
	c := New()
	called := false
	guarded := c.Gate(func(ctx context.Context, instruction string) (any, error) {
		called = true
		return "done: " + instruction, nil
	})

	out, err := guarded(context.Background(), "status of alpha")
	if err != nil {
		t.Fatalf("expected accepted instruction to execute: %v", err)
	}
	if !called {
		t.Fatal("guarded function was not called")
	}
	if out != "done: status of alpha" {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestGateBlocksRejected(t *testing.T) {
	c := New()
	guarded := c.Gate(func(ctx context.Context, instruction string) (any, error) {
		t.Fatal("guarded function must not run for rejected instructions")
		return nil, nil
	})

	_, err := guarded(context.Background(), "ship order")
	blocked := requireBlocked(t, err)
	if blocked.Decision != Reject {
		t.Errorf("expected REJECT, got %s", blocked.Decision)
	}
	if blocked.Reason != "ILLEGAL_TRANSITION" {
		t.Errorf("expected ILLEGAL_TRANSITION, got %q", blocked.Reason)
	}
	if blocked.Input != "ship order" {
		t.Errorf("expected blocked input recorded, got %q", blocked.Input)
	}
}

func TestGateBlocksUnmapped(t *testing.T) {
	c := New()
	guarded := c.Gate(func(ctx context.Context, instruction string) (any, error) {
		t.Fatal("guarded function must not run for unmapped instructions")
		return nil, nil
	})

	_, err := guarded(context.Background(), "delete everything")
	blocked := requireBlocked(t, err)
	if blocked.Reason != "NO_PROPOSALS" {
		t.Errorf("expected NO_PROPOSALS, got %q", blocked.Reason)
	}
}
