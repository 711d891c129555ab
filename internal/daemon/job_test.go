package daemon

import (
	"strings"
	"testing"
)

func TestJobIDFromFileName(t *testing.T) {
	id, err := jobID("/inbox/order-001.txt")
	if err != nil {
		t.Fatalf("jobID: %v", err)
	}
	if !strings.HasPrefix(id, "order-001-") {
		t.Errorf("id = %q, want order-001- prefix", id)
	}
	if len(id) != len("order-001-")+8 {
		t.Errorf("id = %q, want 8-char unique suffix", id)
	}
}

func TestJobIDUnique(t *testing.T) {
	a, _ := jobID("/inbox/order.txt")
	b, _ := jobID("/inbox/order.txt")
	if a == b {
		t.Errorf("repeated drops of the same name collided: %q", a)
	}
}

func TestJobIDRejectsBadNames(t *testing.T) {
	for _, path := range []string{
		"/inbox/.txt",
		"/inbox/bad name.txt",
		"/inbox/bad;cmd.txt",
		"/inbox/..evil.txt",
	} {
		if _, err := jobID(path); err == nil {
			t.Errorf("jobID(%q) accepted", path)
		}
	}
}
