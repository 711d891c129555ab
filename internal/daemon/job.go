// Package daemon implements the inbox/outbox gating service. Input
// files arrive as .txt drops in the inbox directory, each is run
// through the full gating pipeline as its own run, and a result
// summary is written to the outbox directory.
package daemon

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// validName matches alphanumeric characters, dots, dashes, and
// underscores only.
var validName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Result is written to the outbox after processing one input file.
type Result struct {
	ID          string    `json:"id"`
	RunID       string    `json:"run_id,omitempty"`
	Status      string    `json:"status"`
	Decision    string    `json:"decision,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Executed    bool      `json:"executed"`
	ExitStatus  int       `json:"exit_status,omitempty"`
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Result status values.
const (
	ResultDone   = "done"
	ResultFailed = "failed"
)

// jobID derives the result identifier from an inbox file name: the
// base name without extension, suffixed with a short unique token so
// repeated drops of the same name never clobber each other.
func jobID(path string) (string, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || strings.Contains(name, "..") || !validName.MatchString(name) {
		return "", fmt.Errorf("invalid inbox file name %q", base)
	}
	return name + "-" + uuid.NewString()[:8], nil
}
