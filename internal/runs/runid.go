package runs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var validRunID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// NewRunID derives a deterministic run identifier from the input bytes.
// Same input, same run id: re-running an input overwrites its own run
// directory instead of minting a new one.
func NewRunID(input []byte) string {
	h := sha256.Sum256(input)
	return "run-" + hex.EncodeToString(h[:])[:12]
}

// ValidateRunID checks a caller-supplied run id for path traversal and
// invalid characters.
func ValidateRunID(id string) error {
	if id == "" {
		return fmt.Errorf("run id is required")
	}
	if strings.Contains(id, "..") {
		return fmt.Errorf("run id must not contain '..'")
	}
	if !validRunID.MatchString(id) {
		return fmt.Errorf("run id contains invalid characters")
	}
	return nil
}
