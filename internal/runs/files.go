package runs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Canonical file names inside a run directory.
const (
	InputFile       = "input.txt"
	ProposalSetFile = "proposal_set.json"
	ArtifactFile    = "artifact.json"
	StdoutFile      = "stdout.raw.kv"
)

// writeFileAtomic writes data to path via a temp file in the same
// directory followed by a rename, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
