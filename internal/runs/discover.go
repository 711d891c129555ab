package runs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Info describes one discovered run directory.
type Info struct {
	ID       string
	Dir      string
	Modified time.Time
	// HasArtifact reports whether the run reached a decision.
	HasArtifact bool
	// Executed reports whether the runtime produced authoritative
	// output. Selection is by the presence of the stdout file, never
	// by directory naming.
	Executed bool
}

// List enumerates the run directories under root, newest first. A
// missing root is an empty listing, not an error.
func List(root string) ([]Info, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read runs directory: %w", err)
	}

	var infos []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		info := Info{ID: e.Name(), Dir: dir}
		if st, err := e.Info(); err == nil {
			info.Modified = st.ModTime()
		}
		if _, err := os.Stat(filepath.Join(dir, ArtifactFile)); err == nil {
			info.HasArtifact = true
		}
		if _, err := os.Stat(filepath.Join(dir, StdoutFile)); err == nil {
			info.Executed = true
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].Modified.Equal(infos[j].Modified) {
			return infos[i].Modified.After(infos[j].Modified)
		}
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

// Latest returns the most recently modified run that reached a
// decision, or nil when no such run exists.
func Latest(root string) (*Info, error) {
	infos, err := List(root)
	if err != nil {
		return nil, err
	}
	for i := range infos {
		if infos[i].HasArtifact {
			return &infos[i], nil
		}
	}
	return nil, nil
}
