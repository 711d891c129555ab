// Package bundle verifies the sealed runtime bundle against its
// checksum manifest. The runtime is external and must never be patched
// in place; if any file drifts from the manifest, execution is refused.
package bundle

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest's file name inside a bundle directory.
const ManifestFile = "bundle.yaml"

// Manifest pins the contents of a runtime bundle.
type Manifest struct {
	Name       string            `yaml:"name"`
	Version    string            `yaml:"version"`
	Entrypoint string            `yaml:"entrypoint"`
	Files      map[string]string `yaml:"files"` // relative path -> sha256 hex
}

// Mismatch describes one file failing verification.
type Mismatch struct {
	Path     string
	Expected string
	Actual   string
	Missing  bool
}

func (m Mismatch) String() string {
	if m.Missing {
		return fmt.Sprintf("%s: missing", m.Path)
	}
	return fmt.Sprintf("%s: checksum mismatch (expected %s, got %s)", m.Path, m.Expected, m.Actual)
}

// Report is the outcome of verifying one bundle.
type Report struct {
	Checked    int
	Mismatches []Mismatch
}

// OK reports whether every manifest entry verified.
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// LoadManifest reads and validates a bundle manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Entrypoint == "" {
		return nil, fmt.Errorf("manifest missing entrypoint")
	}
	if len(m.Files) == 0 {
		return nil, fmt.Errorf("manifest pins no files")
	}
	if _, ok := m.Files[m.Entrypoint]; !ok {
		return nil, fmt.Errorf("entrypoint %q not pinned by manifest", m.Entrypoint)
	}
	for p, h := range m.Files {
		if strings.Contains(p, "..") || filepath.IsAbs(p) {
			return nil, fmt.Errorf("manifest entry %q escapes the bundle", p)
		}
		if len(h) != 64 || !isHex(h) {
			return nil, fmt.Errorf("manifest entry %q has malformed checksum", p)
		}
	}
	return &m, nil
}

// Verify checks every pinned file under dir against the manifest. A
// non-OK report is not an error; errors cover unreadable manifests and
// I/O failures only.
func Verify(dir string, m *Manifest) (*Report, error) {
	paths := make([]string, 0, len(m.Files))
	for p := range m.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	report := &Report{}
	for _, p := range paths {
		expected := m.Files[p]
		actual, err := hashFile(filepath.Join(dir, p))
		if err != nil {
			if os.IsNotExist(err) {
				report.Mismatches = append(report.Mismatches, Mismatch{Path: p, Expected: expected, Missing: true})
				continue
			}
			return nil, fmt.Errorf("hash %s: %w", p, err)
		}
		report.Checked++
		if actual != strings.ToLower(expected) {
			report.Mismatches = append(report.Mismatches, Mismatch{Path: p, Expected: expected, Actual: actual})
		}
	}
	return report, nil
}

// VerifyDir loads dir's manifest and verifies the bundle in one step.
func VerifyDir(dir string) (*Report, error) {
	m, err := LoadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	return Verify(dir, m)
}

// Snapshot walks dir and produces a manifest pinning every regular file
// except the manifest itself. Used when sealing a new bundle.
func Snapshot(dir, name, version, entrypoint string) (*Manifest, error) {
	m := &Manifest{Name: name, Version: version, Entrypoint: entrypoint, Files: map[string]string{}}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == ManifestFile {
			return nil
		}
		hash, err := hashFile(path)
		if err != nil {
			return err
		}
		m.Files[filepath.ToSlash(rel)] = hash
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot bundle: %w", err)
	}
	if _, ok := m.Files[entrypoint]; !ok {
		return nil, fmt.Errorf("entrypoint %q not found in bundle", entrypoint)
	}
	return m, nil
}

// Save writes the manifest to dir/bundle.yaml.
func (m *Manifest) Save(dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("serialize manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ManifestFile), data, 0600)
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
