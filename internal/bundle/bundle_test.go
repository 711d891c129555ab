package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

func sealTestBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"brokctl":          "#!/bin/sh\necho kind=route\n",
		"lib/handlers.txt": "route transition\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0700); err != nil {
			t.Fatal(err)
		}
	}
	m, err := Snapshot(dir, "demo-runtime", "1.0", "brokctl")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if err := m.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return dir
}

func TestVerifyIntactBundle(t *testing.T) {
	dir := sealTestBundle(t)

	report, err := VerifyDir(dir)
	if err != nil {
		t.Fatalf("VerifyDir: %v", err)
	}
	if !report.OK() {
		t.Fatalf("intact bundle failed verification: %v", report.Mismatches)
	}
	if report.Checked != 2 {
		t.Errorf("checked %d files, want 2", report.Checked)
	}
}

func TestVerifyDetectsTamper(t *testing.T) {
	dir := sealTestBundle(t)
	if err := os.WriteFile(filepath.Join(dir, "brokctl"), []byte("#!/bin/sh\nrm -rf /\n"), 0700); err != nil {
		t.Fatal(err)
	}

	report, err := VerifyDir(dir)
	if err != nil {
		t.Fatalf("VerifyDir: %v", err)
	}
	if report.OK() {
		t.Fatal("tampered entrypoint passed verification")
	}
	if len(report.Mismatches) != 1 || report.Mismatches[0].Path != "brokctl" {
		t.Errorf("mismatches = %v, want brokctl only", report.Mismatches)
	}
	if report.Mismatches[0].Missing {
		t.Error("tampered file reported as missing")
	}
}

func TestVerifyDetectsMissingFile(t *testing.T) {
	dir := sealTestBundle(t)
	if err := os.Remove(filepath.Join(dir, "lib", "handlers.txt")); err != nil {
		t.Fatal(err)
	}

	report, err := VerifyDir(dir)
	if err != nil {
		t.Fatalf("VerifyDir: %v", err)
	}
	if report.OK() {
		t.Fatal("bundle with missing file passed verification")
	}
	if !report.Mismatches[0].Missing {
		t.Errorf("mismatch = %v, want missing", report.Mismatches[0])
	}
}

func TestLoadManifestRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"no entrypoint":      "name: x\nfiles:\n  a: " + zeros64 + "\n",
		"unpinned entry":     "entrypoint: b\nfiles:\n  a: " + zeros64 + "\n",
		"escaping path":      "entrypoint: ../evil\nfiles:\n  ../evil: " + zeros64 + "\n",
		"malformed checksum": "entrypoint: a\nfiles:\n  a: nothex\n",
		"no files":           "entrypoint: a\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "bundle.yaml")
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadManifest(path); err == nil {
				t.Error("malformed manifest accepted")
			}
		})
	}
}

const zeros64 = "0000000000000000000000000000000000000000000000000000000000000000"
