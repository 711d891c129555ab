package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/audit"
	"github.com/ppiankov/routegate/internal/bundle"
	"github.com/ppiankov/routegate/internal/gateway"
	"github.com/ppiankov/routegate/internal/infer"
	"github.com/ppiankov/routegate/internal/runs"
)

var (
	rootRunsDir  string
	rootAuditLog string
	rootBundle   string
)

var rootCmd = &cobra.Command{
	Use:   "routegate",
	Short: "Decision and execution gating for derived proposals",
	Long: "Gates a sealed execution runtime behind an auditable decision boundary.\n" +
		"Derived proposals are schema-validated, decided by a fixed ruleset, and\n" +
		"only a structurally valid ACCEPT artifact ever reaches the runtime.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootRunsDir, "runs-dir", "runs", "Directory for per-run output")
	rootCmd.PersistentFlags().StringVar(&rootAuditLog, "audit-log", "", "Path to hash-chained audit log JSONL file")
	rootCmd.PersistentFlags().StringVar(&rootBundle, "bundle", "", "Path to the verified runtime bundle directory")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildPipeline assembles the gating pipeline from the persistent
// flags. When a bundle is configured it is checksum-verified first;
// a tampered bundle aborts with EX_CONFIG before anything runs.
func buildPipeline() (*runs.Pipeline, func(), error) {
	p := &runs.Pipeline{Engine: infer.Engine}
	closer := func() {}

	if rootBundle != "" {
		m, err := bundle.LoadManifest(rootBundle + "/" + bundle.ManifestFile)
		if err != nil {
			return nil, nil, fmt.Errorf("load bundle manifest: %w", err)
		}
		report, err := bundle.Verify(rootBundle, m)
		if err != nil {
			return nil, nil, fmt.Errorf("verify bundle: %w", err)
		}
		if !report.OK() {
			for _, mm := range report.Mismatches {
				fmt.Fprintf(os.Stderr, "bundle: %s\n", mm)
			}
			fmt.Fprintln(os.Stderr, "FATAL: runtime bundle failed verification")
			os.Exit(78) // EX_CONFIG
		}
		p.Runtime = &gateway.Runtime{
			Entrypoint: rootBundle + "/" + m.Entrypoint,
			Dir:        rootBundle,
		}
	}

	if rootAuditLog != "" {
		log, err := audit.Open(rootAuditLog)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit log: %w", err)
		}
		p.Audit = log
		closer = func() { _ = log.Close() }
	}

	return p, closer, nil
}
