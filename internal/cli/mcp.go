package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/routegate/internal/bundle"
	routemcp "github.com/ppiankov/routegate/internal/mcp"
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs routegate as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the gating tools: decide, validate, transition.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := routemcp.Config{
		RunsRoot:     rootRunsDir,
		AuditLogPath: rootAuditLog,
	}

	if rootBundle != "" {
		report, err := bundle.VerifyDir(rootBundle)
		if err != nil {
			return fmt.Errorf("verify bundle: %w", err)
		}
		if !report.OK() {
			fmt.Fprintln(os.Stderr, "FATAL: runtime bundle failed verification")
			os.Exit(78) // EX_CONFIG
		}
		m, err := bundle.LoadManifest(filepath.Join(rootBundle, bundle.ManifestFile))
		if err != nil {
			return err
		}
		cfg.RuntimeEntrypoint = filepath.Join(rootBundle, m.Entrypoint)
		cfg.RuntimeDir = rootBundle
	}

	srv, err := routemcp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "routegate MCP server running on stdio")
	return srv.Run(ctx)
}
