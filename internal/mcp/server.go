// Package mcp exposes the gating pipeline over the Model Context
// Protocol on stdio transport, so agent hosts can decide, validate,
// and probe lifecycle transitions as tools.
package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/routegate/internal/audit"
	"github.com/ppiankov/routegate/internal/gateway"
	"github.com/ppiankov/routegate/internal/infer"
	"github.com/ppiankov/routegate/internal/runs"
)

// Config holds MCP server configuration.
type Config struct {
	// RunsRoot is where decide-tool runs persist their directories.
	RunsRoot string
	// AuditLogPath, when set, chains one audit entry per decide call.
	AuditLogPath string
	// RuntimeEntrypoint, when set, dispatches ACCEPT decisions to the
	// sealed runtime. Empty means decide-only.
	RuntimeEntrypoint string
	// RuntimeDir is the working directory for the runtime process.
	RuntimeDir string
}

// Server wraps the MCP SDK server around the gating pipeline.
type Server struct {
	mcpServer *mcpsdk.Server
	pipeline  *runs.Pipeline
	runsRoot  string
	auditLog  *audit.Log
	mu        sync.Mutex
}

// New creates an MCP server with the pipeline wired to the
// deterministic proposal engine.
func New(cfg Config) (*Server, error) {
	if cfg.RunsRoot == "" {
		cfg.RunsRoot = "runs"
	}

	pipeline := &runs.Pipeline{Engine: infer.Engine}
	if cfg.RuntimeEntrypoint != "" {
		pipeline.Runtime = &gateway.Runtime{
			Entrypoint: cfg.RuntimeEntrypoint,
			Dir:        cfg.RuntimeDir,
		}
	}

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		var err error
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("open audit log: %w", err)
		}
		pipeline.Audit = auditLog
	}

	s := &Server{
		pipeline: pipeline,
		runsRoot: cfg.RunsRoot,
		auditLog: auditLog,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "routegate",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// registerTools adds all routegate tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "routegate_decide",
		Description: "Run an input through the full gating pipeline. Returns the decision, reject reason if any, and the run id of the persisted run directory.",
	}, s.handleDecide)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "routegate_validate",
		Description: "Validate raw proposal-set JSON against the closed m1.0 schema without deciding. Returns the validator error codes on failure.",
	}, s.handleValidate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "routegate_transition",
		Description: "Check whether an order lifecycle event is legal from a given state (dry-run, no decision is made).",
	}, s.handleTransition)
}
