package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/routegate/internal/model"
	"github.com/ppiankov/routegate/internal/runs"
)

// ProcessorConfig holds runtime configuration for input processing.
type ProcessorConfig struct {
	Dirs     DirConfig
	Pipeline *runs.Pipeline
}

// Processor handles the inbox file lifecycle.
type Processor struct {
	cfg ProcessorConfig
}

// NewProcessor creates a processor with the given configuration.
func NewProcessor(cfg ProcessorConfig) *Processor {
	return &Processor{cfg: cfg}
}

// Process handles a single inbox file through its full lifecycle:
// read → move to processing → run the pipeline → write result to outbox.
func (p *Processor) Process(ctx context.Context, path string) error {
	// Structural symlink defense: reject symlinks before reading. A
	// symlinked inbox entry could point anywhere on the filesystem.
	fi, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("stat input file: %w", err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("rejected symlink: %s", filepath.Base(path))
	}

	id, err := jobID(path)
	if err != nil {
		return p.writeFailedResult(fmt.Sprintf("unknown-%d", time.Now().UnixNano()), err.Error())
	}

	// Move to processing state before running. Uses moveFile to
	// handle systemd bind mounts (EXDEV).
	processingPath := filepath.Join(p.cfg.Dirs.ProcessingDir(), id+".txt")
	if err := moveFile(path, processingPath); err != nil {
		return fmt.Errorf("move to processing: %w", err)
	}

	input, err := os.ReadFile(processingPath)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	outcome, err := p.cfg.Pipeline.Run(ctx, p.cfg.Dirs.Runs, id, input)
	if err != nil {
		if werr := p.writeFailedResult(id, err.Error()); werr != nil {
			return werr
		}
		_ = os.Remove(processingPath)
		return nil
	}

	result := &Result{
		ID:          id,
		RunID:       outcome.RunID,
		Status:      ResultDone,
		Decision:    string(outcome.Record.Decision),
		Executed:    outcome.Result.Executed,
		ExitStatus:  outcome.Result.ExitStatus,
		CompletedAt: time.Now().UTC(),
	}
	if outcome.Record.Decision == model.Reject && outcome.Record.RejectPayload != nil {
		result.Reason = outcome.Record.RejectPayload.ReasonCode
	}
	if outcome.Result.Err != nil {
		result.Error = outcome.Result.Err.Error()
	}

	if err := p.writeResult(result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	_ = os.Remove(processingPath)
	return nil
}

// writeResult writes a result to the outbox directory atomically.
func (p *Processor) writeResult(r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	filename := r.ID + ".json"
	tmpPath := filepath.Join(p.cfg.Dirs.Outbox, filename+".tmp")
	finalPath := filepath.Join(p.cfg.Dirs.Outbox, filename)

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	return os.Rename(tmpPath, finalPath)
}

// writeFailedResult writes a minimal failed result when the input
// can't be processed.
func (p *Processor) writeFailedResult(id string, errMsg string) error {
	r := &Result{
		ID:          id,
		Status:      ResultFailed,
		Error:       errMsg,
		CompletedAt: time.Now().UTC(),
	}
	return p.writeResult(r)
}
