// Package runs orchestrates a complete gated run: acquire proposals
// through the seam, validate, decide, and dispatch through the gateway,
// persisting every stage of the run under its own run directory.
package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/routegate/internal/artifact"
	"github.com/ppiankov/routegate/internal/audit"
	"github.com/ppiankov/routegate/internal/decision"
	"github.com/ppiankov/routegate/internal/gateway"
	"github.com/ppiankov/routegate/internal/proposal"
	"github.com/ppiankov/routegate/internal/seam"
)

// Pipeline wires the stages of a run together. Engine is the bound
// proposal source. Runtime, when set, is dispatched to on ACCEPT; a nil
// Runtime makes every run decide-only. Audit, when set, receives one
// chained entry per run.
type Pipeline struct {
	Engine  seam.Engine
	Runtime *gateway.Runtime
	Audit   *audit.Log
}

// Outcome is the result of one pipeline run.
type Outcome struct {
	RunID  string
	Dir    string
	Record *artifact.Record
	Result gateway.Result
}

// Run performs one complete gated run over the given input bytes and
// persists its files under root/<runID>. An empty runID derives the
// deterministic id from the input. The returned error covers
// orchestration failures only (bad run id, unwritable directory, seam
// violation); a REJECT decision is a successful run.
func (p *Pipeline) Run(ctx context.Context, root string, runID string, input []byte) (*Outcome, error) {
	if runID == "" {
		runID = NewRunID(input)
	}
	if err := ValidateRunID(runID); err != nil {
		return nil, err
	}

	dir := filepath.Join(root, runID)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, InputFile), input); err != nil {
		return nil, err
	}

	rctx := seam.NewRunContext()
	handle, err := seam.New(p.Engine).Acquire(input, rctx)
	if err != nil {
		return nil, err
	}

	ps, verr := proposal.Validate(handle)
	if err := writeFileAtomic(filepath.Join(dir, ProposalSetFile), normalizedSetJSON(ps, verr)); err != nil {
		return nil, err
	}

	rec := decision.Decide(ps, verr, decision.Meta{
		RunID:          runID,
		InputRef:       InputFile,
		ProposalSetRef: ProposalSetFile,
	})
	recJSON, err := artifact.ToJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("serialize artifact: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, ArtifactFile), recJSON); err != nil {
		return nil, err
	}

	res := p.dispatch(ctx, rec)
	if res.Executed && res.Err == nil {
		if err := writeFileAtomic(filepath.Join(dir, StdoutFile), res.Stdout); err != nil {
			return nil, err
		}
	}

	if p.Audit != nil {
		entry := audit.Entry{
			RunID:         runID,
			Decision:      string(rec.Decision),
			ProposalCount: rec.Construction.ProposalCount,
			Executed:      res.Executed,
			ExitStatus:    res.ExitStatus,
		}
		if rec.RejectPayload != nil {
			entry.ReasonCode = rec.RejectPayload.ReasonCode
		}
		if err := p.Audit.Record(entry); err != nil {
			return nil, fmt.Errorf("record audit entry: %w", err)
		}
	}

	return &Outcome{RunID: runID, Dir: dir, Record: rec, Result: res}, nil
}

func (p *Pipeline) dispatch(ctx context.Context, rec *artifact.Record) gateway.Result {
	if p.Runtime == nil {
		return gateway.Result{Executed: false, Decision: string(rec.Decision)}
	}
	return gateway.ExecuteIfAccepted(ctx, rec, p.Runtime.ExecFnFor(rec))
}

// normalizedSetJSON renders the validated set, or — when validation
// failed — the canonical empty set carrying the validator's error codes,
// so the persisted file is always well-formed regardless of what the
// engine produced.
func normalizedSetJSON(ps *proposal.ProposalSet, verr *proposal.ValidationError) []byte {
	out := ps
	if verr != nil || out == nil {
		out = proposal.Empty()
		if verr != nil {
			out.Errors = verr.Codes
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		// ProposalSet marshaling cannot fail for validated sets.
		data = []byte("{}")
	}
	return append(data, '\n')
}
