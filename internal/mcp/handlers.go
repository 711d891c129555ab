package mcp

import (
	"context"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/routegate/internal/lifecycle"
	"github.com/ppiankov/routegate/internal/model"
	"github.com/ppiankov/routegate/internal/proposal"
	"github.com/ppiankov/routegate/internal/seam"
)

// --- Input/Output types ---

// DecideInput defines parameters for the routegate_decide tool.
type DecideInput struct {
	Input string `json:"input" jsonschema:"raw input text to gate"`
	RunID string `json:"run_id,omitempty" jsonschema:"optional run id, derived from the input when omitted"`
}

// DecideOutput contains the decision and run references.
type DecideOutput struct {
	RunID      string `json:"run_id"`
	Decision   string `json:"decision"`
	Reason     string `json:"reason,omitempty"`
	Kind       string `json:"kind,omitempty"`
	NextState  string `json:"next_state,omitempty"`
	Executed   bool   `json:"executed"`
	ExitStatus int    `json:"exit_status,omitempty"`
	RunDir     string `json:"run_dir"`
}

// ValidateInput defines parameters for the routegate_validate tool.
type ValidateInput struct {
	ProposalSet string `json:"proposal_set" jsonschema:"raw proposal-set JSON to validate"`
}

// ValidateOutput contains the schema validation outcome.
type ValidateOutput struct {
	Valid         bool     `json:"valid"`
	ErrorCodes    []string `json:"error_codes,omitempty"`
	ProposalCount int      `json:"proposal_count"`
}

// TransitionInput defines parameters for the routegate_transition tool.
type TransitionInput struct {
	From  string `json:"from,omitempty" jsonschema:"current order state, defaults to CREATED"`
	Event string `json:"event" jsonschema:"lifecycle event token"`
}

// TransitionOutput contains the legality check result.
type TransitionOutput struct {
	Legal    bool     `json:"legal"`
	From     string   `json:"from"`
	Event    string   `json:"event"`
	Next     string   `json:"next,omitempty"`
	Terminal bool     `json:"terminal,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Allowed  []string `json:"allowed_events,omitempty"`
}

// --- Handlers ---

func (s *Server) handleDecide(ctx context.Context, req *mcpsdk.CallToolRequest, input DecideInput) (*mcpsdk.CallToolResult, DecideOutput, error) {
	s.mu.Lock()
	outcome, err := s.pipeline.Run(ctx, s.runsRoot, input.RunID, []byte(input.Input))
	s.mu.Unlock()
	if err != nil {
		return nil, DecideOutput{}, err
	}

	out := DecideOutput{
		RunID:      outcome.RunID,
		Decision:   string(outcome.Record.Decision),
		Executed:   outcome.Result.Executed,
		ExitStatus: outcome.Result.ExitStatus,
		RunDir:     outcome.Dir,
	}
	if outcome.Record.Decision == model.Reject && outcome.Record.RejectPayload != nil {
		out.Reason = outcome.Record.RejectPayload.ReasonCode
	}
	if p := outcome.Record.AcceptPayload; p != nil {
		out.Kind = p.Kind
		if p.Transition != nil {
			out.NextState = p.Transition.CurrentState
		}
	}

	// A REJECT is a successful gating run, not a tool error.
	return nil, out, nil
}

func (s *Server) handleValidate(ctx context.Context, req *mcpsdk.CallToolRequest, input ValidateInput) (*mcpsdk.CallToolResult, ValidateOutput, error) {
	ps, verr := proposal.Validate(seam.Wrap([]byte(input.ProposalSet)))
	if verr != nil {
		out := ValidateOutput{Valid: false, ErrorCodes: verr.Codes}
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, ValidateOutput{Valid: true, ProposalCount: len(ps.Proposals)}, nil
}

func (s *Server) handleTransition(ctx context.Context, req *mcpsdk.CallToolRequest, input TransitionInput) (*mcpsdk.CallToolResult, TransitionOutput, error) {
	from := lifecycle.InitialState
	if input.From != "" {
		from = lifecycle.OrderState(input.From)
	}

	out := TransitionOutput{
		From:  string(from),
		Event: input.Event,
	}

	next, err := lifecycle.Transition(from, lifecycle.EventToken(input.Event))
	if err != nil {
		var te *lifecycle.TransitionError
		if errors.As(err, &te) {
			out.Reason = te.Code
		} else {
			out.Reason = err.Error()
		}
		if lifecycle.IsValidState(from) {
			out.Allowed = allowedTokens(from)
		}
		return nil, out, nil
	}

	out.Legal = true
	out.Next = string(next)
	out.Terminal = lifecycle.IsTerminal(next)
	return nil, out, nil
}

func allowedTokens(from lifecycle.OrderState) []string {
	events := lifecycle.AllowedEventsFrom(from)
	tokens := make([]string, len(events))
	for i, e := range events {
		tokens[i] = string(e)
	}
	return tokens
}
