// Package scenario evaluates gating test cases through the full
// acquire-validate-decide pipeline. Each case is an independent run:
// fresh acquisition context, fixed initial lifecycle state, no files
// and no runtime dispatch.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/routegate/internal/decision"
	"github.com/ppiankov/routegate/internal/model"
	"github.com/ppiankov/routegate/internal/proposal"
	"github.com/ppiankov/routegate/internal/seam"
)

// Run evaluates all cases against the given proposal engine. Each case
// gets a fresh RunContext (cases are independent).
func Run(s *Scenario, engine seam.Engine) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		cr := evalCase(i, c, engine)
		if cr.Passed {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, cr)
	}

	return result
}

func evalCase(i int, c Case, engine seam.Engine) CaseResult {
	cr := CaseResult{
		Index:    i + 1,
		Name:     c.Name,
		Input:    c.Input,
		Expected: strings.ToUpper(c.Expect),
	}

	rctx := seam.NewRunContext()
	handle, err := seam.New(engine).Acquire([]byte(c.Input), rctx)
	if err != nil {
		cr.Actual = "ERROR"
		cr.Detail = err.Error()
		return cr
	}

	ps, verr := proposal.Validate(handle)
	rec := decision.Decide(ps, verr, decision.Meta{
		RunID:          fmt.Sprintf("scenario-%d", i+1),
		InputRef:       "[inline]",
		ProposalSetRef: "[inline]",
	})

	cr.Actual = string(rec.Decision)
	if rec.RejectPayload != nil {
		cr.Reason = rec.RejectPayload.ReasonCode
	}

	cr.Passed = cr.Actual == cr.Expected
	if cr.Passed && rec.Decision == model.Reject && c.Reason != "" {
		cr.Passed = cr.Reason == c.Reason
	}
	if cr.Passed && rec.Decision == model.Accept && rec.AcceptPayload != nil {
		if c.Kind != "" && rec.AcceptPayload.Kind != c.Kind {
			cr.Passed = false
			cr.Detail = fmt.Sprintf("accepted kind %s, expected %s", rec.AcceptPayload.Kind, c.Kind)
		}
		if cr.Passed && c.State != "" {
			if rec.AcceptPayload.Transition == nil || rec.AcceptPayload.Transition.CurrentState != c.State {
				cr.Passed = false
				cr.Detail = fmt.Sprintf("expected post-transition state %s", c.State)
			}
		}
	}

	return cr
}

// LoadAndRun loads a scenario YAML file and runs it against the engine.
func LoadAndRun(path string, engine seam.Engine) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	result := Run(&s, engine)
	result.File = path

	return result, nil
}
