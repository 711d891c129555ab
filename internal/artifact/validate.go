package artifact

import (
	"fmt"
	"strings"

	"github.com/ppiankov/routegate/internal/model"
)

// ValidationError collects all structural failures in a record.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("artifact validation failed: %s", strings.Join(e.Errors, "; "))
}

func (e *ValidationError) add(msg string) {
	e.Errors = append(e.Errors, msg)
}

// Validate checks a record's structural invariants: version and ruleset
// literals, decision membership, exactly-one-payload matching the
// decision, and index/reason consistency. The execution gateway calls
// this before every dispatch; a record that fails here never executes,
// however ACCEPT-ish it looks.
func Validate(r *Record) error {
	ve := &ValidationError{}

	if r == nil {
		return &ValidationError{Errors: []string{"record is nil"}}
	}

	if r.ArtifactVersion != Version {
		ve.add(fmt.Sprintf("artifact_version %q is not supported (expected %q)", r.ArtifactVersion, Version))
	}
	if r.RunID == "" {
		ve.add("run_id is required")
	}
	if r.Construction.RulesetID != RulesetID {
		ve.add(fmt.Sprintf("construction.ruleset_id %q is not supported (expected %q)", r.Construction.RulesetID, RulesetID))
	}

	switch r.Decision {
	case model.Accept:
		if r.AcceptPayload == nil {
			ve.add("ACCEPT record is missing accept_payload")
		} else {
			validateAcceptPayload(r.AcceptPayload, ve)
		}
		if r.RejectPayload != nil {
			ve.add("ACCEPT record must not carry reject_payload")
		}
		if r.Construction.SelectedProposalIndex == nil {
			ve.add("ACCEPT record requires selected_proposal_index")
		} else if *r.Construction.SelectedProposalIndex != 0 {
			ve.add(fmt.Sprintf("selected_proposal_index %d is out of range", *r.Construction.SelectedProposalIndex))
		}
	case model.Reject:
		if r.RejectPayload == nil {
			ve.add("REJECT record is missing reject_payload")
		} else if !model.RejectReasons[r.RejectPayload.ReasonCode] {
			ve.add(fmt.Sprintf("unknown reason_code %q", r.RejectPayload.ReasonCode))
		}
		if r.AcceptPayload != nil {
			ve.add("REJECT record must not carry accept_payload")
		}
		if r.Construction.SelectedProposalIndex != nil {
			ve.add("REJECT record must not select a proposal")
		}
	default:
		ve.add(fmt.Sprintf("unknown decision %q", r.Decision))
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateAcceptPayload(p *AcceptPayload, ve *ValidationError) {
	switch p.Kind {
	case AcceptKindRoute:
		if p.Route == nil {
			ve.add("ROUTE accept_payload is missing route")
		}
		if p.Transition != nil {
			ve.add("ROUTE accept_payload must not carry transition")
		}
	case AcceptKindStateTransition:
		if p.Transition == nil {
			ve.add("STATE_TRANSITION accept_payload is missing transition")
		}
		if p.Route != nil {
			ve.add("STATE_TRANSITION accept_payload must not carry route")
		}
	default:
		ve.add(fmt.Sprintf("unknown accept_payload kind %q", p.Kind))
	}
}
