// Package artifact defines the sealed decision record produced once per
// run by the decision engine. Records are structs only (no map[string]any)
// so json.Marshal field order is deterministic and serializations are
// byte-identical for identical inputs.
package artifact

import (
	"encoding/json"

	"github.com/ppiankov/routegate/internal/model"
)

// Wire literals for the artifact_v1 format.
const (
	Version   = "artifact_v1"
	RulesetID = "M2_RULESET_V1"
)

// Record is the immutable, serializable decision record. Exactly one of
// AcceptPayload and RejectPayload is present, matching Decision. The
// execution gateway reads records; it never mutates them.
type Record struct {
	ArtifactVersion string         `json:"artifact_version"`
	RunID           string         `json:"run_id"`
	InputRef        string         `json:"input_ref"`
	ProposalSetRef  string         `json:"proposal_set_ref"`
	Decision        model.Decision `json:"decision"`
	AcceptPayload   *AcceptPayload `json:"accept_payload,omitempty"`
	RejectPayload   *RejectPayload `json:"reject_payload,omitempty"`
	Construction    Construction   `json:"construction"`
}

// AcceptPayload describes the single accepted proposal. Kind selects the
// variant: "ROUTE" carries Route, "STATE_TRANSITION" carries Transition.
type AcceptPayload struct {
	Kind       string          `json:"kind"`
	Route      *Route          `json:"route,omitempty"`
	Transition *TransitionInfo `json:"transition,omitempty"`
}

// Accept payload kinds.
const (
	AcceptKindRoute           = "ROUTE"
	AcceptKindStateTransition = "STATE_TRANSITION"
)

// Route is the accepted routing envelope.
type Route struct {
	Intent string `json:"intent"`
	Target string `json:"target"`
	Mode   string `json:"mode,omitempty"`
}

// TransitionInfo describes an accepted single-step lifecycle transition.
type TransitionInfo struct {
	OrderID       string `json:"order_id"`
	PreviousState string `json:"previous_state"`
	Event         string `json:"event"`
	CurrentState  string `json:"current_state"`
	Terminal      bool   `json:"terminal"`
}

// RejectPayload carries the reason a run was rejected.
type RejectPayload struct {
	ReasonCode      string   `json:"reason_code"`
	ProposalCount   int      `json:"proposal_count"`
	ValidatorErrors []string `json:"validator_errors,omitempty"`
}

// Construction records how the decision was derived.
type Construction struct {
	RulesetID             string `json:"ruleset_id"`
	ProposalCount         int    `json:"proposal_count"`
	SelectedProposalIndex *int   `json:"selected_proposal_index"`
}

// ToJSON serializes a record deterministically: struct field order,
// two-space indent, trailing newline. Identical records always yield
// byte-identical output.
func ToJSON(r *Record) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
