// Package proposal defines the untrusted ProposalSet wire format and its
// closed-schema validator. A ProposalSet is suggestion data only: nothing
// in it carries decision authority, and nothing downstream of the
// validator ever sees bytes that did not pass the full schema.
package proposal

import "encoding/json"

// Schema constants. These are part of the m1.0 wire contract and bound
// every run: violations are validation failures, never truncations.
const (
	SchemaVersion  = "m1.0"
	MaxInputLength = 4096
	MaxProposals   = 8
	MaxErrors      = 16
	MaxErrorLength = 256
)

// Kind discriminates the closed proposal variant.
type Kind string

const (
	KindRouteCandidate  Kind = "ROUTE_CANDIDATE"
	KindStateTransition Kind = "STATE_TRANSITION_REQUEST"
)

// Intent is a closed routing intent.
type Intent string

const (
	RestartSubsystem Intent = "RESTART_SUBSYSTEM"
	StopSubsystem    Intent = "STOP_SUBSYSTEM"
	StatusQuery      Intent = "STATUS_QUERY"
)

// Target is a closed subsystem identifier.
type Target string

const (
	TargetAlpha Target = "alpha"
	TargetBeta  Target = "beta"
	TargetGamma Target = "gamma"
)

// Mode is an optional routing mode.
type Mode string

const (
	ModeGraceful  Mode = "graceful"
	ModeImmediate Mode = "immediate"
)

// ProposalSet is the validated top-level document.
type ProposalSet struct {
	SchemaVersion string     `json:"schema_version"`
	Input         Input      `json:"input"`
	Proposals     []Proposal `json:"proposals"`
	Errors        []string   `json:"errors,omitempty"`
}

// Input echoes the raw user input the proposals were derived from.
type Input struct {
	Raw string `json:"raw"`
}

// Proposal is the closed two-kind variant. Exactly one of Route and
// Transition is non-nil, matching Kind.
type Proposal struct {
	Kind       Kind
	Route      *RouteCandidate
	Transition *StateTransitionRequest
}

// RouteCandidate proposes routing a command to a subsystem. An empty
// Mode means the slot was absent.
type RouteCandidate struct {
	Intent Intent
	Target Target
	Mode   Mode
}

// StateTransitionRequest proposes applying one lifecycle event. The
// token is schema-validated as a string only; membership in the closed
// event vocabulary is the decision engine's gate, not the schema's.
type StateTransitionRequest struct {
	EventToken string
}

// Empty is the canonical empty ProposalSet that empty acquisition bytes
// map to. This is a documented special case: empty bytes mean "the
// source produced nothing", which is a decision-layer REJECT
// (NO_PROPOSALS), not a malformed document.
func Empty() *ProposalSet {
	return &ProposalSet{
		SchemaVersion: SchemaVersion,
		Proposals:     []Proposal{},
	}
}

// wire shapes for (de)serialization

type wireProposal struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type wireRoutePayload struct {
	Intent string         `json:"intent"`
	Slots  wireRouteSlots `json:"slots"`
}

type wireRouteSlots struct {
	Target string `json:"target"`
	Mode   string `json:"mode,omitempty"`
}

type wireTransitionPayload struct {
	EventToken string `json:"event_token"`
}

// MarshalJSON emits the m1.0 wire shape {kind, payload}.
func (p Proposal) MarshalJSON() ([]byte, error) {
	var payload any
	switch p.Kind {
	case KindRouteCandidate:
		payload = wireRoutePayload{
			Intent: string(p.Route.Intent),
			Slots: wireRouteSlots{
				Target: string(p.Route.Target),
				Mode:   string(p.Route.Mode),
			},
		}
	case KindStateTransition:
		payload = wireTransitionPayload{EventToken: p.Transition.EventToken}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireProposal{Kind: string(p.Kind), Payload: raw})
}
