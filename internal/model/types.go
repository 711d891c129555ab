// Package model defines the closed decision vocabulary shared across the
// pipeline. Decisions and reason codes are wire literals: their spelling
// is part of the artifact_v1 contract.
package model

// Decision is the authoritative outcome of a run.
type Decision string

const (
	Accept Decision = "ACCEPT"
	Reject Decision = "REJECT"
)

// Reason codes for REJECT decisions. The lifecycle package owns the
// three transition-legality codes; they join this set verbatim.
const (
	ReasonNoProposals        = "NO_PROPOSALS"
	ReasonAmbiguousProposals = "AMBIGUOUS_PROPOSALS"
	ReasonInvalidProposals   = "INVALID_PROPOSALS"
	ReasonEnvelopeMismatch   = "L3_ENVELOPE_MISMATCH"
)

// RejectReasons is the closed set of legal reject reason codes,
// including the lifecycle gate's codes.
var RejectReasons = map[string]bool{
	ReasonNoProposals:        true,
	ReasonAmbiguousProposals: true,
	ReasonInvalidProposals:   true,
	ReasonEnvelopeMismatch:   true,
	"INVALID_EVENT_TOKEN":    true,
	"ILLEGAL_TRANSITION":     true,
	"INVALID_CURRENT_STATE":  true,
}
