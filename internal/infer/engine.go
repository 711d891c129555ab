// Package infer is the deterministic proposal engine bound at the
// acquisition seam. It maps raw input text to at most one proposal via
// closed pattern sets. The mapping is derived, non-authoritative data:
// it never encodes envelope or transition legality, which belong to the
// decision engine alone. Same input, same bytes, always.
package infer

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/routegate/internal/lifecycle"
	"github.com/ppiankov/routegate/internal/proposal"
)

// routePattern maps one input shape to a ROUTE_CANDIDATE. Group 1 is
// always the target; group 2, when present, is the spoken mode adverb.
type routePattern struct {
	re        *regexp.Regexp
	intent    proposal.Intent
	fixedMode proposal.Mode
	modeGroup bool
}

var routePatterns = []routePattern{
	{regexp.MustCompile(`(?i)^restart\s+(alpha|beta|gamma)\s+subsystem\s+(gracefully|immediately)$`), proposal.RestartSubsystem, "", true},
	{regexp.MustCompile(`(?i)^graceful\s+restart\s+of\s+(alpha|beta|gamma)$`), proposal.RestartSubsystem, proposal.ModeGraceful, false},
	{regexp.MustCompile(`(?i)^immediate\s+restart\s+of\s+(alpha|beta|gamma)$`), proposal.RestartSubsystem, proposal.ModeImmediate, false},
	{regexp.MustCompile(`(?i)^stop\s+(alpha|beta|gamma)\s+subsystem\s+(gracefully|immediately)$`), proposal.StopSubsystem, "", true},
	{regexp.MustCompile(`(?i)^graceful\s+stop\s+of\s+(alpha|beta|gamma)$`), proposal.StopSubsystem, proposal.ModeGraceful, false},
	{regexp.MustCompile(`(?i)^immediate\s+stop\s+of\s+(alpha|beta|gamma)$`), proposal.StopSubsystem, proposal.ModeImmediate, false},
	{regexp.MustCompile(`(?i)^status\s+of\s+(alpha|beta|gamma)$`), proposal.StatusQuery, "", false},
	{regexp.MustCompile(`(?i)^query\s+status\s+of\s+(alpha|beta|gamma)$`), proposal.StatusQuery, "", false},
	{regexp.MustCompile(`(?i)^(alpha|beta|gamma)\s+status$`), proposal.StatusQuery, "", false},
}

var adverbModes = map[string]proposal.Mode{
	"gracefully":  proposal.ModeGraceful,
	"immediately": proposal.ModeImmediate,
}

// eventPhrases maps normalized lifecycle phrases to event tokens. The
// phrase vocabulary is closed; nothing fuzzy-matches.
var eventPhrases = map[string]lifecycle.EventToken{
	"create payment":    lifecycle.CreatePayment,
	"payment succeeded": lifecycle.PaymentSucceeded,
	"payment failed":    lifecycle.PaymentDeclined,
	"retry payment":     lifecycle.RetryPayment,
	"flag fraud":        lifecycle.FlagFraud,
	"approve fraud":     lifecycle.ApproveFraud,
	"reject fraud":      lifecycle.RejectFraud,
	"reserve inventory": lifecycle.ReserveInventory,
	"start picking":     lifecycle.StartPicking,
	"pack order":        lifecycle.PackOrder,
	"ship order":        lifecycle.ShipOrder,
	"mark in transit":   lifecycle.MarkInTransit,
	"confirm delivery":  lifecycle.ConfirmDelivery,
	"cancel order":      lifecycle.CancelOrder,
}

// Engine is the bound deterministic proposal source. It satisfies
// seam.Engine: raw input bytes in, serialized ProposalSet bytes out.
// Unmapped input yields a set with zero proposals, never a fallback.
func Engine(raw []byte) ([]byte, error) {
	return json.Marshal(Propose(string(raw)))
}

// Propose builds the ProposalSet for one input.
func Propose(input string) *proposal.ProposalSet {
	ps := proposal.Empty()
	ps.Input.Raw = truncateRunes(input, proposal.MaxInputLength)

	if utf8.RuneCountInString(input) > proposal.MaxInputLength {
		ps.Errors = []string{"INPUT_TOO_LONG"}
		return ps
	}

	text := normalize(input)

	if token, ok := eventPhrases[text]; ok {
		ps.Proposals = append(ps.Proposals, proposal.Proposal{
			Kind:       proposal.KindStateTransition,
			Transition: &proposal.StateTransitionRequest{EventToken: string(token)},
		})
		return ps
	}

	for _, p := range routePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		route := &proposal.RouteCandidate{
			Intent: p.intent,
			Target: proposal.Target(strings.ToLower(m[1])),
			Mode:   p.fixedMode,
		}
		if p.modeGroup {
			route.Mode = adverbModes[strings.ToLower(m[2])]
		}
		ps.Proposals = append(ps.Proposals, proposal.Proposal{
			Kind:  proposal.KindRouteCandidate,
			Route: route,
		})
		return ps
	}

	ps.Errors = []string{"UNMAPPED_INPUT"}
	return ps
}

// normalize lowercases and collapses interior whitespace so phrase
// lookup stays a single map access.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
