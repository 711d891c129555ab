package proposal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/routegate/internal/seam"
)

// ValidationError reports schema validation failure. Codes are bounded,
// deterministic, and non-authoritative: they describe what was malformed
// but carry no decision weight beyond INVALID_PROPOSALS.
type ValidationError struct {
	Codes []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("proposal set validation failed: %s", strings.Join(e.Codes, "; "))
}

// add appends a code, respecting the bound.
func (e *ValidationError) add(code string) {
	if len(e.Codes) < MaxErrors {
		e.Codes = append(e.Codes, code)
	}
}

// Validate unwraps the opaque bytes exactly once and checks them against
// the closed m1.0 schema. Every step is a hard failure point: UTF-8
// decode, JSON parse, required fields, version literal, size bounds,
// unknown-key rejection at every object level, and per-proposal variant
// constraints. There is no partial acceptance.
//
// Empty bytes are the one special case: they map to the canonical empty
// ProposalSet before any decoding, not to a validation error.
func Validate(h seam.OpaqueBytes) (*ProposalSet, *ValidationError) {
	data := h.Unwrap()
	if len(data) == 0 {
		return Empty(), nil
	}

	ve := &ValidationError{}

	if !utf8.Valid(data) {
		ve.add("INVALID_UTF8")
		return nil, ve
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		ve.add("ROOT_NOT_OBJECT")
		return nil, ve
	}

	for _, field := range []string{"schema_version", "input", "proposals"} {
		if _, ok := root[field]; !ok {
			ve.add("MISSING_REQUIRED_FIELD:" + field)
		}
	}
	if len(ve.Codes) > 0 {
		return nil, ve
	}

	if extra := extraKeys(root, "schema_version", "input", "proposals", "errors"); extra != "" {
		ve.add("UNEXPECTED_ROOT_FIELDS:" + extra)
	}

	ps := &ProposalSet{Proposals: []Proposal{}}

	if version, ok := asString(root["schema_version"]); !ok || version != SchemaVersion {
		ve.add(fmt.Sprintf("INVALID_SCHEMA_VERSION:expected=%s", SchemaVersion))
	} else {
		ps.SchemaVersion = version
	}

	validateInput(root["input"], ps, ve)
	validateProposals(root["proposals"], ps, ve)
	if raw, ok := root["errors"]; ok {
		validateErrors(raw, ps, ve)
	}

	if len(ve.Codes) > 0 {
		return nil, ve
	}
	return ps, nil
}

func validateInput(raw json.RawMessage, ps *ProposalSet, ve *ValidationError) {
	var input map[string]json.RawMessage
	if err := json.Unmarshal(raw, &input); err != nil {
		ve.add("INPUT_NOT_OBJECT")
		return
	}

	rawField, ok := input["raw"]
	switch {
	case !ok:
		ve.add("MISSING_INPUT_RAW")
	default:
		s, isString := asString(rawField)
		switch {
		case !isString:
			ve.add("INPUT_RAW_NOT_STRING")
		case utf8.RuneCountInString(s) > MaxInputLength:
			ve.add(fmt.Sprintf("INPUT_RAW_TOO_LONG:max=%d", MaxInputLength))
		default:
			ps.Input.Raw = s
		}
	}

	if extra := extraKeys(input, "raw"); extra != "" {
		ve.add("UNEXPECTED_INPUT_FIELDS:" + extra)
	}
}

func validateProposals(raw json.RawMessage, ps *ProposalSet, ve *ValidationError) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		ve.add("PROPOSALS_NOT_ARRAY")
		return
	}
	if len(items) > MaxProposals {
		ve.add(fmt.Sprintf("TOO_MANY_PROPOSALS:max=%d", MaxProposals))
		return
	}
	for i, item := range items {
		if p, ok := validateProposal(item, i, ve); ok {
			ps.Proposals = append(ps.Proposals, p)
		}
	}
}

func validateProposal(raw json.RawMessage, index int, ve *ValidationError) (Proposal, bool) {
	prefix := fmt.Sprintf("PROPOSAL_%d", index)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		ve.add(prefix + "_NOT_OBJECT")
		return Proposal{}, false
	}

	kindRaw, hasKind := obj["kind"]
	payload, hasPayload := obj["payload"]
	if !hasKind {
		ve.add(prefix + "_MISSING_KIND")
	}
	if !hasPayload {
		ve.add(prefix + "_MISSING_PAYLOAD")
	}
	if !hasKind || !hasPayload {
		return Proposal{}, false
	}

	if extra := extraKeys(obj, "kind", "payload"); extra != "" {
		ve.add(prefix + "_UNEXPECTED_FIELDS:" + extra)
	}

	kind, isString := asString(kindRaw)
	if !isString {
		ve.add(prefix + "_KIND_NOT_STRING")
		return Proposal{}, false
	}

	switch Kind(kind) {
	case KindRouteCandidate:
		route, ok := validateRoutePayload(payload, prefix, ve)
		if !ok {
			return Proposal{}, false
		}
		return Proposal{Kind: KindRouteCandidate, Route: route}, true
	case KindStateTransition:
		req, ok := validateTransitionPayload(payload, prefix, ve)
		if !ok {
			return Proposal{}, false
		}
		return Proposal{Kind: KindStateTransition, Transition: req}, true
	default:
		ve.add(prefix + "_INVALID_KIND:" + kind)
		return Proposal{}, false
	}
}

func validateRoutePayload(raw json.RawMessage, prefix string, ve *ValidationError) (*RouteCandidate, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		ve.add(prefix + "_PAYLOAD_NOT_OBJECT")
		return nil, false
	}

	intentRaw, hasIntent := payload["intent"]
	slotsRaw, hasSlots := payload["slots"]
	if !hasIntent {
		ve.add(prefix + "_PAYLOAD_MISSING_INTENT")
	}
	if !hasSlots {
		ve.add(prefix + "_PAYLOAD_MISSING_SLOTS")
	}
	if !hasIntent || !hasSlots {
		return nil, false
	}

	if extra := extraKeys(payload, "intent", "slots"); extra != "" {
		ve.add(prefix + "_PAYLOAD_UNEXPECTED_FIELDS:" + extra)
	}

	route := &RouteCandidate{}

	intent, isString := asString(intentRaw)
	switch {
	case !isString:
		ve.add(prefix + "_INTENT_NOT_STRING")
	case Intent(intent) != RestartSubsystem && Intent(intent) != StopSubsystem && Intent(intent) != StatusQuery:
		ve.add(prefix + "_INVALID_INTENT:" + intent)
	default:
		route.Intent = Intent(intent)
	}

	var slots map[string]json.RawMessage
	if err := json.Unmarshal(slotsRaw, &slots); err != nil {
		ve.add(prefix + "_SLOTS_NOT_OBJECT")
		return nil, false
	}

	if extra := extraKeys(slots, "target", "mode"); extra != "" {
		ve.add(prefix + "_SLOTS_UNEXPECTED_FIELDS:" + extra)
	}

	if targetRaw, ok := slots["target"]; ok {
		target, isString := asString(targetRaw)
		switch {
		case !isString:
			ve.add(prefix + "_TARGET_NOT_STRING")
		case Target(target) != TargetAlpha && Target(target) != TargetBeta && Target(target) != TargetGamma:
			ve.add(prefix + "_INVALID_TARGET:" + target)
		default:
			route.Target = Target(target)
		}
	}

	if modeRaw, ok := slots["mode"]; ok {
		mode, isString := asString(modeRaw)
		switch {
		case !isString:
			ve.add(prefix + "_MODE_NOT_STRING")
		case Mode(mode) != ModeGraceful && Mode(mode) != ModeImmediate:
			ve.add(prefix + "_INVALID_MODE:" + mode)
		default:
			route.Mode = Mode(mode)
		}
	}

	return route, true
}

func validateTransitionPayload(raw json.RawMessage, prefix string, ve *ValidationError) (*StateTransitionRequest, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		ve.add(prefix + "_PAYLOAD_NOT_OBJECT")
		return nil, false
	}

	tokenRaw, ok := payload["event_token"]
	if !ok {
		ve.add(prefix + "_PAYLOAD_MISSING_EVENT_TOKEN")
		return nil, false
	}

	if extra := extraKeys(payload, "event_token"); extra != "" {
		ve.add(prefix + "_PAYLOAD_UNEXPECTED_FIELDS:" + extra)
	}

	// The token value is schema-checked as a string only. Membership in
	// the closed event vocabulary is the decision engine's gate.
	token, isString := asString(tokenRaw)
	if !isString {
		ve.add(prefix + "_EVENT_TOKEN_NOT_STRING")
		return nil, false
	}

	return &StateTransitionRequest{EventToken: token}, true
}

func validateErrors(raw json.RawMessage, ps *ProposalSet, ve *ValidationError) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		ve.add("ERRORS_NOT_ARRAY")
		return
	}
	if len(items) > MaxErrors {
		ve.add(fmt.Sprintf("TOO_MANY_ERROR_ENTRIES:max=%d", MaxErrors))
		return
	}
	for i, item := range items {
		s, isString := asString(item)
		switch {
		case !isString:
			ve.add(fmt.Sprintf("ERROR_ENTRY_%d_NOT_STRING", i))
		case utf8.RuneCountInString(s) > MaxErrorLength:
			ve.add(fmt.Sprintf("ERROR_ENTRY_%d_TOO_LONG:max=%d", i, MaxErrorLength))
		default:
			ps.Errors = append(ps.Errors, s)
		}
	}
}

// asString decodes raw as a JSON string.
func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// extraKeys returns a sorted comma-joined list of keys outside the
// allowed set, or "" when the object is clean.
func extraKeys(obj map[string]json.RawMessage, allowed ...string) string {
	ok := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		ok[k] = true
	}
	var extra []string
	for k := range obj {
		if !ok[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return strings.Join(extra, ",")
}
