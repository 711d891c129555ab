// Package routegate provides in-process decision gating for Go agent
// frameworks. It maps free-form instructions to structured proposals,
// validates them against the closed m1.0 schema, and applies the
// M2_RULESET_V1 ruleset deterministically. Rejected instructions never
// reach the guarded function.
//
// Usage:
//
//	rg := routegate.New()
//	guarded := rg.Gate(myTool)
//	out, err := guarded(ctx, "status of alpha")
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/ppiankov/routegate/sdk/go/routegate.
package routegate
