package routegate

import (
	"github.com/ppiankov/routegate/internal/decision"
	"github.com/ppiankov/routegate/internal/infer"
	"github.com/ppiankov/routegate/internal/proposal"
	"github.com/ppiankov/routegate/internal/runs"
	"github.com/ppiankov/routegate/internal/seam"
)

// Client holds the decision pipeline for in-process gating. It carries
// no per-call state and is safe for concurrent use.
type Client struct {
	cfg clientConfig
}

// New creates a Client with the given options. The default engine is the
// built-in instruction mapper.
func New(opts ...Option) *Client {
	cfg := clientConfig{engine: infer.Engine}
	for _, o := range opts {
		o(&cfg)
	}
	return &Client{cfg: cfg}
}

// Check decides an instruction without executing anything. Each call
// acquires proposals through a fresh single-use context, so engine
// failures and unmapped instructions both surface as REJECT results
// rather than errors.
func (c *Client) Check(input string) Result {
	h, err := seam.New(c.cfg.engine).Acquire([]byte(input), seam.NewRunContext())
	if err != nil {
		// Unreachable with a fresh context; decide on empty bytes.
		h = seam.OpaqueBytes{}
	}
	ps, verr := proposal.Validate(h)
	rec := decision.Decide(ps, verr, decision.Meta{
		RunID:          runs.NewRunID([]byte(input)),
		InputRef:       "[inline]",
		ProposalSetRef: "[inline]",
	})
	return toResult(rec)
}
