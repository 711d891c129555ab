package seam

// Engine is the external proposal source: raw input bytes in, serialized
// ProposalSet bytes out. The binding is fixed at construction; nothing
// selects or swaps engines at runtime.
type Engine func(raw []byte) ([]byte, error)

// Seam invokes the bound engine at most once per RunContext.
type Seam struct {
	engine Engine
}

// New creates a seam bound to the given engine. A nil engine is legal
// and behaves as a source that always fails.
func New(engine Engine) *Seam {
	return &Seam{engine: engine}
}

// Acquire calls the bound engine exactly once and returns its output as
// opaque bytes. Every far-side failure — nil engine, error return, nil
// output, panic — collapses uniformly to empty opaque bytes; the three
// causes are observationally identical downstream. The only error this
// function returns is *ViolationError for a reused context.
//
// Acquire never retries and never branches on the content of the
// engine's output.
func (s *Seam) Acquire(raw []byte, ctx *RunContext) (OpaqueBytes, error) {
	if err := ctx.MarkUsed(); err != nil {
		return OpaqueBytes{}, err
	}
	return s.invoke(raw), nil
}

func (s *Seam) invoke(raw []byte) (out OpaqueBytes) {
	defer func() {
		if r := recover(); r != nil {
			out = OpaqueBytes{}
		}
	}()

	if s.engine == nil {
		return OpaqueBytes{}
	}
	data, err := s.engine(raw)
	if err != nil || len(data) == 0 {
		return OpaqueBytes{}
	}
	return Wrap(data)
}
