package routegate

import "github.com/ppiankov/routegate/internal/seam"

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	engine seam.Engine
}

// WithEngine replaces the built-in instruction mapper with a custom
// proposal source. The engine's failures collapse to an empty proposal
// set, never to an error surfaced to callers.
func WithEngine(e seam.Engine) Option {
	return func(c *clientConfig) { c.engine = e }
}
