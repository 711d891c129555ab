package routegate

import "context"

// ToolFunc is the function signature that Gate guards. The instruction
// is the free-form text the decision pipeline evaluates.
type ToolFunc func(ctx context.Context, instruction string) (any, error)

// Gate returns a ToolFunc that decides each instruction before calling
// fn. Rejected instructions return a *BlockedError without calling fn.
func (c *Client) Gate(fn ToolFunc) ToolFunc {
	return func(ctx context.Context, instruction string) (any, error) {
		result := c.Check(instruction)
		if !result.Allowed() {
			return nil, &BlockedError{
				Input:    instruction,
				Decision: result.Decision,
				Reason:   result.Reason,
			}
		}
		return fn(ctx, instruction)
	}
}
