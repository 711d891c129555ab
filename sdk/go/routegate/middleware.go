package routegate

import (
	"encoding/json"
	"net/http"
)

// InstructionHeader names the request header carrying the instruction
// to gate.
const InstructionHeader = "X-Routegate-Instruction"

// Middleware returns an http.Handler that decides the instruction in
// the X-Routegate-Instruction header before passing to the next
// handler. Rejected requests — including requests carrying no
// instruction at all — receive a 403 with a JSON body.
func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := c.Check(r.Header.Get(InstructionHeader))

		if !result.Allowed() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"blocked":  true,
				"decision": string(result.Decision),
				"reason":   result.Reason,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
