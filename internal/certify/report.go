package certify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatText renders a certification result as human-readable text.
func FormatText(r *CertResult) string {
	var b strings.Builder

	header := fmt.Sprintf("Certification: %s v%s", r.Suite, r.Version)
	fmt.Fprintln(&b, header)
	fmt.Fprintln(&b, strings.Repeat("═", len(header)))

	for _, cat := range r.Categories {
		status := "PASS"
		if cat.Failed > 0 {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  %-30s %d/%-4d %s\n", cat.Name, cat.Passed, cat.Total, status)

		if cat.Failed > 0 {
			for _, c := range cat.Cases {
				if !c.Passed {
					input := c.Input
					if len(input) > 40 {
						input = input[:37] + "..."
					}
					fmt.Fprintf(&b, "    FAIL  case %d: %-40q expected %s, got %s %s\n",
						c.Index, input, c.Expected, c.Actual, c.Reason)
				}
			}
		}
	}

	fmt.Fprintln(&b, strings.Repeat("─", len(header)))

	status := "PASS"
	if r.Failed > 0 {
		status = "FAIL"
	}
	fmt.Fprintf(&b, "Result: %s (%d/%d)\n", status, r.Passed, r.Total)

	return b.String()
}

// FormatJSON renders a certification result as JSON.
func FormatJSON(r *CertResult) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal cert result: %w", err)
	}
	return string(data), nil
}
