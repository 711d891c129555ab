// Package certify runs built-in certification suites against the
// gating pipeline and renders pass/fail reports.
package certify

import (
	"github.com/ppiankov/routegate/internal/scenario"
	"github.com/ppiankov/routegate/internal/seam"
)

// CategoryResult holds pass/fail results for one category.
type CategoryResult struct {
	Name   string                `json:"name"`
	Total  int                   `json:"total"`
	Passed int                   `json:"passed"`
	Failed int                   `json:"failed"`
	Cases  []scenario.CaseResult `json:"cases"`
}

// CertResult holds the full certification outcome.
type CertResult struct {
	Suite      string           `json:"suite"`
	Version    string           `json:"version"`
	Total      int              `json:"total"`
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
	Categories []CategoryResult `json:"categories"`
}

// Run executes a certification suite against the given proposal engine
// and returns aggregated results.
func Run(suite *Suite, engine seam.Engine) *CertResult {
	result := &CertResult{
		Suite:   suite.Name,
		Version: suite.Version,
	}

	for _, cat := range suite.Categories {
		cr := runCategory(cat, engine)
		result.Total += cr.Total
		result.Passed += cr.Passed
		result.Failed += cr.Failed
		result.Categories = append(result.Categories, cr)
	}

	return result
}

func runCategory(cat Category, engine seam.Engine) CategoryResult {
	s := &scenario.Scenario{Name: cat.Name, Cases: cat.Cases}
	run := scenario.Run(s, engine)

	return CategoryResult{
		Name:   cat.Name,
		Total:  run.Total,
		Passed: run.Passed,
		Failed: run.Failed,
		Cases:  run.Cases,
	}
}
