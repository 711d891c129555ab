package scenario

// Case is one gating test case: an input line and the decision it must
// produce when run through the full acquire-validate-decide pipeline.
type Case struct {
	Name   string `yaml:"name,omitempty"`
	Input  string `yaml:"input"`
	Expect string `yaml:"expect"`               // ACCEPT or REJECT
	Reason string `yaml:"reason,omitempty"`     // required reason code on REJECT
	Kind   string `yaml:"kind,omitempty"`       // expected accepted payload kind
	State  string `yaml:"next_state,omitempty"` // expected post-transition state
}

// Scenario is a named collection of gating test cases.
type Scenario struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index    int    `json:"index"`
	Passed   bool   `json:"passed"`
	Name     string `json:"name,omitempty"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file,omitempty"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
