package audit

// Entry is one line in the hash-chained JSONL decision log. All fields
// are scalars or structs (no map[string]any) to guarantee deterministic
// json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp     string `json:"ts"`
	RunID         string `json:"run_id"`
	Decision      string `json:"decision"`
	ReasonCode    string `json:"reason_code,omitempty"`
	ProposalCount int    `json:"proposal_count"`
	Executed      bool   `json:"executed"`
	ExitStatus    int    `json:"exit_status,omitempty"`
	PrevHash      string `json:"prev_hash"`
}

// TimestampFormat is the UTC wall-clock format stamped on entries.
const TimestampFormat = "2006-01-02T15:04:05.000Z"
