package model

import "time"

// RunStatus represents the current state of a verification run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one batch verification over an input collection.
type Run struct {
	ID        string      `json:"id"`
	Source    string      `json:"source"`
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RunSummary counts the outcomes of a run.
type RunSummary struct {
	Entities      int `json:"entities"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
	Verified      int `json:"verified"`
	LikelyCorrect int `json:"likely_correct"`
	Unverified    int `json:"unverified"`
}

// Add tallies one result into the summary.
func (s *RunSummary) Add(status Status) {
	s.Entities++
	switch status {
	case StatusVerified:
		s.Verified++
	case StatusLikelyCorrect:
		s.LikelyCorrect++
	default:
		s.Unverified++
	}
}

// StoredResult is a persisted verification result.
type StoredResult struct {
	RunID     string       `json:"run_id"`
	EntityID  string       `json:"entity_id"`
	Status    Status       `json:"status"`
	Record    OutputRecord `json:"record"`
	CreatedAt time.Time    `json:"created_at"`
}
