package domain

import "time"

// PromptRecord is one entry in the generation history log: what was asked,
// which task and model served it, and how the call went.
type PromptRecord struct {
	ID        string
	Task      string
	UserInput string
	Model     string
	Success   bool
	LatencyMs int64
	CreatedAt time.Time
}
