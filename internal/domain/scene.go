package domain

import "time"

// Scene is an authored unit of story: setting, backstory, a plan, and an
// ordered sequence of draft tabs. Draft-tab ordering is owned by the scene's
// DraftTabIDs list.
type Scene struct {
	ID          string
	Name        string
	Setting     string
	Backstory   string
	Plan        ScenePlan
	DraftTabIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScenePlan is the scene's outline: freeform text plus parsed steps.
type ScenePlan struct {
	RawText     string
	ParsedSteps []string // PlanStep IDs, in plan order
}
