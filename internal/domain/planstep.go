package domain

// PlanStep is a single step of a scene's plan. Owned by the scene's plan;
// FulfilledBy records which draft tabs realize it.
type PlanStep struct {
	ID          string
	Text        string
	FulfilledBy []string // DraftTab IDs
	LinkedStars []string // Star IDs
}
