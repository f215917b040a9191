package domain

import "time"

// Star is a tagged fact or character constraint that can be "checked" for
// inclusion in LLM context. Kind discriminates the two variants; Constraint
// is non-nil exactly when Kind is StarCharacterConstraint.
type Star struct {
	ID               string
	Kind             StarKind
	Title            string
	Body             string
	Tags             StarTags
	Priority         float64 // 0.0 to 1.0
	IsChecked        bool
	OriginDraftTabID string
	Constraint       *ConstraintDetail
	CreatedAt        time.Time
	LastUsedInPrompt *time.Time
}

// IsConstraint reports whether the star is the character-constraint variant.
func (s *Star) IsConstraint() bool {
	return s.Kind == StarCharacterConstraint && s.Constraint != nil
}

// StarTags groups the classification tags attached to a star.
type StarTags struct {
	Characters        []string // Character IDs
	Scope             StarScope
	Status            StarStatus
	Custom            []string
	ConstraintContext []string
}

// ConstraintDetail carries the character-constraint fields of a Star.
type ConstraintDetail struct {
	Type               ConstraintType
	AppliesToCharacter string // Character ID
	SituationContext   string // "when angry", "in public"
	SourceEvent        *SourceEventRef
}

// SourceEventRef records where a constraint came from. EventText is a
// snapshot taken at creation time, not a live reference, so later edits to
// the event do not alter the constraint's recorded justification.
type SourceEventRef struct {
	TabID     string
	EventID   string
	EventText string
}
