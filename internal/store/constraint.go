package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"spica/internal/domain"
)

// Constraints are opt-out: they exist specifically to be enforced, so new
// ones are checked and carry a high default priority.
const constraintDefaultPriority = 0.8

// ConstraintInput carries the caller-supplied fields for a new character
// constraint.
type ConstraintInput struct {
	Type             domain.ConstraintType
	Title            string
	Description      string
	SituationContext string
	ConstraintTags   []string
}

// CreateCharacterConstraint records a behavioral rule for a character,
// anchored to the timeline event that motivated it. The event's current
// text is snapshotted into the new star so later edits to the event do not
// rewrite the constraint's justification. Returns the new star's id.
func (s *Store) CreateCharacterConstraint(eventID, tabID, characterID string, in ConstraintInput) (string, error) {
	tab, ok := s.tabs[tabID]
	if !ok {
		return "", notFound("draft tab", tabID)
	}
	ev := tab.FindEvent(eventID)
	if ev == nil {
		return "", notFound("timeline event", eventID)
	}
	if _, ok := s.chars[characterID]; !ok {
		return "", notFound("character", characterID)
	}
	if !domain.ValidConstraintTypes[string(in.Type)] {
		return "", fmt.Errorf("invalid constraint type %q", in.Type)
	}

	st := &domain.Star{
		ID:    uuid.New().String(),
		Kind:  domain.StarCharacterConstraint,
		Title: in.Title,
		Body:  in.Description,
		Tags: domain.StarTags{
			Characters:        []string{characterID},
			Scope:             domain.ScopeCurrentScene,
			Status:            domain.StarActive,
			Custom:            []string{},
			ConstraintContext: append([]string(nil), in.ConstraintTags...),
		},
		Priority:         constraintDefaultPriority,
		IsChecked:        true,
		OriginDraftTabID: tabID,
		Constraint: &domain.ConstraintDetail{
			Type:               in.Type,
			AppliesToCharacter: characterID,
			SituationContext:   in.SituationContext,
			SourceEvent: &domain.SourceEventRef{
				TabID:     tabID,
				EventID:   eventID,
				EventText: ev.Text,
			},
		},
		CreatedAt: s.now(),
	}
	s.stars[st.ID] = st
	s.starOrder = append(s.starOrder, st.ID)
	return st.ID, nil
}

// DetectCharactersInEvent returns the ids of known characters whose names
// appear in the event text, case-insensitively, in character insertion
// order rather than text-occurrence order. This is a substring heuristic:
// a name that is a prefix of another ("Ann" in "Anne") will false-positive.
func (s *Store) DetectCharactersInEvent(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, id := range s.charOrder {
		c := s.chars[id]
		if c.Name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c.Name)) {
			out = append(out, id)
		}
	}
	return out
}
