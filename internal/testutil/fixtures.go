package testutil

import (
	"time"

	"github.com/google/uuid"

	"spica/internal/domain"
)

// Star options
type StarOption func(*domain.Star)

func WithPriority(p float64) StarOption {
	return func(s *domain.Star) {
		s.Priority = p
	}
}

func WithChecked(checked bool) StarOption {
	return func(s *domain.Star) {
		s.IsChecked = checked
	}
}

func WithBody(body string) StarOption {
	return func(s *domain.Star) {
		s.Body = body
	}
}

func WithConstraint(characterID string, ctype domain.ConstraintType, situation string) StarOption {
	return func(s *domain.Star) {
		s.Kind = domain.StarCharacterConstraint
		s.Constraint = &domain.ConstraintDetail{
			Type:               ctype,
			AppliesToCharacter: characterID,
			SituationContext:   situation,
		}
	}
}

func NewTestStar(title string, opts ...StarOption) domain.Star {
	s := domain.Star{
		ID:        uuid.New().String(),
		Kind:      domain.StarFact,
		Title:     title,
		Priority:  0.5,
		IsChecked: true,
		Tags: domain.StarTags{
			Scope:  domain.ScopeCurrentScene,
			Status: domain.StarActive,
		},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Character options
type CharacterOption func(*domain.Character)

func WithField(key, value string) CharacterOption {
	return func(c *domain.Character) {
		c.SetField(key, value)
	}
}

func WithCharacterChecked(checked bool) CharacterOption {
	return func(c *domain.Character) {
		c.IsChecked = checked
	}
}

func NewTestCharacter(name string, opts ...CharacterOption) domain.Character {
	c := domain.Character{
		ID:        uuid.New().String(),
		Name:      name,
		IsChecked: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DraftTab options
type TabOption func(*domain.DraftTab)

func WithEvent(text, dialogue string, checked bool) TabOption {
	return func(t *domain.DraftTab) {
		t.Timeline = append(t.Timeline, domain.TimelineEvent{
			ID:       uuid.New().String(),
			Text:     text,
			Dialogue: dialogue,
			Checked:  checked,
		})
	}
}

func WithSummary(summary string) TabOption {
	return func(t *domain.DraftTab) {
		t.Summary = summary
	}
}

func WithIndex(i int) TabOption {
	return func(t *domain.DraftTab) {
		t.Index = i
	}
}

func NewTestTab(loc domain.Location, opts ...TabOption) domain.DraftTab {
	now := time.Now().UTC()
	t := domain.DraftTab{
		ID:        uuid.New().String(),
		Location:  loc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func NewTestScene(name string) domain.Scene {
	now := time.Now().UTC()
	return domain.Scene{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
