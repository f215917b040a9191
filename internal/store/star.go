package store

import (
	"time"

	"github.com/google/uuid"

	"spica/internal/domain"
)

// StarInput carries the caller-supplied fields for a new fact star.
type StarInput struct {
	Title            string
	Body             string
	Tags             domain.StarTags
	Priority         float64
	IsChecked        bool
	OriginDraftTabID string
}

// CreateStar adds a fact star and returns its id.
func (s *Store) CreateStar(in StarInput) string {
	st := &domain.Star{
		ID:               uuid.New().String(),
		Kind:             domain.StarFact,
		Title:            in.Title,
		Body:             in.Body,
		Tags:             in.Tags,
		Priority:         in.Priority,
		IsChecked:        in.IsChecked,
		OriginDraftTabID: in.OriginDraftTabID,
		CreatedAt:        s.now(),
	}
	s.stars[st.ID] = st
	s.starOrder = append(s.starOrder, st.ID)
	return st.ID
}

// Star returns the star with the given id.
func (s *Store) Star(id string) (*domain.Star, error) {
	st, ok := s.stars[id]
	if !ok {
		return nil, notFound("star", id)
	}
	return st, nil
}

// Stars returns all stars in creation order.
func (s *Store) Stars() []*domain.Star {
	out := make([]*domain.Star, 0, len(s.starOrder))
	for _, id := range s.starOrder {
		out = append(out, s.stars[id])
	}
	return out
}

// CheckedStars returns the stars currently marked for LLM context, in
// creation order. Encounter order here is the tie-break order the context
// builder preserves for equal priorities.
func (s *Store) CheckedStars() []*domain.Star {
	var out []*domain.Star
	for _, id := range s.starOrder {
		if st := s.stars[id]; st.IsChecked {
			out = append(out, st)
		}
	}
	return out
}

// SetStarChecked toggles a star's inclusion in the next LLM context.
func (s *Store) SetStarChecked(id string, checked bool) error {
	st, ok := s.stars[id]
	if !ok {
		return notFound("star", id)
	}
	st.IsChecked = checked
	return nil
}

// SetStarPriority updates a star's priority, clamped to [0, 1].
func (s *Store) SetStarPriority(id string, priority float64) error {
	st, ok := s.stars[id]
	if !ok {
		return notFound("star", id)
	}
	if priority < 0 {
		priority = 0
	}
	if priority > 1 {
		priority = 1
	}
	st.Priority = priority
	return nil
}

// StampStarUsed records that a star was included in a submitted prompt.
func (s *Store) StampStarUsed(id string, at time.Time) error {
	st, ok := s.stars[id]
	if !ok {
		return notFound("star", id)
	}
	t := at.UTC()
	st.LastUsedInPrompt = &t
	return nil
}

// DeleteStar removes a star and prunes its id from timeline event
// associations, plan step links, and description origins.
func (s *Store) DeleteStar(id string) error {
	if _, ok := s.stars[id]; !ok {
		return notFound("star", id)
	}
	for _, tab := range s.tabs {
		for i := range tab.Timeline {
			tab.Timeline[i].AssociatedStars = removeID(tab.Timeline[i].AssociatedStars, id)
		}
		for i := range tab.Descriptions {
			if tab.Descriptions[i].OriginStarID == id {
				tab.Descriptions[i].OriginStarID = ""
			}
		}
	}
	for _, step := range s.planSteps {
		step.LinkedStars = removeID(step.LinkedStars, id)
	}
	delete(s.stars, id)
	s.starOrder = removeID(s.starOrder, id)
	return nil
}
