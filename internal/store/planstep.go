package store

import (
	"github.com/google/uuid"

	"spica/internal/domain"
)

// CreatePlanStep appends a step to a scene's plan and returns its id.
func (s *Store) CreatePlanStep(sceneID, text string) (string, error) {
	sc, ok := s.scenes[sceneID]
	if !ok {
		return "", notFound("scene", sceneID)
	}
	step := &domain.PlanStep{
		ID:   uuid.New().String(),
		Text: text,
	}
	s.planSteps[step.ID] = step
	s.stepOrder = append(s.stepOrder, step.ID)
	sc.Plan.ParsedSteps = append(sc.Plan.ParsedSteps, step.ID)
	sc.UpdatedAt = s.now()
	return step.ID, nil
}

// PlanStep returns the step with the given id.
func (s *Store) PlanStep(id string) (*domain.PlanStep, error) {
	step, ok := s.planSteps[id]
	if !ok {
		return nil, notFound("plan step", id)
	}
	return step, nil
}

// PlanSteps returns all plan steps in creation order.
func (s *Store) PlanSteps() []*domain.PlanStep {
	out := make([]*domain.PlanStep, 0, len(s.stepOrder))
	for _, id := range s.stepOrder {
		out = append(out, s.planSteps[id])
	}
	return out
}

// DeletePlanStep removes a step from its scene's plan and prunes its id
// from every tab's fulfilled list.
func (s *Store) DeletePlanStep(id string) error {
	if _, ok := s.planSteps[id]; !ok {
		return notFound("plan step", id)
	}
	for _, sc := range s.scenes {
		sc.Plan.ParsedSteps = removeID(sc.Plan.ParsedSteps, id)
	}
	for _, tab := range s.tabs {
		tab.FulfilledPlanSteps = removeID(tab.FulfilledPlanSteps, id)
	}
	delete(s.planSteps, id)
	s.stepOrder = removeID(s.stepOrder, id)
	return nil
}

// LinkPlanStepToTab marks a tab as fulfilling a plan step. Linking an
// already linked pair is a no-op.
func (s *Store) LinkPlanStepToTab(stepID, tabID string) error {
	step, ok := s.planSteps[stepID]
	if !ok {
		return notFound("plan step", stepID)
	}
	tab, ok := s.tabs[tabID]
	if !ok {
		return notFound("draft tab", tabID)
	}
	if !containsID(step.FulfilledBy, tabID) {
		step.FulfilledBy = append(step.FulfilledBy, tabID)
	}
	if !containsID(tab.FulfilledPlanSteps, stepID) {
		tab.FulfilledPlanSteps = append(tab.FulfilledPlanSteps, stepID)
		tab.UpdatedAt = s.now()
	}
	return nil
}

// UnlinkPlanStepFromTab removes the fulfillment link on both sides.
func (s *Store) UnlinkPlanStepFromTab(stepID, tabID string) error {
	step, ok := s.planSteps[stepID]
	if !ok {
		return notFound("plan step", stepID)
	}
	tab, ok := s.tabs[tabID]
	if !ok {
		return notFound("draft tab", tabID)
	}
	step.FulfilledBy = removeID(step.FulfilledBy, tabID)
	tab.FulfilledPlanSteps = removeID(tab.FulfilledPlanSteps, stepID)
	return nil
}

// LinkStarToPlanStep associates a star with a plan step.
func (s *Store) LinkStarToPlanStep(starID, stepID string) error {
	step, ok := s.planSteps[stepID]
	if !ok {
		return notFound("plan step", stepID)
	}
	if _, ok := s.stars[starID]; !ok {
		return notFound("star", starID)
	}
	if !containsID(step.LinkedStars, starID) {
		step.LinkedStars = append(step.LinkedStars, starID)
	}
	return nil
}
