package store

import (
	"go.uber.org/zap"

	"spica/internal/domain"
)

// Seed is a complete denormalized project state used to rebuild a Store,
// typically from a persisted snapshot. Slice order becomes the store's
// insertion order.
type Seed struct {
	Scenes     []domain.Scene
	Tabs       []domain.DraftTab
	Characters []domain.Character
	Stars      []domain.Star
	PlanSteps  []domain.PlanStep

	WorkbenchTabIDs []string
	IdeaBankTabIDs  []string
	ActiveSceneID   string
}

// NewFromSeed builds a Store from a seed. The seed is trusted: tab
// locations must already agree with the container lists. Snapshots pass
// through Repair before reaching this point.
func NewFromSeed(seed Seed, log *zap.Logger) *Store {
	s := New(log)

	for i := range seed.Scenes {
		sc := seed.Scenes[i]
		s.scenes[sc.ID] = &sc
		s.sceneOrder = append(s.sceneOrder, sc.ID)
	}
	for i := range seed.Tabs {
		tab := seed.Tabs[i]
		s.tabs[tab.ID] = &tab
		s.tabOrder = append(s.tabOrder, tab.ID)
	}
	for i := range seed.Characters {
		c := seed.Characters[i]
		s.chars[c.ID] = &c
		s.charOrder = append(s.charOrder, c.ID)
	}
	for i := range seed.Stars {
		st := seed.Stars[i]
		s.stars[st.ID] = &st
		s.starOrder = append(s.starOrder, st.ID)
	}
	for i := range seed.PlanSteps {
		ps := seed.PlanSteps[i]
		s.planSteps[ps.ID] = &ps
		s.stepOrder = append(s.stepOrder, ps.ID)
	}

	s.workbench = append([]string(nil), seed.WorkbenchTabIDs...)
	s.ideaBank = append([]string(nil), seed.IdeaBankTabIDs...)
	s.activeSceneID = seed.ActiveSceneID

	return s
}
