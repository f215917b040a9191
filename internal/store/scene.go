package store

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"spica/internal/domain"
)

// CreateScene creates an empty scene and returns its id.
func (s *Store) CreateScene(name string) string {
	now := s.now()
	sc := &domain.Scene{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.scenes[sc.ID] = sc
	s.sceneOrder = append(s.sceneOrder, sc.ID)
	return sc.ID
}

// Scene returns the scene with the given id.
func (s *Store) Scene(id string) (*domain.Scene, error) {
	sc, ok := s.scenes[id]
	if !ok {
		return nil, notFound("scene", id)
	}
	return sc, nil
}

// Scenes returns all scenes in creation order.
func (s *Store) Scenes() []*domain.Scene {
	out := make([]*domain.Scene, 0, len(s.sceneOrder))
	for _, id := range s.sceneOrder {
		out = append(out, s.scenes[id])
	}
	return out
}

// SetSceneName renames a scene.
func (s *Store) SetSceneName(id, name string) error {
	sc, ok := s.scenes[id]
	if !ok {
		return notFound("scene", id)
	}
	sc.Name = name
	sc.UpdatedAt = s.now()
	return nil
}

// SetSceneSetting updates a scene's setting text.
func (s *Store) SetSceneSetting(id, setting string) error {
	sc, ok := s.scenes[id]
	if !ok {
		return notFound("scene", id)
	}
	sc.Setting = setting
	sc.UpdatedAt = s.now()
	return nil
}

// SetSceneBackstory updates a scene's backstory text.
func (s *Store) SetSceneBackstory(id, backstory string) error {
	sc, ok := s.scenes[id]
	if !ok {
		return notFound("scene", id)
	}
	sc.Backstory = backstory
	sc.UpdatedAt = s.now()
	return nil
}

// SetScenePlanText replaces a scene's raw plan text. Parsed steps are
// managed separately via CreatePlanStep and DeletePlanStep.
func (s *Store) SetScenePlanText(id, rawText string) error {
	sc, ok := s.scenes[id]
	if !ok {
		return notFound("scene", id)
	}
	sc.Plan.RawText = rawText
	sc.UpdatedAt = s.now()
	return nil
}

// SceneTabs returns a scene's draft tabs in list order.
func (s *Store) SceneTabs(sceneID string) ([]*domain.DraftTab, error) {
	sc, ok := s.scenes[sceneID]
	if !ok {
		return nil, notFound("scene", sceneID)
	}
	out := make([]*domain.DraftTab, 0, len(sc.DraftTabIDs))
	for _, id := range sc.DraftTabIDs {
		if tab, ok := s.tabs[id]; ok {
			out = append(out, tab)
		}
	}
	return out, nil
}

// DeleteScene removes a scene. Its draft tabs are relocated to the
// workbench (never deleted with the scene), its plan steps are deleted with
// full cascade, and the active scene is reassigned if it pointed here.
func (s *Store) DeleteScene(id string) error {
	sc, ok := s.scenes[id]
	if !ok {
		return notFound("scene", id)
	}

	tabIDs := append([]string(nil), sc.DraftTabIDs...)
	for _, tabID := range tabIDs {
		if err := s.MoveToWorkbench(tabID); err != nil {
			s.log.Warn("relocating tab out of deleted scene",
				zap.String("sceneID", id), zap.String("tabID", tabID), zap.Error(err))
		}
	}

	stepIDs := append([]string(nil), sc.Plan.ParsedSteps...)
	for _, stepID := range stepIDs {
		if err := s.DeletePlanStep(stepID); err != nil {
			s.log.Warn("deleting plan step of deleted scene",
				zap.String("sceneID", id), zap.String("stepID", stepID), zap.Error(err))
		}
	}

	delete(s.scenes, id)
	s.sceneOrder = removeID(s.sceneOrder, id)

	if s.activeSceneID == id {
		s.activeSceneID = ""
		if len(s.sceneOrder) > 0 {
			s.activeSceneID = s.sceneOrder[0]
		}
	}
	return nil
}
