package store

import (
	"go.uber.org/zap"

	"spica/internal/domain"
)

// The move operations are the only way a draft tab changes container, so
// each one re-establishes the exactly-one-location invariant: the tab id
// appears in exactly one of a scene's list, the workbench, or the idea
// bank, and the tab's Location matches that membership.

// MoveToScene appends the tab to the target scene's list. Moving a tab to
// the scene that already holds it is a warned no-op.
func (s *Store) MoveToScene(tabID, sceneID string) error {
	tab, ok := s.tabs[tabID]
	if !ok {
		return notFound("draft tab", tabID)
	}
	sc, ok := s.scenes[sceneID]
	if !ok {
		return notFound("scene", sceneID)
	}

	if tab.Location.Kind == domain.LocationScene && tab.Location.SceneID == sceneID {
		s.log.Warn("draft tab already in target scene",
			zap.String("tabID", tabID), zap.String("sceneID", sceneID))
		return nil
	}

	s.detach(tabID)
	sc.DraftTabIDs = append(sc.DraftTabIDs, tabID)
	sc.UpdatedAt = s.now()
	tab.Location = domain.InScene(sceneID)
	tab.Index = len(sc.DraftTabIDs) - 1
	tab.UpdatedAt = s.now()
	return nil
}

// MoveToWorkbench appends the tab to the workbench list.
func (s *Store) MoveToWorkbench(tabID string) error {
	tab, ok := s.tabs[tabID]
	if !ok {
		return notFound("draft tab", tabID)
	}

	if tab.Location.Kind == domain.LocationWorkbench {
		s.log.Warn("draft tab already in workbench", zap.String("tabID", tabID))
		return nil
	}

	s.detach(tabID)
	s.workbench = append(s.workbench, tabID)
	tab.Location = domain.InWorkbench()
	tab.Index = len(s.workbench) - 1
	tab.UpdatedAt = s.now()
	return nil
}

// MoveToIdeaBank appends the tab to the idea-bank list.
func (s *Store) MoveToIdeaBank(tabID string) error {
	tab, ok := s.tabs[tabID]
	if !ok {
		return notFound("draft tab", tabID)
	}

	if tab.Location.Kind == domain.LocationIdeaBank {
		s.log.Warn("draft tab already in idea bank", zap.String("tabID", tabID))
		return nil
	}

	s.detach(tabID)
	s.ideaBank = append(s.ideaBank, tabID)
	tab.Location = domain.InIdeaBank()
	tab.Index = len(s.ideaBank) - 1
	tab.UpdatedAt = s.now()
	return nil
}

// detach removes the tab id from every container. By the invariant only one
// list should hold it, but removal runs against all three defensively so a
// corrupted state cannot survive a move.
func (s *Store) detach(tabID string) {
	for _, sc := range s.scenes {
		before := len(sc.DraftTabIDs)
		sc.DraftTabIDs = removeID(sc.DraftTabIDs, tabID)
		if len(sc.DraftTabIDs) != before {
			sc.UpdatedAt = s.now()
		}
	}
	s.workbench = removeID(s.workbench, tabID)
	s.ideaBank = removeID(s.ideaBank, tabID)
}

// Reorder replaces a container's id list with newOrder, filtered to ids that
// exist and already belong to that container. Invalid entries are dropped
// with a warning, never inserted. Every remaining member's Index is
// rewritten to its 0-based position.
func (s *Store) Reorder(kind domain.LocationKind, containerID string, newOrder []string) error {
	var current []string
	switch kind {
	case domain.LocationScene:
		sc, ok := s.scenes[containerID]
		if !ok {
			return notFound("scene", containerID)
		}
		current = sc.DraftTabIDs
	case domain.LocationWorkbench:
		current = s.workbench
	case domain.LocationIdeaBank:
		current = s.ideaBank
	default:
		return notFound("container", string(kind))
	}

	members := make(map[string]bool, len(current))
	for _, id := range current {
		members[id] = true
	}

	filtered := make([]string, 0, len(newOrder))
	seen := make(map[string]bool, len(newOrder))
	for _, id := range newOrder {
		if _, exists := s.tabs[id]; !exists || !members[id] || seen[id] {
			s.log.Warn("dropping invalid id from reorder",
				zap.String("tabID", id), zap.String("container", string(kind)))
			continue
		}
		seen[id] = true
		filtered = append(filtered, id)
	}
	// Members omitted from newOrder keep their place at the tail.
	for _, id := range current {
		if !seen[id] {
			filtered = append(filtered, id)
		}
	}

	switch kind {
	case domain.LocationScene:
		sc := s.scenes[containerID]
		sc.DraftTabIDs = filtered
		sc.UpdatedAt = s.now()
	case domain.LocationWorkbench:
		s.workbench = filtered
	case domain.LocationIdeaBank:
		s.ideaBank = filtered
	}

	for i, id := range filtered {
		s.tabs[id].Index = i
	}
	return nil
}
