package store

import (
	"time"

	"go.uber.org/zap"

	"spica/internal/domain"
)

// Store is the in-memory normalized project state: one table per entity
// kind plus the two unassigned-tab containers. All mutation goes through
// Store methods so back-references and tab locations stay consistent.
//
// The store is single-writer: callers run mutations to completion before
// the next caller-visible state is observable, so no locking is needed.
type Store struct {
	scenes    map[string]*domain.Scene
	tabs      map[string]*domain.DraftTab
	chars     map[string]*domain.Character
	stars     map[string]*domain.Star
	planSteps map[string]*domain.PlanStep

	// Insertion-order indices. Map iteration order is unspecified; these
	// keep listing, serialization, and character detection deterministic.
	sceneOrder []string
	tabOrder   []string
	charOrder  []string
	starOrder  []string
	stepOrder  []string

	workbench []string // unassigned draft tab ids, ordered
	ideaBank  []string // stored draft tab ids, ordered

	activeSceneID string

	log *zap.Logger
}

// New creates an empty Store. A nil logger is replaced with zap.NewNop().
func New(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		scenes:    make(map[string]*domain.Scene),
		tabs:      make(map[string]*domain.DraftTab),
		chars:     make(map[string]*domain.Character),
		stars:     make(map[string]*domain.Star),
		planSteps: make(map[string]*domain.PlanStep),
		log:       log,
	}
}

// ActiveSceneID returns the current active scene id, or "".
func (s *Store) ActiveSceneID() string {
	return s.activeSceneID
}

// SetActiveScene marks the given scene as active.
func (s *Store) SetActiveScene(sceneID string) error {
	if _, ok := s.scenes[sceneID]; !ok {
		return notFound("scene", sceneID)
	}
	s.activeSceneID = sceneID
	return nil
}

// ActiveScene returns the active scene, or nil when none is set.
func (s *Store) ActiveScene() *domain.Scene {
	if s.activeSceneID == "" {
		return nil
	}
	return s.scenes[s.activeSceneID]
}

// WorkbenchTabIDs returns the ordered workbench tab ids.
func (s *Store) WorkbenchTabIDs() []string {
	return append([]string(nil), s.workbench...)
}

// IdeaBankTabIDs returns the ordered idea-bank tab ids.
func (s *Store) IdeaBankTabIDs() []string {
	return append([]string(nil), s.ideaBank...)
}

func (s *Store) now() time.Time {
	return time.Now().UTC()
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
