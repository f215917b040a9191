package store

import (
	"fmt"

	"spica/internal/domain"
)

// ConsistencyReport collects the findings of a full-store location check.
// Errors are invariant violations; warnings are soft inconsistencies.
type ConsistencyReport struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no invariant violations were found.
func (r *ConsistencyReport) OK() bool {
	return len(r.Errors) == 0
}

func (r *ConsistencyReport) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ConsistencyReport) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateLocations checks the exactly-one-location invariant across the
// whole store. Intended for tests and debugging, not the hot path.
func (s *Store) ValidateLocations() *ConsistencyReport {
	report := &ConsistencyReport{}

	// Count container memberships per tab id, and catch dangling refs.
	memberships := make(map[string][]string, len(s.tabs))
	record := func(tabID, container string) {
		if _, ok := s.tabs[tabID]; !ok {
			report.errorf("container %s references nonexistent tab %s", container, tabID)
			return
		}
		memberships[tabID] = append(memberships[tabID], container)
	}

	for _, sceneID := range s.sceneOrder {
		sc := s.scenes[sceneID]
		for _, tabID := range sc.DraftTabIDs {
			record(tabID, "scene:"+sceneID)
		}
	}
	for _, tabID := range s.workbench {
		record(tabID, "workbench")
	}
	for _, tabID := range s.ideaBank {
		record(tabID, "idea_bank")
	}

	for _, tabID := range s.tabOrder {
		tab := s.tabs[tabID]
		containers := memberships[tabID]

		switch len(containers) {
		case 0:
			report.errorf("tab %s is not in any container", tabID)
			continue
		case 1:
		default:
			report.errorf("tab %s is in %d containers: %v", tabID, len(containers), containers)
			continue
		}

		// Location tag must agree with the actual membership.
		want := containers[0]
		switch tab.Location.Kind {
		case domain.LocationScene:
			if want != "scene:"+tab.Location.SceneID {
				report.errorf("tab %s location says scene %s but membership is %s",
					tabID, tab.Location.SceneID, want)
			}
		case domain.LocationWorkbench:
			if want != "workbench" {
				report.errorf("tab %s location says workbench but membership is %s", tabID, want)
			}
		case domain.LocationIdeaBank:
			if want != "idea_bank" {
				report.errorf("tab %s location says idea_bank but membership is %s", tabID, want)
			}
		default:
			report.errorf("tab %s has unknown location kind %q", tabID, tab.Location.Kind)
		}
	}

	// Soft checks: index agreement with list position.
	checkIndexes := func(ids []string, container string) {
		for i, tabID := range ids {
			if tab, ok := s.tabs[tabID]; ok && tab.Index != i {
				report.warnf("tab %s index %d does not match position %d in %s",
					tabID, tab.Index, i, container)
			}
		}
	}
	for _, sceneID := range s.sceneOrder {
		checkIndexes(s.scenes[sceneID].DraftTabIDs, "scene:"+sceneID)
	}
	checkIndexes(s.workbench, "workbench")
	checkIndexes(s.ideaBank, "idea_bank")

	if s.activeSceneID != "" {
		if _, ok := s.scenes[s.activeSceneID]; !ok {
			report.warnf("active scene %s does not exist", s.activeSceneID)
		}
	}

	return report
}
