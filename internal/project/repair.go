package project

import (
	"time"

	"github.com/google/uuid"

	"spica/internal/domain"
)

// NewEmptyScene returns a scene with default values in wire form.
func NewEmptyScene(name string) SceneData {
	now := time.Now().UTC().UnixMilli()
	return SceneData{
		ID:          uuid.New().String(),
		Name:        name,
		Plan:        ScenePlanData{RawText: "", ParsedSteps: []string{}},
		DraftTabIDs: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewEmptyProject returns a fresh project with a single "Main Scene" set
// active.
func NewEmptyProject(title, author string) *ProjectData {
	now := time.Now().UTC().UnixMilli()
	scene := NewEmptyScene("Main Scene")
	return &ProjectData{
		Version: FormatVersion,
		Metadata: Metadata{
			Title:     title,
			Author:    author,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Scenes:        map[string]SceneData{scene.ID: scene},
		DraftTabs:     map[string]DraftTabData{},
		Workbench:     WorkbenchData{UnassignedDraftTabIDs: []string{}},
		Stars:         map[string]StarData{},
		Characters:    map[string]CharacterData{},
		PlanSteps:     map[string]PlanStepData{},
		IdeaBank:      IdeaBankData{StoredDraftTabIDs: []string{}},
		ActiveSceneID: scene.ID,
	}
}

// Repair normalizes incomplete or corrupted project data in place: missing
// collections get defaults, dangling references are pruned, every draft tab
// ends up in exactly one container, and an active scene always exists.
func Repair(data *ProjectData) {
	data.Version = domain.CoalesceStr(data.Version, FormatVersion)
	data.Metadata.Title = domain.CoalesceStr(data.Metadata.Title, "Untitled Project")
	now := time.Now().UTC().UnixMilli()
	if data.Metadata.CreatedAt == 0 {
		data.Metadata.CreatedAt = now
	}
	if data.Metadata.UpdatedAt == 0 {
		data.Metadata.UpdatedAt = now
	}

	if data.Scenes == nil {
		data.Scenes = map[string]SceneData{}
	}
	if data.DraftTabs == nil {
		data.DraftTabs = map[string]DraftTabData{}
	}
	if data.Stars == nil {
		data.Stars = map[string]StarData{}
	}
	if data.Characters == nil {
		data.Characters = map[string]CharacterData{}
	}
	if data.PlanSteps == nil {
		data.PlanSteps = map[string]PlanStepData{}
	}
	if data.Workbench.UnassignedDraftTabIDs == nil {
		data.Workbench.UnassignedDraftTabIDs = []string{}
	}
	if data.IdeaBank.StoredDraftTabIDs == nil {
		data.IdeaBank.StoredDraftTabIDs = []string{}
	}

	repairStars(data)
	repairCharacters(data)
	repairContainers(data)
	repairDescriptions(data)
	repairActiveScene(data)
}

// defaultStarPriority is applied when a star's priority is absent from the
// wire data. Matches the priority new stars get in the application.
const defaultStarPriority = 0.5

func repairStars(data *ProjectData) {
	for id, st := range data.Stars {
		prio := domain.Float64FromPtrWithDefault(defaultStarPriority, st.Priority)
		st.Priority = &prio
		checked := domain.BoolFromPtrWithDefault(false, st.IsChecked)
		st.IsChecked = &checked
		if st.OriginDraftTabID != "" {
			if _, ok := data.DraftTabs[st.OriginDraftTabID]; !ok {
				st.OriginDraftTabID = ""
			}
		}
		if st.ConstraintType != "" && !domain.ValidConstraintTypes[st.ConstraintType] {
			// Unrecognized constraint variant; demote to a plain fact.
			st.ConstraintType = ""
			st.AppliesToCharacter = ""
			st.SituationContext = ""
			st.SourceEvent = nil
		}
		data.Stars[id] = st
	}
}

func repairCharacters(data *ProjectData) {
	for id, c := range data.Characters {
		if c.Fields == nil {
			c.Fields = map[string]string{}
		}
		checked := domain.BoolFromPtrWithDefault(false, c.IsChecked)
		c.IsChecked = &checked
		data.Characters[id] = c
	}
}

// repairContainers prunes dangling tab references and enforces the
// one-location rule: a tab listed in multiple containers keeps its first
// placement (scenes before workbench before idea bank), a tab listed
// nowhere is appended to the workbench.
func repairContainers(data *ProjectData) {
	placed := make(map[string]bool, len(data.DraftTabs))

	keep := func(ids []string) []string {
		out := ids[:0]
		for _, id := range ids {
			if _, ok := data.DraftTabs[id]; !ok {
				continue
			}
			if placed[id] {
				continue
			}
			placed[id] = true
			out = append(out, id)
		}
		if out == nil {
			out = []string{}
		}
		return out
	}

	for id, sc := range data.Scenes {
		sc.DraftTabIDs = keep(sc.DraftTabIDs)
		data.Scenes[id] = sc
	}
	data.Workbench.UnassignedDraftTabIDs = keep(data.Workbench.UnassignedDraftTabIDs)
	data.IdeaBank.StoredDraftTabIDs = keep(data.IdeaBank.StoredDraftTabIDs)

	for _, td := range sortedTabs(data.DraftTabs) {
		if !placed[td.ID] {
			data.Workbench.UnassignedDraftTabIDs = append(data.Workbench.UnassignedDraftTabIDs, td.ID)
		}
	}
}

// repairDescriptions defaults a missing scope from the presence of a target
// event.
func repairDescriptions(data *ProjectData) {
	for id, td := range data.DraftTabs {
		for i := range td.Descriptions {
			d := &td.Descriptions[i]
			if d.Scope == "" {
				if d.TargetEventID != "" {
					d.Scope = string(domain.DescScopeEvent)
				} else {
					d.Scope = string(domain.DescScopeTab)
				}
			}
		}
		data.DraftTabs[id] = td
	}
}

func repairActiveScene(data *ProjectData) {
	if data.ActiveSceneID != "" {
		if _, ok := data.Scenes[data.ActiveSceneID]; ok {
			return
		}
	}
	if scenes := sortedScenes(data.Scenes); len(scenes) > 0 {
		data.ActiveSceneID = scenes[0].ID
		return
	}
	scene := NewEmptyScene("Main Scene")
	data.Scenes[scene.ID] = scene
	data.ActiveSceneID = scene.ID
}
