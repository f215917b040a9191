package project

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"spica/internal/domain"
	"spica/internal/store"
)

// Snapshot serializes the store into the wire format. Metadata.UpdatedAt is
// stamped with the current time.
func Snapshot(s *store.Store, meta Metadata) *ProjectData {
	data := &ProjectData{
		Version:       FormatVersion,
		Metadata:      meta,
		Scenes:        make(map[string]SceneData),
		DraftTabs:     make(map[string]DraftTabData),
		Workbench:     WorkbenchData{UnassignedDraftTabIDs: s.WorkbenchTabIDs()},
		Stars:         make(map[string]StarData),
		Characters:    make(map[string]CharacterData),
		PlanSteps:     make(map[string]PlanStepData),
		IdeaBank:      IdeaBankData{StoredDraftTabIDs: s.IdeaBankTabIDs()},
		ActiveSceneID: s.ActiveSceneID(),
	}
	data.Metadata.UpdatedAt = time.Now().UTC().UnixMilli()

	for _, sc := range s.Scenes() {
		data.Scenes[sc.ID] = SceneData{
			ID:        sc.ID,
			Name:      sc.Name,
			Setting:   sc.Setting,
			Backstory: sc.Backstory,
			Plan: ScenePlanData{
				RawText:     sc.Plan.RawText,
				ParsedSteps: append([]string{}, sc.Plan.ParsedSteps...),
			},
			DraftTabIDs: append([]string{}, sc.DraftTabIDs...),
			CreatedAt:   sc.CreatedAt.UnixMilli(),
			UpdatedAt:   sc.UpdatedAt.UnixMilli(),
		}
	}

	for _, tab := range s.DraftTabs() {
		data.DraftTabs[tab.ID] = encodeTab(tab)
	}

	for _, st := range s.Stars() {
		data.Stars[st.ID] = encodeStar(st)
	}

	for _, c := range s.Characters() {
		fields := make(map[string]string, len(c.Fields))
		for k, v := range c.Fields {
			fields[k] = v
		}
		checked := c.IsChecked
		data.Characters[c.ID] = CharacterData{
			ID:        c.ID,
			Name:      c.Name,
			Fields:    fields,
			IsChecked: &checked,
		}
	}

	for _, ps := range s.PlanSteps() {
		data.PlanSteps[ps.ID] = PlanStepData{
			ID:          ps.ID,
			Text:        ps.Text,
			FulfilledBy: append([]string{}, ps.FulfilledBy...),
			LinkedStars: append([]string{}, ps.LinkedStars...),
		}
	}

	return data
}

func encodeTab(tab *domain.DraftTab) DraftTabData {
	out := DraftTabData{
		ID:                 tab.ID,
		SceneID:            tab.SceneID(),
		Index:              tab.Index,
		Timeline:           make([]TimelineEventData, 0, len(tab.Timeline)),
		Descriptions:       make([]DescriptionData, 0, len(tab.Descriptions)),
		Summary:            tab.Summary,
		Atmosphere:         tab.Atmosphere,
		FulfilledPlanSteps: append([]string{}, tab.FulfilledPlanSteps...),
		CreatedAt:          tab.CreatedAt.UnixMilli(),
		UpdatedAt:          tab.UpdatedAt.UnixMilli(),
	}
	for _, ev := range tab.Timeline {
		out.Timeline = append(out.Timeline, TimelineEventData{
			ID:              ev.ID,
			Text:            ev.Text,
			Dialogue:        ev.Dialogue,
			AssociatedStars: append([]string{}, ev.AssociatedStars...),
			Checked:         ev.Checked,
		})
	}
	for _, d := range tab.Descriptions {
		out.Descriptions = append(out.Descriptions, DescriptionData{
			ID:            d.ID,
			Text:          d.Text,
			IsImportant:   d.IsImportant,
			OriginStarID:  d.OriginStarID,
			TargetEventID: d.TargetEventID,
			Scope:         string(d.Scope),
		})
	}
	return out
}

func encodeStar(st *domain.Star) StarData {
	out := StarData{
		ID:    st.ID,
		Title: st.Title,
		Body:  st.Body,
		Tags: StarTagsData{
			Characters:        append([]string{}, st.Tags.Characters...),
			Scope:             string(st.Tags.Scope),
			Status:            string(st.Tags.Status),
			Custom:            append([]string{}, st.Tags.Custom...),
			ConstraintContext: append([]string(nil), st.Tags.ConstraintContext...),
		},
		OriginDraftTabID: st.OriginDraftTabID,
		CreatedAt:        st.CreatedAt.UnixMilli(),
	}
	prio := st.Priority
	out.Priority = &prio
	checked := st.IsChecked
	out.IsChecked = &checked
	if st.LastUsedInPrompt != nil {
		ms := st.LastUsedInPrompt.UnixMilli()
		out.LastUsedInPrompt = &ms
	}
	if st.IsConstraint() {
		out.ConstraintType = string(st.Constraint.Type)
		out.AppliesToCharacter = st.Constraint.AppliesToCharacter
		out.SituationContext = st.Constraint.SituationContext
		if src := st.Constraint.SourceEvent; src != nil {
			out.SourceEvent = &SourceEventData{
				TabID:     src.TabID,
				EventID:   src.EventID,
				EventText: src.EventText,
			}
		}
	}
	return out
}

// Restore rebuilds a store from wire data. The data is repaired first, so a
// store restored from any input satisfies the one-location invariant.
// Returns the store and the (possibly defaulted) metadata.
func Restore(data *ProjectData, log *zap.Logger) (*store.Store, Metadata) {
	Repair(data)

	seed := store.Seed{
		WorkbenchTabIDs: data.Workbench.UnassignedDraftTabIDs,
		IdeaBankTabIDs:  data.IdeaBank.StoredDraftTabIDs,
		ActiveSceneID:   data.ActiveSceneID,
	}

	for _, sd := range sortedScenes(data.Scenes) {
		seed.Scenes = append(seed.Scenes, domain.Scene{
			ID:        sd.ID,
			Name:      sd.Name,
			Setting:   sd.Setting,
			Backstory: sd.Backstory,
			Plan: domain.ScenePlan{
				RawText:     sd.Plan.RawText,
				ParsedSteps: sd.Plan.ParsedSteps,
			},
			DraftTabIDs: sd.DraftTabIDs,
			CreatedAt:   time.UnixMilli(sd.CreatedAt).UTC(),
			UpdatedAt:   time.UnixMilli(sd.UpdatedAt).UTC(),
		})
	}

	locations := tabLocations(data)
	for _, td := range sortedTabs(data.DraftTabs) {
		loc := locations[td.ID]
		seed.Tabs = append(seed.Tabs, decodeTab(td, loc.location, loc.index))
	}

	for _, cd := range sortedCharacters(data.Characters) {
		c := domain.Character{
			ID:        cd.ID,
			Name:      cd.Name,
			Fields:    cd.Fields,
			IsChecked: domain.BoolFromPtrWithDefault(false, cd.IsChecked),
		}
		// Key order is not preserved by JSON objects; fall back to a
		// sorted order so rendering stays deterministic.
		for _, k := range sortedKeys(cd.Fields) {
			c.FieldOrder = append(c.FieldOrder, k)
		}
		seed.Characters = append(seed.Characters, c)
	}

	for _, sd := range sortedStars(data.Stars) {
		seed.Stars = append(seed.Stars, decodeStar(sd))
	}

	for _, pd := range sortedPlanSteps(data.PlanSteps) {
		seed.PlanSteps = append(seed.PlanSteps, domain.PlanStep{
			ID:          pd.ID,
			Text:        pd.Text,
			FulfilledBy: pd.FulfilledBy,
			LinkedStars: pd.LinkedStars,
		})
	}

	return store.NewFromSeed(seed, log), data.Metadata
}

type tabPlacement struct {
	location domain.Location
	index    int
}

// tabLocations derives each tab's location from container membership. Repair
// has already guaranteed every tab appears in exactly one container.
func tabLocations(data *ProjectData) map[string]tabPlacement {
	out := make(map[string]tabPlacement, len(data.DraftTabs))
	for _, sd := range data.Scenes {
		for i, tabID := range sd.DraftTabIDs {
			out[tabID] = tabPlacement{location: domain.InScene(sd.ID), index: i}
		}
	}
	for i, tabID := range data.Workbench.UnassignedDraftTabIDs {
		out[tabID] = tabPlacement{location: domain.InWorkbench(), index: i}
	}
	for i, tabID := range data.IdeaBank.StoredDraftTabIDs {
		out[tabID] = tabPlacement{location: domain.InIdeaBank(), index: i}
	}
	return out
}

func decodeTab(td DraftTabData, loc domain.Location, index int) domain.DraftTab {
	tab := domain.DraftTab{
		ID:                 td.ID,
		Location:           loc,
		Index:              index,
		Summary:            td.Summary,
		Atmosphere:         td.Atmosphere,
		FulfilledPlanSteps: td.FulfilledPlanSteps,
		CreatedAt:          time.UnixMilli(td.CreatedAt).UTC(),
		UpdatedAt:          time.UnixMilli(td.UpdatedAt).UTC(),
	}
	for _, ed := range td.Timeline {
		tab.Timeline = append(tab.Timeline, domain.TimelineEvent{
			ID:              ed.ID,
			Text:            ed.Text,
			Dialogue:        ed.Dialogue,
			AssociatedStars: ed.AssociatedStars,
			Checked:         ed.Checked,
		})
	}
	for _, dd := range td.Descriptions {
		tab.Descriptions = append(tab.Descriptions, domain.Description{
			ID:            dd.ID,
			Text:          dd.Text,
			IsImportant:   dd.IsImportant,
			Scope:         domain.DescriptionScope(dd.Scope),
			TargetEventID: dd.TargetEventID,
			OriginStarID:  dd.OriginStarID,
		})
	}
	return tab
}

func decodeStar(sd StarData) domain.Star {
	st := domain.Star{
		ID:    sd.ID,
		Kind:  domain.StarFact,
		Title: sd.Title,
		Body:  sd.Body,
		Tags: domain.StarTags{
			Characters:        sd.Tags.Characters,
			Scope:             domain.StarScope(sd.Tags.Scope),
			Status:            domain.StarStatus(sd.Tags.Status),
			Custom:            sd.Tags.Custom,
			ConstraintContext: sd.Tags.ConstraintContext,
		},
		Priority:         domain.Float64FromPtrWithDefault(defaultStarPriority, sd.Priority),
		IsChecked:        domain.BoolFromPtrWithDefault(false, sd.IsChecked),
		OriginDraftTabID: sd.OriginDraftTabID,
		CreatedAt:        time.UnixMilli(sd.CreatedAt).UTC(),
	}
	if sd.LastUsedInPrompt != nil {
		t := time.UnixMilli(*sd.LastUsedInPrompt).UTC()
		st.LastUsedInPrompt = &t
	}
	if sd.ConstraintType != "" {
		st.Kind = domain.StarCharacterConstraint
		st.Constraint = &domain.ConstraintDetail{
			Type:               domain.ConstraintType(sd.ConstraintType),
			AppliesToCharacter: sd.AppliesToCharacter,
			SituationContext:   sd.SituationContext,
		}
		if sd.SourceEvent != nil {
			st.Constraint.SourceEvent = &domain.SourceEventRef{
				TabID:     sd.SourceEvent.TabID,
				EventID:   sd.SourceEvent.EventID,
				EventText: sd.SourceEvent.EventText,
			}
		}
	}
	return st
}

// sortedScenes and friends impose a stable load order on JSON maps:
// creation time first, id as tie-break.

func sortedScenes(m map[string]SceneData) []SceneData {
	out := make([]SceneData, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedTabs(m map[string]DraftTabData) []DraftTabData {
	out := make([]DraftTabData, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedStars(m map[string]StarData) []StarData {
	out := make([]StarData, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedCharacters(m map[string]CharacterData) []CharacterData {
	out := make([]CharacterData, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedPlanSteps(m map[string]PlanStepData) []PlanStepData {
	out := make([]PlanStepData, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
