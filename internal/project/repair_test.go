package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair_FillsDefaults(t *testing.T) {
	data := &ProjectData{}

	Repair(data)

	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, "Untitled Project", data.Metadata.Title)
	assert.NotZero(t, data.Metadata.CreatedAt)
	assert.NotNil(t, data.DraftTabs)
	assert.NotNil(t, data.Workbench.UnassignedDraftTabIDs)

	// With no scenes at all, a Main Scene is synthesized and activated.
	require.Len(t, data.Scenes, 1)
	for id, sc := range data.Scenes {
		assert.Equal(t, "Main Scene", sc.Name)
		assert.Equal(t, id, data.ActiveSceneID)
	}
}

func TestRepair_PrunesDanglingAndDuplicateTabRefs(t *testing.T) {
	data := NewEmptyProject("P", "")
	data.DraftTabs["tab-1"] = DraftTabData{ID: "tab-1", CreatedAt: 10}

	var sceneID string
	for id := range data.Scenes {
		sceneID = id
	}
	sc := data.Scenes[sceneID]
	sc.DraftTabIDs = []string{"tab-1", "ghost"}
	data.Scenes[sceneID] = sc
	// Same tab also claimed by the workbench and idea bank.
	data.Workbench.UnassignedDraftTabIDs = []string{"tab-1", "gone"}
	data.IdeaBank.StoredDraftTabIDs = []string{"tab-1"}

	Repair(data)

	assert.Equal(t, []string{"tab-1"}, data.Scenes[sceneID].DraftTabIDs)
	assert.Empty(t, data.Workbench.UnassignedDraftTabIDs)
	assert.Empty(t, data.IdeaBank.StoredDraftTabIDs)
}

func TestRepair_PlacesUnassignedTabsInWorkbench(t *testing.T) {
	data := NewEmptyProject("P", "")
	data.DraftTabs["tab-b"] = DraftTabData{ID: "tab-b", CreatedAt: 20}
	data.DraftTabs["tab-a"] = DraftTabData{ID: "tab-a", CreatedAt: 10}

	Repair(data)

	// Strays land in the workbench, oldest first.
	assert.Equal(t, []string{"tab-a", "tab-b"}, data.Workbench.UnassignedDraftTabIDs)
}

func TestRepair_DemotesInvalidConstraint(t *testing.T) {
	data := NewEmptyProject("P", "")
	data.Stars["s1"] = StarData{
		ID:                 "s1",
		Title:              "odd",
		ConstraintType:     "character_mood",
		AppliesToCharacter: "c1",
		SituationContext:   "always",
	}
	data.Stars["s2"] = StarData{
		ID:               "s2",
		Title:            "orphaned origin",
		OriginDraftTabID: "gone",
	}

	Repair(data)

	assert.Empty(t, data.Stars["s1"].ConstraintType)
	assert.Empty(t, data.Stars["s1"].AppliesToCharacter)
	assert.Empty(t, data.Stars["s2"].OriginDraftTabID)
}

func TestRepair_DefaultsOptionalWireFields(t *testing.T) {
	data := NewEmptyProject("P", "")
	data.Stars["s1"] = StarData{ID: "s1", Title: "bare"}
	data.Characters["c1"] = CharacterData{ID: "c1", Name: "Mira"}

	Repair(data)

	st := data.Stars["s1"]
	require.NotNil(t, st.Priority)
	assert.Equal(t, 0.5, *st.Priority)
	require.NotNil(t, st.IsChecked)
	assert.False(t, *st.IsChecked)

	ch := data.Characters["c1"]
	require.NotNil(t, ch.IsChecked)
	assert.False(t, *ch.IsChecked)
	assert.NotNil(t, ch.Fields)

	// Explicit values survive untouched.
	prio := 0.9
	checked := true
	data.Stars["s2"] = StarData{ID: "s2", Priority: &prio, IsChecked: &checked}
	Repair(data)
	assert.Equal(t, 0.9, *data.Stars["s2"].Priority)
	assert.True(t, *data.Stars["s2"].IsChecked)
}

func TestRepair_DescriptionScopeDefault(t *testing.T) {
	data := NewEmptyProject("P", "")
	data.DraftTabs["t1"] = DraftTabData{
		ID: "t1",
		Descriptions: []DescriptionData{
			{ID: "d1", Text: "x", TargetEventID: "ev"},
			{ID: "d2", Text: "y"},
		},
	}

	Repair(data)

	descs := data.DraftTabs["t1"].Descriptions
	assert.Equal(t, "event", descs[0].Scope)
	assert.Equal(t, "tab", descs[1].Scope)
}

func TestRepair_ReassignsActiveScene(t *testing.T) {
	data := NewEmptyProject("P", "")
	data.ActiveSceneID = "ghost"

	Repair(data)

	_, ok := data.Scenes[data.ActiveSceneID]
	assert.True(t, ok)
}
