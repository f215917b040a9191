package project

// Wire types for the on-disk project format. Field names and shapes are
// stable across versions; timestamps are Unix milliseconds.

const FormatVersion = "1.0"

type ProjectData struct {
	Version       string                   `json:"version"`
	Metadata      Metadata                 `json:"metadata"`
	Scenes        map[string]SceneData     `json:"scenes"`
	DraftTabs     map[string]DraftTabData  `json:"draft_tabs"`
	Workbench     WorkbenchData            `json:"workbench"`
	Stars         map[string]StarData      `json:"stars"`
	Characters    map[string]CharacterData `json:"characters"`
	PlanSteps     map[string]PlanStepData  `json:"plan_steps"`
	IdeaBank      IdeaBankData             `json:"idea_bank"`
	ActiveSceneID string                   `json:"active_scene_id,omitempty"`
}

type Metadata struct {
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type WorkbenchData struct {
	UnassignedDraftTabIDs []string `json:"unassigned_draft_tab_ids"`
}

type IdeaBankData struct {
	StoredDraftTabIDs []string `json:"stored_draft_tab_ids"`
}

type SceneData struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Setting     string        `json:"setting,omitempty"`
	Backstory   string        `json:"backstory,omitempty"`
	Plan        ScenePlanData `json:"plan"`
	DraftTabIDs []string      `json:"draft_tab_ids"`
	CreatedAt   int64         `json:"created_at"`
	UpdatedAt   int64         `json:"updated_at"`
}

type ScenePlanData struct {
	RawText     string   `json:"raw_text"`
	ParsedSteps []string `json:"parsed_steps"`
}

type DraftTabData struct {
	ID                 string              `json:"id"`
	SceneID            string              `json:"scene_id,omitempty"`
	Index              int                 `json:"index"`
	Timeline           []TimelineEventData `json:"timeline"`
	Descriptions       []DescriptionData   `json:"descriptions"`
	Summary            string              `json:"summary,omitempty"`
	Atmosphere         string              `json:"atmosphere,omitempty"`
	FulfilledPlanSteps []string            `json:"fulfilled_plan_steps"`
	CreatedAt          int64               `json:"created_at"`
	UpdatedAt          int64               `json:"updated_at"`
}

type TimelineEventData struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Dialogue        string   `json:"dialogue,omitempty"`
	AssociatedStars []string `json:"associated_stars"`
	Checked         bool     `json:"checked"`
}

type DescriptionData struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	IsImportant   bool   `json:"is_important"`
	OriginStarID  string `json:"origin_star_id,omitempty"`
	TargetEventID string `json:"target_event_id,omitempty"`
	Scope         string `json:"scope"`
}

type StarData struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Body  string       `json:"body"`
	Tags  StarTagsData `json:"tags"`
	// Pointer-typed so Repair can tell an absent field from an explicit
	// zero and apply the domain default instead.
	Priority         *float64 `json:"priority"`
	IsChecked        *bool    `json:"is_checked"`
	OriginDraftTabID string   `json:"origin_draft_tab_id,omitempty"`
	CreatedAt        int64    `json:"created_at"`
	LastUsedInPrompt *int64   `json:"last_used_in_prompt,omitempty"`

	// Present only for character constraint stars.
	ConstraintType     string           `json:"constraint_type,omitempty"`
	AppliesToCharacter string           `json:"applies_to_character,omitempty"`
	SituationContext   string           `json:"situation_context,omitempty"`
	SourceEvent        *SourceEventData `json:"source_event,omitempty"`
}

type StarTagsData struct {
	Characters        []string `json:"characters"`
	Scope             string   `json:"scope"`
	Status            string   `json:"status"`
	Custom            []string `json:"custom"`
	ConstraintContext []string `json:"constraint_context,omitempty"`
}

type SourceEventData struct {
	TabID     string `json:"tab_id"`
	EventID   string `json:"event_id"`
	EventText string `json:"event_text"`
}

type CharacterData struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Fields    map[string]string `json:"fields"`
	IsChecked *bool             `json:"is_checked"`
}

type PlanStepData struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	FulfilledBy []string `json:"fulfilled_by"`
	LinkedStars []string `json:"linked_stars"`
}
