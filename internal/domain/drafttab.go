package domain

import "time"

// DraftTab is a unit of authored narrative content: a timeline of events plus
// free-floating annotations. A tab lives in exactly one of a scene, the
// workbench, or the idea bank; Location mirrors that membership.
type DraftTab struct {
	ID                 string
	Location           Location
	Index              int // position within the current container
	Timeline           []TimelineEvent
	Descriptions       []Description
	Summary            string   // LLM-authored
	Atmosphere         string   // LLM-authored
	FulfilledPlanSteps []string // PlanStep IDs
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SceneID returns the owning scene's id, or "" when the tab is in the
// workbench or idea bank.
func (t *DraftTab) SceneID() string {
	if t.Location.Kind == LocationScene {
		return t.Location.SceneID
	}
	return ""
}

// FindEvent returns the timeline event with the given id, or nil.
func (t *DraftTab) FindEvent(eventID string) *TimelineEvent {
	for i := range t.Timeline {
		if t.Timeline[i].ID == eventID {
			return &t.Timeline[i]
		}
	}
	return nil
}

// TimelineEvent is a single beat within a draft tab's timeline.
// Checked marks the event for inclusion in the next LLM context; it is only
// meaningful for events in workbench-located tabs.
type TimelineEvent struct {
	ID              string
	Text            string
	Dialogue        string
	AssociatedStars []string // Star IDs
	Checked         bool
}

// Description is a free-floating annotation on a draft tab, optionally
// targeting one of its events.
type Description struct {
	ID            string
	Text          string
	IsImportant   bool
	Scope         DescriptionScope
	TargetEventID string // required when Scope is DescScopeEvent
	OriginStarID  string
}
