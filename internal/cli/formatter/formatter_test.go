package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spica/internal/domain"
)

func TestTruncID(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", TruncID("a1b2c3d4-0000-0000-0000-000000000000"))
	assert.Equal(t, "short", TruncID("short"))
	assert.Equal(t, "abcdefgh", TruncID("abcdefghijklmnop"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hell…", Truncate("hello world", 5))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{{"a1", "The Night Market"}, {"b2", "x"}},
	)

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "The Night Market")
	assert.Contains(t, out, "─")
}

func TestFormatTabInspect_ShowsTimelineAndDialogue(t *testing.T) {
	tab := &domain.DraftTab{
		ID:       "tab-1",
		Location: domain.InWorkbench(),
		Timeline: []domain.TimelineEvent{
			{ID: "ev-1", Text: "Mira enters the stall", Dialogue: "Anyone here?", Checked: true},
		},
		Summary: "Mira arrives",
	}

	out := FormatTabInspect(tab)

	assert.Contains(t, out, "Mira enters the stall")
	assert.Contains(t, out, "Anyone here?")
	assert.Contains(t, out, "Mira arrives")
}

func TestFormatStarList_ResolvesConstraintCharacter(t *testing.T) {
	stars := []*domain.Star{
		{
			ID:       "star-1",
			Kind:     domain.StarCharacterConstraint,
			Title:    "never lies",
			Priority: 0.8,
			Constraint: &domain.ConstraintDetail{
				Type:               domain.ConstraintDialogue,
				AppliesToCharacter: "char-1",
			},
		},
		{
			ID:       "star-2",
			Kind:     domain.StarCharacterConstraint,
			Title:    "fears water",
			Priority: 0.8,
			Constraint: &domain.ConstraintDetail{
				Type:               domain.ConstraintBehavior,
				AppliesToCharacter: "missing",
			},
		},
	}

	out := FormatStarList(stars, map[string]string{"char-1": "Mira"})

	assert.Contains(t, out, "Mira: never lies")
	assert.Contains(t, out, "Unknown Character: fears water")
}

func TestFormatPromptHistory(t *testing.T) {
	out := FormatPromptHistory([]*domain.PromptRecord{
		{
			ID:        "p1",
			Task:      "scene_timeline",
			Model:     "llama3.2",
			Success:   true,
			LatencyMs: 420,
			UserInput: "continue the chase",
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	})

	assert.Contains(t, out, "scene_timeline")
	assert.Contains(t, out, "420ms")
	assert.Contains(t, out, "continue the chase")
}
