package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spica/internal/project"
	"spica/internal/service"
	"spica/internal/store"
)

func newTestApp() *App {
	return &App{
		Store: store.New(zap.NewNop()),
		Meta:  project.Metadata{Title: "Test Project"},
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestSceneAddAndActivate(t *testing.T) {
	app := newTestApp()

	out, err := execute(t, app, "scene", "add", "Night Market", "--activate")
	require.NoError(t, err)
	assert.Contains(t, out, "Created scene")

	scenes := app.Store.Scenes()
	require.Len(t, scenes, 1)
	assert.Equal(t, scenes[0].ID, app.Store.ActiveSceneID())

	out, err = execute(t, app, "scene", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Night Market")
}

func TestSceneResolveByName(t *testing.T) {
	app := newTestApp()
	app.Store.CreateScene("Night Market")

	_, err := execute(t, app, "scene", "activate", "night market")
	require.NoError(t, err)
	assert.NotEmpty(t, app.Store.ActiveSceneID())
}

func TestTabMoveBetweenLocations(t *testing.T) {
	app := newTestApp()
	sceneID := app.Store.CreateScene("Opening")
	tabID := app.Store.CreateDraftTab()

	_, err := execute(t, app, "tab", "move", tabID, "--scene", sceneID)
	require.NoError(t, err)
	tab, err := app.Store.DraftTab(tabID)
	require.NoError(t, err)
	assert.Equal(t, sceneID, tab.SceneID())

	_, err = execute(t, app, "tab", "move", tabID, "--idea-bank")
	require.NoError(t, err)
	assert.Equal(t, []string{tabID}, app.Store.IdeaBankTabIDs())

	_, err = execute(t, app, "tab", "move", tabID)
	assert.Error(t, err)
}

func TestEventAddAndCheck(t *testing.T) {
	app := newTestApp()
	tabID := app.Store.CreateDraftTab()

	out, err := execute(t, app, "event", "add", tabID, "Mira enters", "--dialogue", "Hello?")
	require.NoError(t, err)
	assert.Contains(t, out, "Created event")

	tab, err := app.Store.DraftTab(tabID)
	require.NoError(t, err)
	require.Len(t, tab.Timeline, 1)
	eventID := tab.Timeline[0].ID

	_, err = execute(t, app, "event", "check", tabID, eventID)
	require.NoError(t, err)
	tab, _ = app.Store.DraftTab(tabID)
	assert.True(t, tab.Timeline[0].Checked)
}

func TestCharacterAddWithFields(t *testing.T) {
	app := newTestApp()

	_, err := execute(t, app, "character", "add", "Mira",
		"--field", "role=protagonist", "--field", "age=27")
	require.NoError(t, err)

	chars := app.Store.Characters()
	require.Len(t, chars, 1)
	assert.Equal(t, "protagonist", chars[0].Fields["role"])
	assert.Equal(t, []string{"role", "age"}, chars[0].FieldOrder)

	_, err = execute(t, app, "character", "add", "Bad", "--field", "nokey")
	assert.Error(t, err)
}

func TestStarAddAndCheckedList(t *testing.T) {
	app := newTestApp()

	_, err := execute(t, app, "star", "add", "The amulet is cursed",
		"--body", "Touching it drains warmth", "--priority", "0.9", "--checked")
	require.NoError(t, err)
	_, err = execute(t, app, "star", "add", "Rain all week")
	require.NoError(t, err)

	out, err := execute(t, app, "star", "list", "--checked")
	require.NoError(t, err)
	assert.Contains(t, out, "The amulet is cursed")
	assert.NotContains(t, out, "Rain all week")
}

func TestConstraintAddRejectsUnknownType(t *testing.T) {
	app := newTestApp()
	tabID := app.Store.CreateDraftTab()
	eventID, err := app.Store.AddTimelineEvent(tabID, "Mira snaps at the vendor", "", false)
	require.NoError(t, err)
	charID := app.Store.CreateCharacter("Mira", nil)

	_, err = execute(t, app, "constraint", "add", tabID, eventID, charID,
		"--type", "character_mood", "--description", "never backs down")
	assert.Error(t, err)

	_, err = execute(t, app, "constraint", "add", tabID, eventID, charID,
		"--type", "character_behavior", "--title", "stubborn", "--description", "never backs down")
	require.NoError(t, err)
	require.Len(t, app.Store.Stars(), 1)
	assert.True(t, app.Store.Stars()[0].IsConstraint())
}

func TestResolveAmbiguousPrefix(t *testing.T) {
	_, err := resolveID("star", "ab", []string{"abc-1", "abd-2"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	id, err := resolveID("star", "abc", []string{"abc-1", "abd-2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc-1", id)
}

func TestCheckCommandReportsClean(t *testing.T) {
	app := newTestApp()
	app.Store.CreateDraftTab()

	out, err := execute(t, app, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "exactly one location")
}

type stubGeneration struct {
	preview string
	called  bool
}

func (s *stubGeneration) GenerateTimeline(ctx context.Context, userInput string) (*service.TimelineResult, error) {
	s.called = true
	return &service.TimelineResult{}, nil
}

func (s *stubGeneration) DescribeEvent(ctx context.Context, tabID, eventID, userInput string) (*service.DescriptionResult, error) {
	return &service.DescriptionResult{Text: "stub"}, nil
}

func (s *stubGeneration) PreviewContext() (string, error) { return s.preview, nil }
func (s *stubGeneration) InFlight() bool                  { return false }

func TestGenerateRequiresService(t *testing.T) {
	app := newTestApp()

	_, err := execute(t, app, "generate", "continue the chase")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "disabled")
}

func TestContextPreview(t *testing.T) {
	app := newTestApp()
	gen := &stubGeneration{preview: "### SCENE: Night Market"}
	app.Gen = gen

	out, err := execute(t, app, "context")
	require.NoError(t, err)
	assert.Contains(t, out, "### SCENE: Night Market")
}

func TestGenerateJoinsArgs(t *testing.T) {
	app := newTestApp()
	gen := &stubGeneration{}
	app.Gen = gen

	_, err := execute(t, app, "generate", "continue", "the", "chase")
	require.NoError(t, err)
	assert.True(t, gen.called)
}

func TestStarLinkToPlanStep(t *testing.T) {
	app := newTestApp()
	sceneID := app.Store.CreateScene("Opening")
	stepID, err := app.Store.CreatePlanStep(sceneID, "introduce the stranger")
	require.NoError(t, err)
	starID := app.Store.CreateStar(store.StarInput{Title: "The stranger limps"})

	_, err = execute(t, app, "star", "link-step", starID, stepID)
	require.NoError(t, err)

	step, err := app.Store.PlanStep(stepID)
	require.NoError(t, err)
	assert.Equal(t, []string{starID}, step.LinkedStars)

	// Linking twice keeps a single entry.
	_, err = execute(t, app, "star", "link-step", starID, stepID)
	require.NoError(t, err)
	step, _ = app.Store.PlanStep(stepID)
	assert.Equal(t, []string{starID}, step.LinkedStars)

	_, err = execute(t, app, "star", "link-step", starID, "ghost")
	assert.Error(t, err)
}

func TestEventAnnotateAndRemove(t *testing.T) {
	app := newTestApp()
	tabID := app.Store.CreateDraftTab()
	eventID, err := app.Store.AddTimelineEvent(tabID, "Mira drops the lantern", "", false)
	require.NoError(t, err)

	_, err = execute(t, app, "event", "annotate", tabID, eventID, "glass everywhere")
	require.NoError(t, err)

	tab, err := app.Store.DraftTab(tabID)
	require.NoError(t, err)
	require.Len(t, tab.Descriptions, 1)
	descID := tab.Descriptions[0].ID

	_, err = execute(t, app, "event", "annotate-rm", tabID, descID)
	require.NoError(t, err)
	tab, _ = app.Store.DraftTab(tabID)
	assert.Empty(t, tab.Descriptions)

	_, err = execute(t, app, "event", "annotate-rm", tabID, descID)
	assert.Error(t, err)
}
