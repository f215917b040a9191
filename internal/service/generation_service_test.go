package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spica/internal/domain"
	"spica/internal/intelligence"
	"spica/internal/llm"
	"spica/internal/store"
)

// stubClient returns canned responses and can block to simulate a slow model.
type stubClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	gate      chan struct{} // when non-nil, Generate blocks until closed
	lastReq   llm.GenerateRequest
}

func (c *stubClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	c.calls++
	c.lastReq = req
	gate := c.gate
	var text string
	if len(c.responses) > 0 {
		text = c.responses[0]
		if len(c.responses) > 1 {
			c.responses = c.responses[1:]
		}
	}
	err := c.err
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Text: text, Model: "stub", LatencyMs: 1}, nil
}

func (c *stubClient) Available(ctx context.Context) bool { return true }

func newStoryStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	s := store.New(nil)
	sceneID := s.CreateScene("Night Market")
	require.NoError(t, s.SetSceneSetting(sceneID, "A lantern-lit market at closing time"))
	require.NoError(t, s.SetActiveScene(sceneID))
	return s, sceneID
}

func newService(s *store.Store, client llm.Client) GenerationService {
	return NewGenerationService(s, client, llm.DefaultConfig(), nil, nil)
}

func TestGenerateTimeline_AppliesTabsToWorkbench(t *testing.T) {
	s, _ := newStoryStore(t)
	client := &stubClient{responses: []string{
		"Mira counts the till.\nA stranger lingers by the spice stall. \"We're closed.\"\n|Mira closes the market while a stranger lingers|Lantern light, end-of-day quiet|",
	}}
	svc := newService(s, client)

	result, err := svc.GenerateTimeline(context.Background(), "Close out the market day")
	require.NoError(t, err)
	require.Len(t, result.TabIDs, 1)

	tab, err := s.DraftTab(result.TabIDs[0])
	require.NoError(t, err)
	assert.Equal(t, domain.LocationWorkbench, tab.Location.Kind)
	require.Len(t, tab.Timeline, 2)
	assert.Equal(t, "Mira counts the till.", tab.Timeline[0].Text)
	assert.True(t, tab.Timeline[0].Checked)
	assert.Equal(t, "A stranger lingers by the spice stall.", tab.Timeline[1].Text)
	assert.Equal(t, "We're closed.", tab.Timeline[1].Dialogue)
	assert.Equal(t, "Mira closes the market while a stranger lingers", tab.Summary)
	assert.Equal(t, "Lantern light, end-of-day quiet", tab.Atmosphere)
}

func TestGenerateTimeline_JSONReply(t *testing.T) {
	s, _ := newStoryStore(t)
	client := &stubClient{responses: []string{
		`{"tabs":[
			{"title":"Opening","summary":"The market opens","timeline":[
				{"text":"The gate creaks open."},
				{"text":"Vendors roll back their awnings."},
				{"text":"Mira arrives.","dialogue":"Morning."}]},
			{"title":"First customer","timeline":[
				{"text":"A courier pushes to the front."},
				{"text":"Mira waves him through.","dialogue":"Go on, then."},
				{"text":"The queue settles."}]}]}`,
	}}
	svc := newService(s, client)

	result, err := svc.GenerateTimeline(context.Background(), "start the day")
	require.NoError(t, err)
	require.Len(t, result.TabIDs, 2)
	assert.Equal(t, result.TabIDs, s.WorkbenchTabIDs())

	for i, tabID := range result.TabIDs {
		tab, err := s.DraftTab(tabID)
		require.NoError(t, err)
		require.Len(t, tab.Timeline, 3, "tab %d", i)
	}
	first, _ := s.DraftTab(result.TabIDs[0])
	assert.Equal(t, "The market opens", first.Summary)
	second, _ := s.DraftTab(result.TabIDs[1])
	assert.Equal(t, "Go on, then.", second.Timeline[1].Dialogue)
}

func TestGenerateTimeline_ProviderErrorAppliesNothing(t *testing.T) {
	s, _ := newStoryStore(t)
	client := &stubClient{responses: []string{
		`{"error":true,"message":"Failed to process prompt: model missing","code":"LLM_ERROR"}`,
	}}
	svc := newService(s, client)

	_, err := svc.GenerateTimeline(context.Background(), "anything")
	require.Error(t, err)

	var perr *intelligence.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "LLM_ERROR", perr.Code)
	assert.Empty(t, s.WorkbenchTabIDs())
}

func TestGenerateTimeline_InvalidReplyAppliesNothing(t *testing.T) {
	s, _ := newStoryStore(t)
	client := &stubClient{responses: []string{
		`{"tabs":[{"title":"Bad","timeline":[{"text":"ok"},{"text":"   "}]}]}`,
	}}
	svc := newService(s, client)

	_, err := svc.GenerateTimeline(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Empty(t, s.WorkbenchTabIDs())
	assert.Empty(t, s.DraftTabs())
}

func TestGenerateTimeline_SecondCallWhileInFlight(t *testing.T) {
	s, _ := newStoryStore(t)
	gate := make(chan struct{})
	client := &stubClient{responses: []string{"An event happens."}, gate: gate}
	svc := newService(s, client)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := svc.GenerateTimeline(context.Background(), "slow request")
		done <- err
	}()
	<-started
	for !svc.InFlight() {
		time.Sleep(time.Millisecond)
	}

	_, err := svc.GenerateTimeline(context.Background(), "second request")
	assert.ErrorIs(t, err, ErrGenerationInFlight)

	close(gate)
	require.NoError(t, <-done)

	// Flag clears once the first call finishes.
	assert.False(t, svc.InFlight())
}

func TestGenerateTimeline_NoActiveScene(t *testing.T) {
	s := store.New(nil)
	svc := newService(s, &stubClient{responses: []string{"x"}})

	_, err := svc.GenerateTimeline(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoActiveScene)
}

func TestGenerateTimeline_Disabled(t *testing.T) {
	s, _ := newStoryStore(t)
	cfg := llm.DefaultConfig()
	cfg.Enabled = false
	svc := NewGenerationService(s, &stubClient{}, cfg, nil, nil)

	_, err := svc.GenerateTimeline(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrLLMDisabled)
}

func TestGenerateTimeline_StampsUsedStars(t *testing.T) {
	s, _ := newStoryStore(t)
	starID := s.CreateStar(store.StarInput{Title: "The ledger is forged", Body: "Totals never match", Priority: 0.9})
	require.NoError(t, s.SetStarChecked(starID, true))
	uncheckedID := s.CreateStar(store.StarInput{Title: "Unused", Body: "Not in context"})

	client := &stubClient{responses: []string{"Something happens."}}
	svc := newService(s, client)

	_, err := svc.GenerateTimeline(context.Background(), "go")
	require.NoError(t, err)

	used, err := s.Star(starID)
	require.NoError(t, err)
	assert.NotNil(t, used.LastUsedInPrompt)

	unused, err := s.Star(uncheckedID)
	require.NoError(t, err)
	assert.Nil(t, unused.LastUsedInPrompt)
}

func TestGenerateTimeline_ClientErrorPropagates(t *testing.T) {
	s, _ := newStoryStore(t)
	client := &stubClient{err: llm.ErrProviderUnavailable}
	svc := newService(s, client)

	_, err := svc.GenerateTimeline(context.Background(), "anything")
	assert.ErrorIs(t, err, llm.ErrProviderUnavailable)
	assert.False(t, svc.InFlight())
}

func TestDescribeEvent_AttachesDescription(t *testing.T) {
	s, _ := newStoryStore(t)
	tabID := s.CreateDraftTab()
	evID, err := s.AddTimelineEvent(tabID, "Mira drops the lantern", `Careful, that's "borrowed"!`, true)
	require.NoError(t, err)

	client := &stubClient{responses: []string{"Glass scatters across the cobblestones."}}
	svc := newService(s, client)

	result, err := svc.DescribeEvent(context.Background(), tabID, evID, "focus on the sound")
	require.NoError(t, err)
	assert.Equal(t, "Glass scatters across the cobblestones.", result.Text)

	tab, err := s.DraftTab(tabID)
	require.NoError(t, err)
	require.Len(t, tab.Descriptions, 1)
	assert.Equal(t, result.DescriptionID, tab.Descriptions[0].ID)
	assert.Equal(t, domain.DescScopeEvent, tab.Descriptions[0].Scope)
	assert.Equal(t, evID, tab.Descriptions[0].TargetEventID)

	// Target event with dialogue lands in the user prompt, quotes unescaped.
	assert.Contains(t, client.lastReq.UserPrompt, `Mira drops the lantern -> "Careful, that's "borrowed"!"`)
}

func TestDescribeEvent_UnknownEvent(t *testing.T) {
	s, _ := newStoryStore(t)
	tabID := s.CreateDraftTab()

	svc := newService(s, &stubClient{responses: []string{"x"}})
	_, err := svc.DescribeEvent(context.Background(), tabID, "missing", "anything")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPreviewContext_MatchesBuilder(t *testing.T) {
	s, sceneID := newStoryStore(t)
	tabID := s.CreateDraftTab()
	require.NoError(t, s.MoveToScene(tabID, sceneID))
	_, err := s.AddTimelineEvent(tabID, "The stalls empty out", "", true)
	require.NoError(t, err)

	svc := newService(s, &stubClient{})
	preview, err := svc.PreviewContext()
	require.NoError(t, err)
	assert.Contains(t, preview, "### SCENE: Night Market")
	assert.Contains(t, preview, "- The stalls empty out")
}

func TestGenerateTimeline_HistoryRecorded(t *testing.T) {
	s, _ := newStoryStore(t)
	history := &memoryPromptLog{}
	client := &stubClient{responses: []string{"Something happens."}}
	svc := NewGenerationService(s, client, llm.DefaultConfig(), history, nil)

	_, err := svc.GenerateTimeline(context.Background(), "make something happen")
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, string(llm.TaskSceneTimeline), rec.Task)
	assert.Equal(t, "make something happen", rec.UserInput)
	assert.True(t, rec.Success)
}

type memoryPromptLog struct {
	records []*domain.PromptRecord
}

func (m *memoryPromptLog) Create(ctx context.Context, r *domain.PromptRecord) error {
	m.records = append(m.records, r)
	return nil
}

func (m *memoryPromptLog) GetByID(ctx context.Context, id string) (*domain.PromptRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memoryPromptLog) ListRecent(ctx context.Context, limit int) ([]*domain.PromptRecord, error) {
	out := append([]*domain.PromptRecord(nil), m.records...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryPromptLog) CountByTask(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, r := range m.records {
		counts[r.Task]++
	}
	return counts, nil
}
