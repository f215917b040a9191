package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spica/internal/domain"
	"spica/internal/intelligence"
	"spica/internal/llm"
	"spica/internal/repository"
	"spica/internal/store"
)

type generationService struct {
	store   *store.Store
	client  llm.Client
	cfg     llm.Config
	history repository.PromptLogRepo // nil disables history logging
	log     *zap.Logger

	inFlight atomic.Bool
}

// NewGenerationService wires the generation pipeline. history may be nil;
// a nil logger is replaced with zap.NewNop().
func NewGenerationService(s *store.Store, client llm.Client, cfg llm.Config, history repository.PromptLogRepo, log *zap.Logger) GenerationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &generationService{
		store:   s,
		client:  client,
		cfg:     cfg,
		history: history,
		log:     log,
	}
}

func (g *generationService) InFlight() bool {
	return g.inFlight.Load()
}

func (g *generationService) GenerateTimeline(ctx context.Context, userInput string) (*TimelineResult, error) {
	if !g.cfg.Enabled {
		return nil, ErrLLMDisabled
	}
	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer g.inFlight.Store(false)

	// Deep-copied snapshot: edits made while the call is running cannot
	// leak into the prompt or into the stamping pass below.
	params, err := g.snapshotParams()
	if err != nil {
		return nil, err
	}
	contextText := intelligence.BuildContext(*params)

	prompt, err := intelligence.AssemblePrompt(intelligence.PromptSceneTimeline, intelligence.AssembleInput{
		UserInput: userInput,
		Context:   contextText,
	})
	if err != nil {
		return nil, err
	}

	resp, err := g.generate(ctx, llm.TaskSceneTimeline, prompt, userInput)
	if err != nil {
		return nil, err
	}

	reply, err := intelligence.DecodeTimelineReply(resp.Text)
	if err != nil {
		return nil, err
	}
	if err := validateTimelineReply(reply); err != nil {
		return nil, err
	}

	result := &TimelineResult{Reply: reply}
	for _, tab := range reply.Tabs {
		tabID := g.store.CreateDraftTab()
		for _, ev := range tab.Timeline {
			// Generated events arrive checked so the next prompt sees them.
			if _, err := g.store.AddTimelineEvent(tabID, ev.Text, ev.Dialogue, true); err != nil {
				return nil, err
			}
		}
		if tab.Summary != "" {
			if err := g.store.SetTabSummary(tabID, tab.Summary); err != nil {
				return nil, err
			}
		}
		if tab.Atmosphere != "" {
			if err := g.store.SetTabAtmosphere(tabID, tab.Atmosphere); err != nil {
				return nil, err
			}
		}
		result.TabIDs = append(result.TabIDs, tabID)
	}

	g.stampUsedStars(params.CheckedStars)

	g.log.Info("timeline generated",
		zap.Int("tabs", len(result.TabIDs)),
		zap.Int64("latencyMs", resp.LatencyMs))
	return result, nil
}

func (g *generationService) DescribeEvent(ctx context.Context, tabID, eventID, userInput string) (*DescriptionResult, error) {
	if !g.cfg.Enabled {
		return nil, ErrLLMDisabled
	}
	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer g.inFlight.Store(false)

	tab, err := g.store.DraftTab(tabID)
	if err != nil {
		return nil, err
	}
	ev := tab.FindEvent(eventID)
	if ev == nil {
		return nil, fmt.Errorf("timeline event %s: %w", eventID, store.ErrNotFound)
	}
	target := ev.Text
	if ev.Dialogue != "" {
		target = fmt.Sprintf("%s -> \"%s\"", ev.Text, ev.Dialogue)
	}

	params, err := g.snapshotParams()
	if err != nil {
		return nil, err
	}
	contextText := intelligence.BuildContext(*params)

	prompt, err := intelligence.AssemblePrompt(intelligence.PromptEventDescription, intelligence.AssembleInput{
		UserInput:   userInput,
		Context:     contextText,
		TargetEvent: target,
	})
	if err != nil {
		return nil, err
	}

	resp, err := g.generate(ctx, llm.TaskEventDescription, prompt, userInput)
	if err != nil {
		return nil, err
	}

	text, err := intelligence.DecodeDescriptionReply(resp.Text)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty description", ErrInvalidResponse)
	}

	descID, err := g.store.AddDescription(tabID, domain.Description{
		Text:          text,
		Scope:         domain.DescScopeEvent,
		TargetEventID: eventID,
	})
	if err != nil {
		return nil, err
	}

	g.stampUsedStars(params.CheckedStars)

	return &DescriptionResult{DescriptionID: descID, Text: text}, nil
}

func (g *generationService) PreviewContext() (string, error) {
	params, err := g.snapshotParams()
	if err != nil {
		return "", err
	}
	return intelligence.BuildContext(*params), nil
}

// generate calls the model and records the attempt in the prompt history,
// success or not.
func (g *generationService) generate(ctx context.Context, task llm.TaskType, prompt intelligence.AssembledPrompt, userInput string) (*llm.GenerateResponse, error) {
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: prompt.System,
		UserPrompt:   prompt.User,
	})

	if g.history != nil {
		rec := &domain.PromptRecord{
			ID:        uuid.New().String(),
			Task:      string(task),
			UserInput: userInput,
			Success:   err == nil,
			CreatedAt: time.Now().UTC(),
		}
		if resp != nil {
			rec.Model = resp.Model
			rec.LatencyMs = resp.LatencyMs
		}
		if herr := g.history.Create(ctx, rec); herr != nil {
			g.log.Warn("recording prompt history failed", zap.Error(herr))
		}
	}

	return resp, err
}

// snapshotParams captures the story state for context building. Everything
// is deep-copied so the snapshot is immune to concurrent store edits.
func (g *generationService) snapshotParams() (*intelligence.ContextParams, error) {
	scene := g.store.ActiveScene()
	if scene == nil {
		return nil, ErrNoActiveScene
	}

	params := &intelligence.ContextParams{
		Scene:          copyScene(scene),
		CharacterNames: make(map[string]string),
	}

	for _, c := range g.store.Characters() {
		params.CharacterNames[c.ID] = c.Name
		if c.IsChecked {
			params.Characters = append(params.Characters, copyCharacter(c))
		}
	}

	for _, st := range g.store.CheckedStars() {
		params.CheckedStars = append(params.CheckedStars, copyStar(st))
	}

	tabs, err := g.store.SceneTabs(scene.ID)
	if err != nil {
		return nil, err
	}
	for _, tab := range tabs {
		params.RecentTabs = append(params.RecentTabs, copyTab(tab))
	}

	return params, nil
}

// stampUsedStars marks every star the context actually rendered as used.
func (g *generationService) stampUsedStars(checkedStars []domain.Star) {
	now := time.Now().UTC()
	for _, id := range intelligence.IncludedStarIDs(checkedStars) {
		if err := g.store.StampStarUsed(id, now); err != nil {
			// Star removed while the call ran; nothing to stamp.
			g.log.Debug("skipping star stamp", zap.String("starID", id), zap.Error(err))
		}
	}
}

// validateTimelineReply rejects replies that would create empty tabs or
// blank events. Applied before any store mutation.
func validateTimelineReply(reply *intelligence.TimelineReply) error {
	if len(reply.Tabs) == 0 {
		return fmt.Errorf("%w: no tabs", ErrInvalidResponse)
	}
	for ti, tab := range reply.Tabs {
		if len(tab.Timeline) == 0 && tab.Summary == "" && tab.Atmosphere == "" {
			return fmt.Errorf("%w: tab %d is empty", ErrInvalidResponse, ti)
		}
		for ei, ev := range tab.Timeline {
			if strings.TrimSpace(ev.Text) == "" {
				return fmt.Errorf("%w: tab %d event %d has no text", ErrInvalidResponse, ti, ei)
			}
		}
	}
	return nil
}

func copyScene(s *domain.Scene) domain.Scene {
	out := *s
	out.DraftTabIDs = append([]string(nil), s.DraftTabIDs...)
	out.Plan.ParsedSteps = append([]string(nil), s.Plan.ParsedSteps...)
	return out
}

func copyCharacter(c *domain.Character) domain.Character {
	out := *c
	out.Fields = make(map[string]string, len(c.Fields))
	for k, v := range c.Fields {
		out.Fields[k] = v
	}
	out.FieldOrder = append([]string(nil), c.FieldOrder...)
	return out
}

func copyStar(st *domain.Star) domain.Star {
	out := *st
	out.Tags.Characters = append([]string(nil), st.Tags.Characters...)
	out.Tags.Custom = append([]string(nil), st.Tags.Custom...)
	out.Tags.ConstraintContext = append([]string(nil), st.Tags.ConstraintContext...)
	if st.LastUsedInPrompt != nil {
		t := *st.LastUsedInPrompt
		out.LastUsedInPrompt = &t
	}
	if st.Constraint != nil {
		c := *st.Constraint
		if st.Constraint.SourceEvent != nil {
			src := *st.Constraint.SourceEvent
			c.SourceEvent = &src
		}
		out.Constraint = &c
	}
	return out
}

func copyTab(tab *domain.DraftTab) domain.DraftTab {
	out := *tab
	out.Timeline = make([]domain.TimelineEvent, len(tab.Timeline))
	for i, ev := range tab.Timeline {
		out.Timeline[i] = ev
		out.Timeline[i].AssociatedStars = append([]string(nil), ev.AssociatedStars...)
	}
	out.Descriptions = append([]domain.Description(nil), tab.Descriptions...)
	out.FulfilledPlanSteps = append([]string(nil), tab.FulfilledPlanSteps...)
	return out
}
