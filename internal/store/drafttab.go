package store

import (
	"github.com/google/uuid"

	"spica/internal/domain"
)

// CreateDraftTab creates an empty draft tab in the workbench and returns its
// id. New tabs never land directly in a scene.
func (s *Store) CreateDraftTab() string {
	now := s.now()
	tab := &domain.DraftTab{
		ID:        uuid.New().String(),
		Location:  domain.InWorkbench(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tabs[tab.ID] = tab
	s.tabOrder = append(s.tabOrder, tab.ID)
	s.workbench = append(s.workbench, tab.ID)
	tab.Index = len(s.workbench) - 1
	return tab.ID
}

// DraftTab returns the tab with the given id.
func (s *Store) DraftTab(id string) (*domain.DraftTab, error) {
	tab, ok := s.tabs[id]
	if !ok {
		return nil, notFound("draft tab", id)
	}
	return tab, nil
}

// DraftTabs returns all draft tabs in creation order.
func (s *Store) DraftTabs() []*domain.DraftTab {
	out := make([]*domain.DraftTab, 0, len(s.tabOrder))
	for _, id := range s.tabOrder {
		out = append(out, s.tabs[id])
	}
	return out
}

// SetTabSummary sets a tab's LLM-authored summary.
func (s *Store) SetTabSummary(id, summary string) error {
	tab, ok := s.tabs[id]
	if !ok {
		return notFound("draft tab", id)
	}
	tab.Summary = summary
	tab.UpdatedAt = s.now()
	return nil
}

// SetTabAtmosphere sets a tab's LLM-authored atmosphere line.
func (s *Store) SetTabAtmosphere(id, atmosphere string) error {
	tab, ok := s.tabs[id]
	if !ok {
		return notFound("draft tab", id)
	}
	tab.Atmosphere = atmosphere
	tab.UpdatedAt = s.now()
	return nil
}

// DeleteDraftTab removes a tab and cascade-cleans every back-reference:
// container membership, star origins, plan step fulfillments. No dangling
// id survives the delete.
func (s *Store) DeleteDraftTab(id string) error {
	if _, ok := s.tabs[id]; !ok {
		return notFound("draft tab", id)
	}

	for _, sc := range s.scenes {
		sc.DraftTabIDs = removeID(sc.DraftTabIDs, id)
	}
	s.workbench = removeID(s.workbench, id)
	s.ideaBank = removeID(s.ideaBank, id)

	for _, st := range s.stars {
		if st.OriginDraftTabID == id {
			st.OriginDraftTabID = ""
		}
	}
	for _, step := range s.planSteps {
		step.FulfilledBy = removeID(step.FulfilledBy, id)
	}

	delete(s.tabs, id)
	s.tabOrder = removeID(s.tabOrder, id)
	return nil
}

// AddTimelineEvent appends an event to a tab's timeline and returns the
// event id.
func (s *Store) AddTimelineEvent(tabID, text, dialogue string, checked bool) (string, error) {
	tab, ok := s.tabs[tabID]
	if !ok {
		return "", notFound("draft tab", tabID)
	}
	ev := domain.TimelineEvent{
		ID:       uuid.New().String(),
		Text:     text,
		Dialogue: dialogue,
		Checked:  checked,
	}
	tab.Timeline = append(tab.Timeline, ev)
	tab.UpdatedAt = s.now()
	return ev.ID, nil
}

// SetEventText updates an event's description text.
func (s *Store) SetEventText(tabID, eventID, text string) error {
	ev, err := s.event(tabID, eventID)
	if err != nil {
		return err
	}
	ev.Text = text
	s.tabs[tabID].UpdatedAt = s.now()
	return nil
}

// SetEventDialogue updates an event's dialogue line.
func (s *Store) SetEventDialogue(tabID, eventID, dialogue string) error {
	ev, err := s.event(tabID, eventID)
	if err != nil {
		return err
	}
	ev.Dialogue = dialogue
	s.tabs[tabID].UpdatedAt = s.now()
	return nil
}

// SetEventChecked toggles an event's inclusion in the next LLM context.
func (s *Store) SetEventChecked(tabID, eventID string, checked bool) error {
	ev, err := s.event(tabID, eventID)
	if err != nil {
		return err
	}
	ev.Checked = checked
	return nil
}

// DeleteTimelineEvent removes an event from a tab's timeline.
func (s *Store) DeleteTimelineEvent(tabID, eventID string) error {
	tab, ok := s.tabs[tabID]
	if !ok {
		return notFound("draft tab", tabID)
	}
	for i := range tab.Timeline {
		if tab.Timeline[i].ID == eventID {
			tab.Timeline = append(tab.Timeline[:i], tab.Timeline[i+1:]...)
			tab.UpdatedAt = s.now()
			return nil
		}
	}
	return notFound("timeline event", eventID)
}

// LinkStarToEvent associates a star with a timeline event. Linking an
// already linked pair is a no-op.
func (s *Store) LinkStarToEvent(starID, tabID, eventID string) error {
	if _, ok := s.stars[starID]; !ok {
		return notFound("star", starID)
	}
	ev, err := s.event(tabID, eventID)
	if err != nil {
		return err
	}
	if containsID(ev.AssociatedStars, starID) {
		return nil
	}
	ev.AssociatedStars = append(ev.AssociatedStars, starID)
	return nil
}

// UnlinkStarFromEvent removes a star association from a timeline event.
func (s *Store) UnlinkStarFromEvent(starID, tabID, eventID string) error {
	ev, err := s.event(tabID, eventID)
	if err != nil {
		return err
	}
	ev.AssociatedStars = removeID(ev.AssociatedStars, starID)
	return nil
}

// AddDescription attaches an annotation to a tab. For event-scoped
// descriptions the target event must exist on the tab.
func (s *Store) AddDescription(tabID string, d domain.Description) (string, error) {
	tab, ok := s.tabs[tabID]
	if !ok {
		return "", notFound("draft tab", tabID)
	}
	if d.Scope == domain.DescScopeEvent {
		if tab.FindEvent(d.TargetEventID) == nil {
			return "", notFound("timeline event", d.TargetEventID)
		}
	}
	d.ID = uuid.New().String()
	tab.Descriptions = append(tab.Descriptions, d)
	tab.UpdatedAt = s.now()
	return d.ID, nil
}

// DeleteDescription removes an annotation from a tab.
func (s *Store) DeleteDescription(tabID, descID string) error {
	tab, ok := s.tabs[tabID]
	if !ok {
		return notFound("draft tab", tabID)
	}
	for i := range tab.Descriptions {
		if tab.Descriptions[i].ID == descID {
			tab.Descriptions = append(tab.Descriptions[:i], tab.Descriptions[i+1:]...)
			tab.UpdatedAt = s.now()
			return nil
		}
	}
	return notFound("description", descID)
}

func (s *Store) event(tabID, eventID string) (*domain.TimelineEvent, error) {
	tab, ok := s.tabs[tabID]
	if !ok {
		return nil, notFound("draft tab", tabID)
	}
	ev := tab.FindEvent(eventID)
	if ev == nil {
		return nil, notFound("timeline event", eventID)
	}
	return ev, nil
}
