package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spica/internal/domain"
)

func TestCreateCharacterConstraint_SnapshotsEventText(t *testing.T) {
	s := newTestStore()
	tabID := s.CreateDraftTab()
	eventID, err := s.AddTimelineEvent(tabID, "Mira snaps at the vendor", "", false)
	require.NoError(t, err)
	charID := s.CreateCharacter("Mira", nil)

	starID, err := s.CreateCharacterConstraint(eventID, tabID, charID, ConstraintInput{
		Type:             domain.ConstraintBehavior,
		Title:            "short fuse",
		Description:      "loses her temper when haggled with",
		SituationContext: "when bargaining",
	})
	require.NoError(t, err)

	star, err := s.Star(starID)
	require.NoError(t, err)
	require.True(t, star.IsConstraint())
	assert.True(t, star.IsChecked)
	assert.Equal(t, constraintDefaultPriority, star.Priority)
	assert.Equal(t, charID, star.Constraint.AppliesToCharacter)
	assert.Equal(t, "Mira snaps at the vendor", star.Constraint.SourceEvent.EventText)

	// Editing the event afterwards must not rewrite the snapshot.
	require.NoError(t, s.SetEventText(tabID, eventID, "rewritten"))
	star, _ = s.Star(starID)
	assert.Equal(t, "Mira snaps at the vendor", star.Constraint.SourceEvent.EventText)
}

func TestCreateCharacterConstraint_Validation(t *testing.T) {
	s := newTestStore()
	tabID := s.CreateDraftTab()
	eventID, err := s.AddTimelineEvent(tabID, "text", "", false)
	require.NoError(t, err)
	charID := s.CreateCharacter("Mira", nil)

	_, err = s.CreateCharacterConstraint(eventID, tabID, charID, ConstraintInput{Type: "character_mood"})
	assert.ErrorContains(t, err, "invalid constraint type")

	_, err = s.CreateCharacterConstraint("ghost", tabID, charID, ConstraintInput{Type: domain.ConstraintBehavior})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateCharacterConstraint(eventID, tabID, "ghost", ConstraintInput{Type: domain.ConstraintBehavior})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetectCharactersInEvent(t *testing.T) {
	s := newTestStore()
	mira := s.CreateCharacter("Mira", nil)
	s.CreateCharacter("The Broker", nil)
	blank := s.CreateCharacter("", nil)

	matches := s.DetectCharactersInEvent("mira waves at the broker across the square")

	require.Len(t, matches, 2)
	assert.Equal(t, mira, matches[0])
	assert.NotContains(t, matches, blank)

	assert.Empty(t, s.DetectCharactersInEvent("nobody here"))
}

func TestDeleteCharacter_PrunesStarTags(t *testing.T) {
	s := newTestStore()
	tabID := s.CreateDraftTab()
	eventID, err := s.AddTimelineEvent(tabID, "Mira storms off", "", false)
	require.NoError(t, err)
	mira := s.CreateCharacter("Mira", nil)
	jude := s.CreateCharacter("Jude", nil)

	starID, err := s.CreateCharacterConstraint(eventID, tabID, mira, ConstraintInput{
		Type: domain.ConstraintBehavior,
	})
	require.NoError(t, err)
	factID := s.CreateStar(StarInput{
		Title: "shared secret",
		Tags:  domain.StarTags{Characters: []string{mira, jude}},
	})

	require.NoError(t, s.DeleteCharacter(mira))

	_, err = s.Character(mira)
	assert.ErrorIs(t, err, ErrNotFound)

	// The constraint star survives; only the tag reference is pruned.
	star, err := s.Star(starID)
	require.NoError(t, err)
	assert.NotContains(t, star.Tags.Characters, mira)
	assert.Equal(t, mira, star.Constraint.AppliesToCharacter)

	fact, err := s.Star(factID)
	require.NoError(t, err)
	assert.Equal(t, []string{jude}, fact.Tags.Characters)
}

func TestStampStarUsedAndPriorityClamp(t *testing.T) {
	s := newTestStore()
	id := s.CreateStar(StarInput{Title: "fact", Priority: 0.4})

	require.NoError(t, s.SetStarPriority(id, 1.7))
	star, err := s.Star(id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, star.Priority)

	require.NoError(t, s.SetStarPriority(id, -2))
	star, _ = s.Star(id)
	assert.Equal(t, 0.0, star.Priority)

	require.Nil(t, star.LastUsedInPrompt)
	at := s.now()
	require.NoError(t, s.StampStarUsed(id, at))
	star, _ = s.Star(id)
	require.NotNil(t, star.LastUsedInPrompt)
	assert.Equal(t, at, *star.LastUsedInPrompt)
}

func TestCheckedStars_InsertionOrder(t *testing.T) {
	s := newTestStore()
	a := s.CreateStar(StarInput{Title: "a", IsChecked: true})
	s.CreateStar(StarInput{Title: "b"})
	c := s.CreateStar(StarInput{Title: "c", IsChecked: true})

	checked := s.CheckedStars()
	require.Len(t, checked, 2)
	assert.Equal(t, a, checked[0].ID)
	assert.Equal(t, c, checked[1].ID)
}

func TestAddDescription_EventScopeRequiresTarget(t *testing.T) {
	s := newTestStore()
	tabID := s.CreateDraftTab()
	eventID, err := s.AddTimelineEvent(tabID, "text", "", false)
	require.NoError(t, err)

	_, err = s.AddDescription(tabID, domain.Description{
		Text:          "lantern light",
		Scope:         domain.DescScopeEvent,
		TargetEventID: "ghost",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	id, err := s.AddDescription(tabID, domain.Description{
		Text:          "lantern light",
		Scope:         domain.DescScopeEvent,
		TargetEventID: eventID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
