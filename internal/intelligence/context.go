package intelligence

import (
	"fmt"
	"sort"
	"strings"

	"spica/internal/domain"
)

// recentTabWindow is how many trailing tabs contribute full timeline detail
// to the context. Older tabs are collapsed to their summaries.
const recentTabWindow = 3

// keyFactCap bounds the KEY FACTS section to the highest-priority stars.
const keyFactCap = 10

// ContextParams are the inputs to BuildContext, captured by value at
// submission time so edits during an in-flight request cannot alter the
// prompt already sent.
type ContextParams struct {
	Scene        domain.Scene
	Characters   []domain.Character
	CheckedStars []domain.Star
	RecentTabs   []domain.DraftTab

	// CharacterNames resolves character ids to display names for the
	// constraints section, independent of which characters are included
	// in the CHARACTERS section.
	CharacterNames map[string]string
}

// BuildContext renders the story state into the bounded text block sent to
// the LLM. It is a pure function: identical inputs produce byte-identical
// output. Sections whose source list is empty are omitted entirely.
func BuildContext(params ContextParams) string {
	var b strings.Builder

	writeSceneSection(&b, params.Scene)
	writeCharacterSection(&b, params.Characters)
	writePlanSection(&b, params.Scene)
	writeRecentEvents(&b, params.RecentTabs)
	writeConstraintSection(&b, params.CheckedStars, params.CharacterNames)
	writeKeyFacts(&b, params.CheckedStars)

	return b.String()
}

// IncludedStarIDs returns the ids of the stars BuildContext would actually
// render for the given checked set: every constraint, plus the facts that
// survive the key-fact cap. Used to stamp last-used times after a prompt.
func IncludedStarIDs(checkedStars []domain.Star) []string {
	var ids []string
	var facts []*domain.Star
	for i := range checkedStars {
		st := &checkedStars[i]
		if st.IsConstraint() {
			ids = append(ids, st.ID)
		} else {
			facts = append(facts, st)
		}
	}
	sort.SliceStable(facts, func(i, j int) bool {
		return facts[i].Priority > facts[j].Priority
	})
	if len(facts) > keyFactCap {
		facts = facts[:keyFactCap]
	}
	for _, st := range facts {
		ids = append(ids, st.ID)
	}
	return ids
}

func writeSceneSection(b *strings.Builder, scene domain.Scene) {
	fmt.Fprintf(b, "### SCENE: %s\n", scene.Name)
	if scene.Setting != "" {
		fmt.Fprintf(b, "Setting: %s\n", scene.Setting)
	}
	if scene.Backstory != "" {
		fmt.Fprintf(b, "Backstory: %s\n", scene.Backstory)
	}
	b.WriteString("\n")
}

func writeCharacterSection(b *strings.Builder, characters []domain.Character) {
	if len(characters) == 0 {
		return
	}
	b.WriteString("### CHARACTERS\n")
	for i := range characters {
		c := &characters[i]
		fmt.Fprintf(b, "**%s**\n", c.Name)
		for _, kv := range c.OrderedFields() {
			fmt.Fprintf(b, "- %s: %s\n", kv[0], kv[1])
		}
		b.WriteString("\n")
	}
}

func writePlanSection(b *strings.Builder, scene domain.Scene) {
	if scene.Plan.RawText == "" {
		return
	}
	b.WriteString("### SCENE PLAN\n")
	b.WriteString(scene.Plan.RawText)
	b.WriteString("\n\n")
}

// writeRecentEvents applies the recency-weighted truncation: tabs older
// than the trailing window contribute only their one-line summaries, the
// latest tabs contribute every checked event in full. This asymmetry is the
// token-budget control for long scenes.
func writeRecentEvents(b *strings.Builder, tabs []domain.DraftTab) {
	if len(tabs) == 0 {
		return
	}
	b.WriteString("### RECENT EVENTS\n")

	split := 0
	if len(tabs) > recentTabWindow {
		split = len(tabs) - recentTabWindow
	}

	for i := 0; i < split; i++ {
		if s := strings.TrimSpace(tabs[i].Summary); s != "" {
			fmt.Fprintf(b, "- %s\n", s)
		}
	}
	if split > 0 {
		b.WriteString("\n")
	}

	for i := split; i < len(tabs); i++ {
		tab := &tabs[i]
		fmt.Fprintf(b, "**Section %d**\n", tab.Index+1)
		for _, ev := range tab.Timeline {
			if !ev.Checked {
				continue
			}
			if ev.Dialogue != "" {
				fmt.Fprintf(b, "- %s -> \"%s\"\n", ev.Text, ev.Dialogue)
			} else {
				fmt.Fprintf(b, "- %s\n", ev.Text)
			}
		}
		b.WriteString("\n")
	}
}

const unknownCharacterName = "Unknown Character"

func writeConstraintSection(b *strings.Builder, stars []domain.Star, names map[string]string) {
	type group struct {
		name        string
		constraints []*domain.Star
	}

	var groups []*group
	byName := make(map[string]*group)

	for i := range stars {
		st := &stars[i]
		if !st.IsConstraint() {
			continue
		}
		name := names[st.Constraint.AppliesToCharacter]
		if name == "" {
			name = unknownCharacterName
		}
		g, ok := byName[name]
		if !ok {
			g = &group{name: name}
			byName[name] = g
			groups = append(groups, g)
		}
		g.constraints = append(g.constraints, st)
	}
	if len(groups) == 0 {
		return
	}

	b.WriteString("### CHARACTER BEHAVIORAL CONSTRAINTS\n")
	for _, g := range groups {
		// Stable: priority ties keep encounter order.
		sort.SliceStable(g.constraints, func(i, j int) bool {
			return g.constraints[i].Priority > g.constraints[j].Priority
		})
		fmt.Fprintf(b, "**%s**\n", g.name)
		for _, st := range g.constraints {
			label := strings.TrimPrefix(string(st.Constraint.Type), "character_")
			label = strings.ReplaceAll(label, "_", " ")
			if st.Constraint.SituationContext != "" {
				fmt.Fprintf(b, "- %s (%s): %s\n", label, st.Constraint.SituationContext, st.Body)
			} else {
				fmt.Fprintf(b, "- %s: %s\n", label, st.Body)
			}
		}
		b.WriteString("\n")
	}
}

func writeKeyFacts(b *strings.Builder, stars []domain.Star) {
	var facts []*domain.Star
	for i := range stars {
		if !stars[i].IsConstraint() {
			facts = append(facts, &stars[i])
		}
	}
	if len(facts) == 0 {
		return
	}

	sort.SliceStable(facts, func(i, j int) bool {
		return facts[i].Priority > facts[j].Priority
	})
	if len(facts) > keyFactCap {
		facts = facts[:keyFactCap]
	}

	b.WriteString("### KEY FACTS\n")
	for _, st := range facts {
		fmt.Fprintf(b, "- %s: %s\n", st.Title, st.Body)
	}
	b.WriteString("\n")
}
