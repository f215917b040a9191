package formatter

import (
	"fmt"
	"strings"

	"spica/internal/domain"
)

// KindBadge returns a colored badge for a star's kind.
func KindBadge(st *domain.Star) string {
	if st.IsConstraint() {
		return StylePurple.Render("constraint")
	}
	return StyleBlue.Render("fact")
}

// FormatStarList renders stars as a table sorted the way the caller passed
// them. Checked stars are the ones the next generation will see.
func FormatStarList(stars []*domain.Star, names map[string]string) string {
	headers := []string{"", "ID", "KIND", "PRI", "TITLE"}
	rows := make([][]string, 0, len(stars))

	for _, st := range stars {
		title := st.Title
		if st.IsConstraint() {
			who := names[st.Constraint.AppliesToCharacter]
			if who == "" {
				who = "Unknown Character"
			}
			title = fmt.Sprintf("%s: %s", who, st.Title)
		}
		rows = append(rows, []string{
			CheckMark(st.IsChecked),
			Dim(TruncID(st.ID)),
			KindBadge(st),
			fmt.Sprintf("%.2f", st.Priority),
			Truncate(title, 50),
		})
	}

	return RenderBox("Stars", RenderTable(headers, rows))
}

// FormatStarInspect renders one star in full.
func FormatStarInspect(st *domain.Star, names map[string]string) string {
	var b strings.Builder

	b.WriteString(Header(st.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s  priority %.2f  %s\n", Dim(TruncID(st.ID)), KindBadge(st), st.Priority, CheckMark(st.IsChecked)))

	if st.Body != "" {
		b.WriteString("\n" + st.Body + "\n")
	}

	if st.IsConstraint() {
		c := st.Constraint
		who := names[c.AppliesToCharacter]
		if who == "" {
			who = "Unknown Character"
		}
		b.WriteString("\n" + Bold("Constraint") + "\n")
		b.WriteString(fmt.Sprintf("  type:      %s\n", c.Type))
		b.WriteString(fmt.Sprintf("  character: %s\n", who))
		if c.SituationContext != "" {
			b.WriteString(fmt.Sprintf("  situation: %s\n", c.SituationContext))
		}
		if c.SourceEvent != nil {
			b.WriteString(fmt.Sprintf("  source:    %s %s\n", Dim(TruncID(c.SourceEvent.EventID)), Truncate(c.SourceEvent.EventText, 60)))
		}
	}

	if len(st.Tags.Custom) > 0 {
		b.WriteString("\n" + Dim("tags: "+strings.Join(st.Tags.Custom, ", ")) + "\n")
	}
	if st.LastUsedInPrompt != nil {
		b.WriteString(Dim("last used in prompt: "+st.LastUsedInPrompt.Format("2006-01-02 15:04")) + "\n")
	}

	return b.String()
}
