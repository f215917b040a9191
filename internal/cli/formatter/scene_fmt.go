package formatter

import (
	"fmt"
	"strings"

	"spica/internal/domain"
)

// FormatSceneList renders a styled scene list inside a bordered box. The
// active scene is marked with an arrow.
func FormatSceneList(scenes []*domain.Scene, activeID string) string {
	headers := []string{"", "ID", "NAME", "TABS"}
	rows := make([][]string, 0, len(scenes))

	for _, sc := range scenes {
		marker := " "
		if sc.ID == activeID {
			marker = StyleGreen.Render("▶")
		}
		rows = append(rows, []string{
			marker,
			Dim(TruncID(sc.ID)),
			Bold(sc.Name),
			fmt.Sprintf("%d", len(sc.DraftTabIDs)),
		})
	}

	return RenderBox("Scenes", RenderTable(headers, rows))
}

// FormatSceneInspect renders one scene with its plan and tab list.
func FormatSceneInspect(sc *domain.Scene, steps []*domain.PlanStep, tabs []*domain.DraftTab) string {
	var b strings.Builder

	b.WriteString(Header(sc.Name))
	b.WriteString("\n")
	b.WriteString(Dim("id: "+sc.ID) + "\n")

	if sc.Setting != "" {
		b.WriteString("\n" + Bold("Setting") + "\n" + sc.Setting + "\n")
	}
	if sc.Backstory != "" {
		b.WriteString("\n" + Bold("Backstory") + "\n" + sc.Backstory + "\n")
	}

	if sc.Plan.RawText != "" || len(steps) > 0 {
		b.WriteString("\n" + Bold("Plan") + "\n")
		if sc.Plan.RawText != "" {
			b.WriteString(sc.Plan.RawText + "\n")
		}
		for i, st := range steps {
			fulfilled := ""
			if len(st.FulfilledBy) > 0 {
				fulfilled = " " + StyleGreen.Render(fmt.Sprintf("(fulfilled by %d)", len(st.FulfilledBy)))
			}
			b.WriteString(fmt.Sprintf("  %d. %s%s\n", i+1, st.Text, fulfilled))
		}
	}

	if len(tabs) > 0 {
		b.WriteString("\n" + Bold("Draft tabs") + "\n")
		for _, t := range tabs {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim(TruncID(t.ID)), tabSummaryLine(t)))
		}
	}

	return b.String()
}

func tabSummaryLine(t *domain.DraftTab) string {
	if t.Summary != "" {
		return t.Summary
	}
	if len(t.Timeline) > 0 {
		return Truncate(t.Timeline[0].Text, 60)
	}
	return Dim("(empty)")
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
