package formatter

import (
	"fmt"
	"strings"

	"spica/internal/domain"
)

// FormatTabList renders draft tabs as a table with their location badges.
func FormatTabList(tabs []*domain.DraftTab) string {
	headers := []string{"ID", "LOCATION", "EVENTS", "SUMMARY"}
	rows := make([][]string, 0, len(tabs))

	for _, t := range tabs {
		rows = append(rows, []string{
			Dim(TruncID(t.ID)),
			LocationBadge(t.Location),
			fmt.Sprintf("%d", len(t.Timeline)),
			Truncate(tabSummaryLine(t), 50),
		})
	}

	return RenderBox("Draft Tabs", RenderTable(headers, rows))
}

// FormatTabInspect renders one draft tab: timeline, descriptions, metadata.
func FormatTabInspect(t *domain.DraftTab) string {
	var b strings.Builder

	b.WriteString(Header("Draft Tab " + TruncID(t.ID)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  index %d\n", LocationBadge(t.Location), t.Index))

	if t.Summary != "" {
		b.WriteString("\n" + Bold("Summary") + "\n" + t.Summary + "\n")
	}
	if t.Atmosphere != "" {
		b.WriteString(Bold("Atmosphere") + "\n" + t.Atmosphere + "\n")
	}

	if len(t.Timeline) > 0 {
		b.WriteString("\n" + Bold("Timeline") + "\n")
		for _, ev := range t.Timeline {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", CheckMark(ev.Checked), Dim(TruncID(ev.ID)), ev.Text))
			if ev.Dialogue != "" {
				b.WriteString("      " + StylePurple.Render(fmt.Sprintf("%q", ev.Dialogue)) + "\n")
			}
		}
	}

	if len(t.Descriptions) > 0 {
		b.WriteString("\n" + Bold("Descriptions") + "\n")
		for _, d := range t.Descriptions {
			scope := string(d.Scope)
			if d.TargetEventID != "" {
				scope += ":" + TruncID(d.TargetEventID)
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim("["+scope+"]"), Truncate(d.Text, 80)))
		}
	}

	return b.String()
}
