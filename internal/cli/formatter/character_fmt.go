package formatter

import (
	"fmt"
	"strings"

	"spica/internal/domain"
)

// FormatCharacterList renders characters as a table.
func FormatCharacterList(chars []*domain.Character) string {
	headers := []string{"", "ID", "NAME", "FIELDS"}
	rows := make([][]string, 0, len(chars))

	for _, c := range chars {
		rows = append(rows, []string{
			CheckMark(c.IsChecked),
			Dim(TruncID(c.ID)),
			Bold(c.Name),
			fmt.Sprintf("%d", len(c.Fields)),
		})
	}

	return RenderBox("Characters", RenderTable(headers, rows))
}

// FormatCharacterInspect renders one character with fields in insertion order.
func FormatCharacterInspect(c *domain.Character) string {
	var b strings.Builder

	b.WriteString(Header(c.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim(TruncID(c.ID)), CheckMark(c.IsChecked)))

	fields := c.OrderedFields()
	if len(fields) > 0 {
		b.WriteString("\n")
		width := 0
		for _, kv := range fields {
			if len(kv[0]) > width {
				width = len(kv[0])
			}
		}
		for _, kv := range fields {
			pad := strings.Repeat(" ", width-len(kv[0]))
			b.WriteString(fmt.Sprintf("  %s:%s %s\n", Bold(kv[0]), pad, kv[1]))
		}
	}

	return b.String()
}
