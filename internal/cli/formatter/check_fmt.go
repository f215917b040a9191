package formatter

import (
	"strings"

	"spica/internal/store"
)

// FormatConsistencyReport renders a location-invariant check result.
func FormatConsistencyReport(report *store.ConsistencyReport) string {
	var b strings.Builder

	if report.OK() && len(report.Warnings) == 0 {
		b.WriteString(StyleGreen.Render("✓ all draft tabs are in exactly one location") + "\n")
		return b.String()
	}

	for _, e := range report.Errors {
		b.WriteString(StyleRed.Render("✗ "+e) + "\n")
	}
	for _, w := range report.Warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}

	return b.String()
}
