package formatter

import (
	"fmt"
	"sort"

	"spica/internal/domain"
)

// FormatPromptHistory renders recent prompt log entries, newest first.
func FormatPromptHistory(records []*domain.PromptRecord) string {
	headers := []string{"WHEN", "TASK", "MODEL", "OK", "LATENCY", "INPUT"}
	rows := make([][]string, 0, len(records))

	for _, r := range records {
		ok := StyleGreen.Render("yes")
		if !r.Success {
			ok = StyleRed.Render("no")
		}
		rows = append(rows, []string{
			Dim(r.CreatedAt.Local().Format("2006-01-02 15:04")),
			r.Task,
			Dim(r.Model),
			ok,
			fmt.Sprintf("%dms", r.LatencyMs),
			Truncate(r.UserInput, 40),
		})
	}

	return RenderBox("Prompt History", RenderTable(headers, rows))
}

// FormatPromptCounts renders per-task call counts.
func FormatPromptCounts(counts map[string]int) string {
	tasks := make([]string, 0, len(counts))
	for t := range counts {
		tasks = append(tasks, t)
	}
	sort.Strings(tasks)

	headers := []string{"TASK", "CALLS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t, fmt.Sprintf("%d", counts[t])})
	}

	return RenderTable(headers, rows)
}
