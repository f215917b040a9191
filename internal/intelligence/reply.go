package intelligence

import (
	"errors"
	"fmt"
	"strings"

	"spica/internal/llm"
)

// ErrMalformedReply marks a reply that parsed as JSON but carries neither
// tabs nor an error payload.
var ErrMalformedReply = errors.New("malformed generation reply")

// ProviderError is a structured failure payload reported by the backend in
// place of a generation result.
type ProviderError struct {
	Message string
	Code    string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

// TimelineReply is the decoded result of a scene timeline generation.
type TimelineReply struct {
	Tabs []TabSuggestion `json:"tabs"`
}

// TabSuggestion is one proposed draft tab from the model.
type TabSuggestion struct {
	Title      string            `json:"title"`
	Timeline   []EventSuggestion `json:"timeline"`
	Summary    string            `json:"summary,omitempty"`
	Atmosphere string            `json:"atmosphere,omitempty"`
}

// EventSuggestion is one proposed timeline event.
type EventSuggestion struct {
	Text     string `json:"text"`
	Dialogue string `json:"dialogue,omitempty"`
}

// replyProbe covers every JSON shape a reply can take so one unmarshal pass
// can classify it.
type replyProbe struct {
	Error       bool            `json:"error"`
	Message     string          `json:"message"`
	Code        string          `json:"code"`
	Tabs        []TabSuggestion `json:"tabs"`
	Description string          `json:"description"`
}

const fallbackTabTitle = "Generated Scene Segment"

// DecodeTimelineReply turns raw model output into a timeline reply. JSON
// replies are preferred; anything that is not recognizable JSON is parsed
// as plain text, one event per line. A reply that is itself a JSON object
// but carries no tabs is rejected rather than read as prose.
func DecodeTimelineReply(raw string) (*TimelineReply, error) {
	if probe, err := llm.ExtractJSON[replyProbe](raw, nil); err == nil {
		if probe.Error {
			return nil, &ProviderError{Message: probe.Message, Code: probe.Code}
		}
		if probe.Tabs != nil {
			return &TimelineReply{Tabs: probe.Tabs}, nil
		}
		if isBareJSONObject(raw) {
			return nil, fmt.Errorf("%w: JSON object without tabs", ErrMalformedReply)
		}
	}

	tab := parseTimelineText(raw)
	return &TimelineReply{Tabs: []TabSuggestion{tab}}, nil
}

// isBareJSONObject reports whether the whole reply is a single JSON object,
// optionally wrapped in a markdown code fence. Prose that merely embeds a
// JSON snippet does not count and still goes through the text parser.
func isBareJSONObject(raw string) bool {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

// DecodeDescriptionReply turns raw model output into prose. A JSON reply
// may carry either an error payload or a description field; anything else
// is used verbatim.
func DecodeDescriptionReply(raw string) (string, error) {
	if probe, err := llm.ExtractJSON[replyProbe](raw, nil); err == nil {
		if probe.Error {
			return "", &ProviderError{Message: probe.Message, Code: probe.Code}
		}
		if probe.Description != "" {
			return probe.Description, nil
		}
	}
	return strings.TrimSpace(raw), nil
}

// parseTimelineText converts free-form model text into a single suggested
// tab. Each non-empty line becomes an event; a quoted span within a line is
// split off as dialogue; a standalone |summary|atmosphere| line is lifted
// into the tab fields instead of becoming an event.
func parseTimelineText(raw string) TabSuggestion {
	tab := TabSuggestion{Title: fallbackTabTitle}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if summary, atmosphere, ok := parsePipeLine(line); ok {
			tab.Summary = summary
			tab.Atmosphere = atmosphere
			continue
		}

		tab.Timeline = append(tab.Timeline, splitDialogue(line))
	}

	if len(tab.Timeline) == 0 && tab.Summary == "" && tab.Atmosphere == "" {
		tab.Timeline = append(tab.Timeline, EventSuggestion{Text: strings.TrimSpace(raw)})
	}

	return tab
}

// splitDialogue separates a quoted span from the narration around it. The
// narration before the first quote is the event text, the span between the
// first and last quote is the dialogue.
func splitDialogue(line string) EventSuggestion {
	start := strings.IndexByte(line, '"')
	if start == -1 {
		return EventSuggestion{Text: line}
	}
	end := strings.LastIndexByte(line, '"')
	if end <= start {
		return EventSuggestion{Text: line}
	}

	return EventSuggestion{
		Text:     strings.TrimSpace(line[:start]),
		Dialogue: strings.TrimSpace(line[start+1 : end]),
	}
}

// parsePipeLine recognizes the |summary|atmosphere| closing line the
// timeline instructions ask for.
func parsePipeLine(line string) (summary, atmosphere string, ok bool) {
	if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") || len(line) < 3 {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(line, "|"), "|")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
