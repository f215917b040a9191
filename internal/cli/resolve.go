package cli

import (
	"fmt"
	"strings"

	"spica/internal/domain"
)

// resolveID matches input against a set of known IDs: exact match first,
// then unique prefix. Names is an optional parallel lookup (scene names,
// character names) tried before prefixes.
func resolveID(kind, input string, ids []string, names map[string]string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	for id, name := range names {
		if strings.EqualFold(name, input) {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func (a *App) resolveSceneID(input string) (string, error) {
	scenes := a.Store.Scenes()
	ids := make([]string, len(scenes))
	names := make(map[string]string, len(scenes))
	for i, sc := range scenes {
		ids[i] = sc.ID
		names[sc.ID] = sc.Name
	}
	return resolveID("scene", input, ids, names)
}

func (a *App) resolveTabID(input string) (string, error) {
	tabs := a.Store.DraftTabs()
	ids := make([]string, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	return resolveID("draft tab", input, ids, nil)
}

func (a *App) resolveCharacterID(input string) (string, error) {
	chars := a.Store.Characters()
	ids := make([]string, len(chars))
	names := make(map[string]string, len(chars))
	for i, c := range chars {
		ids[i] = c.ID
		names[c.ID] = c.Name
	}
	return resolveID("character", input, ids, names)
}

func (a *App) resolveStarID(input string) (string, error) {
	stars := a.Store.Stars()
	ids := make([]string, len(stars))
	for i, st := range stars {
		ids[i] = st.ID
	}
	return resolveID("star", input, ids, nil)
}

func (a *App) resolveEventID(tab *domain.DraftTab, input string) (string, error) {
	ids := make([]string, len(tab.Timeline))
	for i := range tab.Timeline {
		ids[i] = tab.Timeline[i].ID
	}
	return resolveID("event", input, ids, nil)
}

// characterNames returns an ID-to-name lookup for every character.
func (a *App) characterNames() map[string]string {
	names := make(map[string]string)
	for _, c := range a.Store.Characters() {
		names[c.ID] = c.Name
	}
	return names
}
