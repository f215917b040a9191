package intelligence

import (
	"errors"
	"fmt"
	"strings"
)

// PromptType selects a prompt configuration from the registry.
type PromptType string

const (
	PromptSceneTimeline    PromptType = "scene_timeline"
	PromptEventDescription PromptType = "event_description"
)

var ErrUnknownPromptType = errors.New("unknown prompt type")

type promptConfig struct {
	system       string
	template     string
	instructions string
}

var promptConfigs = map[PromptType]promptConfig{
	PromptSceneTimeline: {
		system:       sceneTimelineSystemPrompt,
		template:     sceneTimelineTemplate,
		instructions: sceneTimelineInstructions,
	},
	PromptEventDescription: {
		system:       eventDescriptionSystemPrompt,
		template:     eventDescriptionTemplate,
		instructions: eventDescriptionInstructions,
	},
}

// AssembledPrompt is a ready-to-send system/user prompt pair.
type AssembledPrompt struct {
	System string
	User   string
}

// AssembleInput carries the variable parts substituted into a template.
// TargetEvent is only consulted by templates that reference it.
type AssembleInput struct {
	UserInput   string
	Context     string
	TargetEvent string
}

// AssemblePrompt resolves the prompt type against the registry and fills in
// the template placeholders. Each placeholder is substituted once.
func AssemblePrompt(ptype PromptType, in AssembleInput) (AssembledPrompt, error) {
	cfg, ok := promptConfigs[ptype]
	if !ok {
		return AssembledPrompt{}, fmt.Errorf("%w: %s", ErrUnknownPromptType, ptype)
	}

	user := cfg.template
	user = strings.Replace(user, "{context}", in.Context, 1)
	user = strings.Replace(user, "{targetEvent}", in.TargetEvent, 1)
	user = strings.Replace(user, "{userInput}", in.UserInput, 1)
	user = strings.Replace(user, "{responseInstructions}", cfg.instructions, 1)

	return AssembledPrompt{System: cfg.system, User: user}, nil
}
