package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_TimelineTimeoutMatchesGlobalDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60000, cfg.Tasks[TaskSceneTimeline].TimeoutMs)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("SPICA_LLM_TIMEOUT_MS", "9000")
	t.Setenv("SPICA_LLM_TIMELINE_TIMEOUT_MS", "15000")
	t.Setenv("SPICA_LLM_DESCRIPTION_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskSceneTimeline))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskEventDescription))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("SPICA_LLM_TIMELINE_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 60000, cfg.TaskTimeout(TaskSceneTimeline))
}

func TestLoadConfig_EndpointAndModelOverrides(t *testing.T) {
	t.Setenv("SPICA_LLM_ENDPOINT", "http://remote:11434")
	t.Setenv("SPICA_LLM_MODEL", "mistral")
	t.Setenv("SPICA_LLM_ENABLED", "false")

	cfg := LoadConfig()

	assert.Equal(t, "http://remote:11434", cfg.Endpoint)
	assert.Equal(t, "mistral", cfg.Model)
	assert.False(t, cfg.Enabled)
}
