package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledWithNarrativeTask(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 8*time.Second, cfg.TaskTimeout(TaskNarrative))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 3 * time.Second
	cfg.Tasks[TaskNarrative] = TaskConfig{Temperature: 0.3}

	assert.Equal(t, 3*time.Second, cfg.TaskTimeout(TaskNarrative))
	assert.Equal(t, 3*time.Second, cfg.TaskTimeout("unknown"))
}
