package llm

import "time"

// TaskType names a kind of generation call so each can carry its own
// sampling and timeout settings.
type TaskType string

const (
	TaskNarrative TaskType = "narrative"
)

type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // overrides LLMConfig.Timeout if > 0
}

type LLMConfig struct {
	Enabled    bool
	Endpoint   string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a disabled client configuration pointing at a local
// Ollama server.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		Timeout:    10 * time.Second,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskNarrative: {Temperature: 0.3, MaxTokens: 768, Timeout: 8 * time.Second},
		},
	}
}

// TaskTimeout is the per-attempt deadline for task.
func (c LLMConfig) TaskTimeout(task TaskType) time.Duration {
	if tc, ok := c.Tasks[task]; ok && tc.Timeout > 0 {
		return tc.Timeout
	}
	return c.Timeout
}
