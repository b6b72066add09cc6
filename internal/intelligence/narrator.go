package intelligence

import (
	"context"
	"encoding/json"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/llm"
)

type llmNarrator struct {
	client llm.LLMClient
}

// NewLLMNarrator returns a Narrator backed by client. Any client error,
// timeout or invalid output yields the deterministic narrative marked
// degraded.
func NewLLMNarrator(client llm.LLMClient) Narrator {
	return &llmNarrator{client: client}
}

func (s *llmNarrator) Narrate(ctx context.Context, trace NarrativeTrace) (*Narrative, error) {
	traceJSON, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return degraded(trace), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskNarrative,
		SystemPrompt: narrativeSystemPrompt,
		UserPrompt:   "Here is the profile trace:\n\n" + string(traceJSON),
		JSON:         true,
	})
	if err != nil {
		return degraded(trace), nil
	}

	n, err := llm.ExtractJSON[Narrative](resp.Text, ValidateNarrative(trace))
	if err != nil {
		return degraded(trace), nil
	}
	n.Source = domain.NarrativeLLM
	return &n, nil
}

func degraded(trace NarrativeTrace) *Narrative {
	n := DeterministicNarrative(trace)
	n.Degraded = true
	return n
}

// SelectNarrator picks the LLM narrator when a client is configured and
// reachable, and the deterministic one otherwise.
func SelectNarrator(ctx context.Context, client llm.LLMClient) Narrator {
	if client == nil || !client.Available(ctx) {
		return DeterministicNarrator{}
	}
	return NewLLMNarrator(client)
}
