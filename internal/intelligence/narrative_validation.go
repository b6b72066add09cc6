package intelligence

import (
	"errors"
	"fmt"
	"strings"
)

const maxSectionLen = 600

// ValidateNarrative rejects model output that is empty, oversized or talks
// about mood when the trace has none.
func ValidateNarrative(trace NarrativeTrace) func(Narrative) error {
	return func(n Narrative) error {
		if strings.TrimSpace(n.Overview) == "" {
			return errors.New("overview is required")
		}
		for name, s := range map[string]string{
			"overview":   n.Overview,
			"tests":      n.Tests,
			"mood":       n.Mood,
			"next_steps": n.NextSteps,
		} {
			if len(s) > maxSectionLen {
				return fmt.Errorf("%s exceeds %d characters", name, maxSectionLen)
			}
		}
		if !trace.HasMood() && strings.TrimSpace(n.Mood) != "" {
			return errors.New("mood section present without mood data")
		}
		return nil
	}
}
