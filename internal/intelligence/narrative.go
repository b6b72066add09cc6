package intelligence

import (
	"context"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
)

// Narrative is the combined report stored on a profile. The JSON fields are
// the shape requested from the language model.
type Narrative struct {
	Overview  string `json:"overview"`
	Tests     string `json:"tests"`
	Mood      string `json:"mood"`
	NextSteps string `json:"next_steps"`

	Source   domain.NarrativeSource `json:"-"`
	Degraded bool                   `json:"-"`
}

// Render joins the non-empty sections into the combined report text.
func (n *Narrative) Render() string {
	var parts []string
	for _, s := range []string{n.Overview, n.Tests, n.Mood, n.NextSteps} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Narrator turns a trace into a narrative. Implementations never fail the
// caller for enrichment problems; they fall back and mark the result degraded.
type Narrator interface {
	Narrate(ctx context.Context, trace NarrativeTrace) (*Narrative, error)
}
