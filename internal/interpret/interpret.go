package interpret

import (
	"fmt"

	"github.com/alexanderramin/psyche/internal/domain"
)

const (
	fallbackTitle = "About your result"
	fallbackBody  = "Your answers have been recorded. Scores describe how you responded today " +
		"and are not a diagnosis. If anything in this area worries you, consider talking " +
		"with someone you trust or a qualified professional."
)

// Interpret selects interpretation chunks for a scored result. The level
// chunk, if any, comes first, followed by subscale chunks in the instrument's
// declared dimension order. When nothing matches a single generic chunk is
// returned, so the result always holds at least one chunk.
//
// inst may be nil when the result's instrument is no longer known.
func Interpret(inst *domain.Instrument, result domain.ScoredResult) domain.Interpretation {
	out := domain.Interpretation{
		ResultID: result.ID,
		Summary:  Summary(inst, result),
	}
	seen := map[string]bool{}
	add := func(t *domain.ChunkTemplate) {
		if t == nil || seen[t.ID] {
			return
		}
		seen[t.ID] = true
		out.Chunks = append(out.Chunks, domain.InterpretationChunk{
			ID:           t.ID,
			Title:        t.Title,
			Body:         t.Body,
			InstrumentID: result.InstrumentID,
		})
	}

	if inst != nil && !result.Unscored {
		if lvl := inst.Templates.Level; lvl != nil {
			add(lvl.For(lvl.Bucket(result.Overall)))
		}
		for _, d := range inst.Dimensions {
			tmpl, ok := inst.Templates.Subscales[d.ID]
			if !ok {
				continue
			}
			score, scored := result.Dimensions[d.ID]
			if !scored {
				continue
			}
			add(tmpl.For(tmpl.Bucket(score)))
		}
	}

	if len(out.Chunks) == 0 {
		out.Fallback = true
		out.Chunks = []domain.InterpretationChunk{fallbackChunk(result.InstrumentID)}
	}
	return out
}

func fallbackChunk(instrumentID string) domain.InterpretationChunk {
	id := "generic"
	if instrumentID != "" {
		id = instrumentID + "-generic"
	}
	return domain.InterpretationChunk{
		ID:           id,
		Title:        fallbackTitle,
		Body:         fallbackBody,
		InstrumentID: instrumentID,
	}
}

// Summary renders the one-line result summary.
func Summary(inst *domain.Instrument, result domain.ScoredResult) string {
	title := result.InstrumentID
	if inst != nil {
		title = inst.Title
	}
	if result.Unscored {
		return fmt.Sprintf("%s: not enough mapped answers to compute a score.", title)
	}
	if label := result.Classification.Label(); label != "" {
		return fmt.Sprintf("%s: overall %.2f (%s).", title, result.Overall, label)
	}
	return fmt.Sprintf("%s: overall %.2f.", title, result.Overall)
}
