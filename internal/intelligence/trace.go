package intelligence

import (
	"github.com/alexanderramin/psyche/internal/aggregate"
	"github.com/alexanderramin/psyche/internal/domain"
)

// maxTraceResults bounds how many results are described to the narrator.
const maxTraceResults = 5

// NarrativeTrace is the flattened, JSON-serializable view of a profile that a
// narrator may describe. Nothing outside the trace may appear in a narrative.
type NarrativeTrace struct {
	Phase           domain.AggregationPhase `json:"phase"`
	RiskLevel       domain.RiskLevel        `json:"risk_level"`
	State           domain.ProfileState     `json:"state"`
	MoodTrend       domain.Trend            `json:"mood_trend"`
	MoodRecent      *float64                `json:"mood_recent,omitempty"`
	MoodPrior       *float64                `json:"mood_prior,omitempty"`
	ActiveDays      int                     `json:"active_days"`
	EngagementDays  int                     `json:"engagement_days"`
	MoodWindowDays  int                     `json:"mood_window_days"`
	TotalTests      int                     `json:"total_tests"`
	TotalMoodDays   int                     `json:"total_mood_days"`
	Results         []ResultTraceItem       `json:"results"`
	Recommendations []string                `json:"recommendations"`
}

type ResultTraceItem struct {
	Instrument string  `json:"instrument"`
	Date       string  `json:"date"`
	Overall    float64 `json:"overall"`
	Label      string  `json:"label,omitempty"`
	Unscored   bool    `json:"unscored,omitempty"`
}

// HasMood reports whether the trace carries any mood data to talk about.
func (t NarrativeTrace) HasMood() bool {
	return t.Phase == domain.PhaseSteady
}

// BuildTrace collects the narrator input from a freshly built profile and the
// history it was built from.
func BuildTrace(p *domain.MentalHealthProfile, history []domain.ScoredResult, instruments aggregate.InstrumentLookup) NarrativeTrace {
	t := NarrativeTrace{
		Phase:          p.Phase,
		RiskLevel:      p.RiskLevel,
		State:          p.State,
		MoodTrend:      p.MoodTrend,
		MoodRecent:     p.Signals.MoodRecent,
		MoodPrior:      p.Signals.MoodPrior,
		ActiveDays:     p.Signals.ActiveDays,
		EngagementDays: p.Signals.EngagementDays,
		MoodWindowDays: p.Signals.MoodWindowDays,
		TotalTests:     p.Stats.TotalTests,
		TotalMoodDays:  p.Stats.TotalMoodDays,
	}
	for i, r := range aggregate.NewestFirst(history) {
		if i == maxTraceResults {
			break
		}
		name := r.InstrumentID
		if inst, ok := instruments.Get(r.InstrumentID); ok {
			name = inst.Title
		}
		t.Results = append(t.Results, ResultTraceItem{
			Instrument: name,
			Date:       r.CreatedAt.UTC().Format(domain.DayLayout),
			Overall:    r.Overall,
			Label:      r.Classification.Label(),
			Unscored:   r.Unscored,
		})
	}
	for _, rec := range p.Recommendations {
		t.Recommendations = append(t.Recommendations, rec.Text)
	}
	return t
}
