package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/psyche/internal/domain"
)

// DeterministicNarrator builds the narrative from the trace alone.
type DeterministicNarrator struct{}

func (DeterministicNarrator) Narrate(_ context.Context, trace NarrativeTrace) (*Narrative, error) {
	return DeterministicNarrative(trace), nil
}

// DeterministicNarrative renders every section from trace data. The mood
// section is omitted unless the trace carries mood data.
func DeterministicNarrative(trace NarrativeTrace) *Narrative {
	n := &Narrative{Source: domain.NarrativeDeterministic}

	if trace.Phase == domain.PhaseColdStart {
		n.Overview = "You have not taken any tests yet, so there is nothing to summarize."
		n.NextSteps = strings.Join(trace.Recommendations, " ")
		return n
	}

	n.Overview = fmt.Sprintf("Overall risk is %s and your current state is %s, with activity on %d of the last %d days.",
		trace.RiskLevel, strings.ReplaceAll(string(trace.State), "_", " "), trace.ActiveDays, trace.EngagementDays)
	n.Tests = testsSection(trace)
	if trace.HasMood() {
		n.Mood = moodSection(trace)
	}
	if len(trace.Recommendations) > 0 {
		n.NextSteps = "Suggested next steps: " + strings.Join(trace.Recommendations, " ")
	}
	return n
}

func testsSection(trace NarrativeTrace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You have completed %d test(s).", trace.TotalTests)
	for i, r := range trace.Results {
		if i == 0 {
			b.WriteString(" Most recent:")
		}
		if r.Unscored {
			fmt.Fprintf(&b, " %s on %s (not scored).", r.Instrument, r.Date)
			continue
		}
		if r.Label != "" {
			fmt.Fprintf(&b, " %s on %s: %s, %.2f.", r.Instrument, r.Date, r.Label, r.Overall)
		} else {
			fmt.Fprintf(&b, " %s on %s: %.2f.", r.Instrument, r.Date, r.Overall)
		}
	}
	return b.String()
}

func moodSection(trace NarrativeTrace) string {
	if trace.MoodTrend == domain.TrendUnknown || trace.MoodRecent == nil || trace.MoodPrior == nil {
		return fmt.Sprintf("You have logged your mood on %d day(s). Keep logging to see how it changes week to week.", trace.TotalMoodDays)
	}
	return fmt.Sprintf("Your mood averaged %.1f out of 5 over the last %d days, against %.1f the %d days before (%s).",
		*trace.MoodRecent, trace.MoodWindowDays, *trace.MoodPrior, trace.MoodWindowDays, trace.MoodTrend)
}
