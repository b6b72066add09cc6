package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/scoring"
)

// Input is everything one aggregation run reads. Now anchors every time
// window, so identical input always builds an identical profile.
type Input struct {
	UserID      string
	History     []domain.ScoredResult
	Moods       []domain.MoodEntry
	Instruments InstrumentLookup
	Now         time.Time
}

// Build derives the profile content from history and moods. Identity,
// timestamps and narrative are left for the caller.
func Build(in Input, th Thresholds) domain.MentalHealthProfile {
	daily := LatestPerDay(in.Moods)
	active := ActiveDays(in.History, in.Moods, in.Now, th.EngagementDays)

	p := domain.MentalHealthProfile{
		UserID:    in.UserID,
		ChartData: ChartSeries(in.History, daily, in.Instruments),
		Stats:     computeStats(in.History, daily),
	}

	if len(in.History) == 0 {
		p.Phase = domain.PhaseColdStart
		p.RiskLevel = domain.RiskUnknown
		p.MoodTrend = domain.TrendUnknown
		p.Signals = domain.Signals{
			SeverityRisk:   domain.RiskUnknown,
			MoodTrend:      domain.TrendUnknown,
			MoodRisk:       domain.RiskUnknown,
			ActiveDays:     active,
			EngagementDays: th.EngagementDays,
			MoodWindowDays: th.MoodWindowDays,
		}
		p.State = domain.StateBalanced
		if active < th.InactiveBelow {
			p.State = domain.StateInactive
		}
		p.Recommendations = []domain.Recommendation{{
			Kind:         domain.RecommendTakeTest,
			Text:         "Take a first test to start building your profile.",
			InstrumentID: th.StarterTestID,
			Priority:     3,
		}}
		p.RecommendationText = RenderRecommendations(p.Recommendations)
		return p
	}

	p.Phase = domain.PhaseSteady
	if len(daily) == 0 {
		p.Phase = domain.PhaseTestsOnly
	}

	sev := ComputeSeverity(in.History, in.Instruments, th.SeverityWindow)
	mood := ComputeMoodTrend(daily, in.Now, th)
	sevRisk := SeverityRisk(sev, th)
	moodRisk := MoodRisk(mood)

	p.RiskLevel = MoreSevere(sevRisk, moodRisk)
	p.MoodTrend = mood.Trend
	p.Signals = domain.Signals{
		Severity:         sev.Overall,
		DomainSeverity:   sev.ByDomain,
		SeverityRisk:     sevRisk,
		MoodRecent:       mood.Recent,
		MoodPrior:        mood.Prior,
		MoodDelta:        mood.Delta,
		MoodTrend:        mood.Trend,
		DecliningSharply: mood.DecliningSharply,
		MoodRisk:         moodRisk,
		ActiveDays:       active,
		EngagementDays:   th.EngagementDays,
		MoodWindowDays:   th.MoodWindowDays,
	}
	p.State = DeriveState(StateInput{
		SeverityRisk:     sevRisk,
		DecliningSharply: mood.DecliningSharply,
		Trend:            mood.Trend,
		ActiveDays:       active,
	}, th)
	p.Recommendations = rankRecommendations(in, p, len(daily) > 0)
	p.RecommendationText = RenderRecommendations(p.Recommendations)
	return p
}

func rankRecommendations(in Input, p domain.MentalHealthProfile, hasMoods bool) []domain.Recommendation {
	var recs []domain.Recommendation

	if p.RiskLevel == domain.RiskHigh {
		recs = append(recs, domain.Recommendation{
			Kind:     domain.RecommendSeekSupport,
			Text:     "Your recent results suggest significant distress. Consider reaching out to a mental health professional or someone you trust.",
			Priority: 5,
		})
	}
	if p.Signals.MoodTrend == domain.TrendDeclining {
		recs = append(recs, domain.Recommendation{
			Kind:     domain.RecommendPractice,
			Text:     "Your mood has dipped compared with the days before. A short breathing or grounding exercise may help.",
			Priority: 4,
		})
	}
	recs = append(recs, followUps(in)...)
	if p.State == domain.StateInactive {
		recs = append(recs, domain.Recommendation{
			Kind:     domain.RecommendPractice,
			Text:     "Short, regular check-ins make trends visible. Try logging something a few times this week.",
			Priority: 3,
		})
	}
	if !hasMoods {
		recs = append(recs, domain.Recommendation{
			Kind:     domain.RecommendLogMood,
			Text:     "Log your mood daily so changes over time can be tracked.",
			Priority: 2,
		})
	}
	if len(recs) == 0 {
		recs = append(recs, domain.Recommendation{
			Kind:     domain.RecommendPractice,
			Text:     "Things look steady. Keep up the routines that are working for you.",
			Priority: 1,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority > recs[j].Priority })
	return recs
}

// followUps suggests the next instruments for each instrument's latest
// result: those named by its tier, then those its recommendation rules fired.
func followUps(in Input) []domain.Recommendation {
	var recs []domain.Recommendation
	seenInstrument := map[string]bool{}
	suggested := map[string]bool{}
	suggest := func(from *domain.Instrument, id string, priority int) {
		if suggested[id] {
			return
		}
		suggested[id] = true
		title := id
		if next, ok := in.Instruments.Get(id); ok {
			title = next.Title
		}
		recs = append(recs, domain.Recommendation{
			Kind:         domain.RecommendFollowUp,
			Text:         "Based on your " + from.Title + " result, consider taking " + title + ".",
			InstrumentID: id,
			Priority:     priority,
		})
	}

	for _, r := range NewestFirst(in.History) {
		if seenInstrument[r.InstrumentID] {
			continue
		}
		seenInstrument[r.InstrumentID] = true
		inst, ok := in.Instruments.Get(r.InstrumentID)
		if !ok {
			continue
		}
		if tier, ok := inst.Tier(r.Classification.TierID); ok {
			priority := 2
			if !r.Unscored && inst.Normalize(r.Overall) >= 0.5 {
				priority = 4
			}
			for _, id := range tier.FollowUps {
				suggest(inst, id, priority)
			}
		}
		for _, id := range r.RecommendedTests {
			suggest(inst, id, 3)
		}
	}
	return recs
}

// RenderRecommendations formats the ranked list as a bullet list.
func RenderRecommendations(recs []domain.Recommendation) string {
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = "- " + r.Text
	}
	return strings.Join(lines, "\n")
}

// ChartSeries builds one point per day that has a test or a mood entry.
func ChartSeries(history []domain.ScoredResult, daily []domain.MoodEntry, instruments InstrumentLookup) []domain.ChartPoint {
	type acc struct {
		tests    int
		sevSum   float64
		sevCount int
		mood     *domain.MoodEntry
	}
	days := map[string]*acc{}
	get := func(key string) *acc {
		a, ok := days[key]
		if !ok {
			a = &acc{}
			days[key] = a
		}
		return a
	}

	for _, r := range NewestFirst(history) {
		a := get(dayStart(r.CreatedAt).Format(domain.DayLayout))
		a.tests++
		if r.Unscored {
			continue
		}
		if inst, ok := instruments.Get(r.InstrumentID); ok && inst.HasSeverity() {
			a.sevSum += inst.Normalize(r.Overall)
			a.sevCount++
		}
	}
	for i := range daily {
		get(daily[i].DayKey()).mood = &daily[i]
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]domain.ChartPoint, 0, len(keys))
	for _, k := range keys {
		a := days[k]
		pt := domain.ChartPoint{Date: k, Tests: a.tests}
		if a.sevCount > 0 {
			s := scoring.Round2(a.sevSum / float64(a.sevCount))
			pt.Severity = &s
		}
		if a.mood != nil {
			v := a.mood.Mood.Value()
			pt.MoodValue = &v
			pt.Mood = a.mood.Mood
		}
		points = append(points, pt)
	}
	return points
}

func computeStats(history []domain.ScoredResult, daily []domain.MoodEntry) domain.ProfileStats {
	stats := domain.ProfileStats{
		TotalTests:    len(history),
		TotalMoodDays: len(daily),
	}
	for _, r := range history {
		if stats.LastTestAt == nil || r.CreatedAt.After(*stats.LastTestAt) {
			t := r.CreatedAt
			stats.LastTestAt = &t
		}
	}
	for _, m := range daily {
		if stats.LastMoodAt == nil || m.CreatedAt.After(*stats.LastMoodAt) {
			t := m.CreatedAt
			stats.LastMoodAt = &t
		}
	}
	return stats
}
