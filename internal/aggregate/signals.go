package aggregate

import (
	"sort"
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
)

// InstrumentLookup resolves instrument definitions by id.
type InstrumentLookup interface {
	Get(id string) (*domain.Instrument, bool)
}

// SeveritySignal is the windowed mean of normalized severity, overall and
// per instrument domain. Values are in [0,1]; 1 is most severe.
type SeveritySignal struct {
	Overall  *float64
	ByDomain map[string]float64
}

// MoodSignal compares the mean mood of the most recent window against the
// window before it.
type MoodSignal struct {
	Recent           *float64
	Prior            *float64
	Delta            *float64
	Trend            domain.Trend
	DecliningSharply bool
}

// NewestFirst returns a copy of history ordered by creation time descending,
// with the id as a tiebreak so the order is total.
func NewestFirst(history []domain.ScoredResult) []domain.ScoredResult {
	sorted := make([]domain.ScoredResult, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// ComputeSeverity averages the normalized overall scores of the most recent
// window severity-tier results. Type-code and unscored results carry no
// severity and are skipped, as are results for unknown instruments.
func ComputeSeverity(history []domain.ScoredResult, instruments InstrumentLookup, window int) SeveritySignal {
	sig := SeveritySignal{ByDomain: map[string]float64{}}
	var overall []float64
	byDomain := map[string][]float64{}

	for _, r := range NewestFirst(history) {
		if r.Unscored {
			continue
		}
		inst, ok := instruments.Get(r.InstrumentID)
		if !ok || !inst.HasSeverity() {
			continue
		}
		v := inst.Normalize(r.Overall)
		if len(overall) < window {
			overall = append(overall, v)
		}
		if len(byDomain[inst.Domain]) < window {
			byDomain[inst.Domain] = append(byDomain[inst.Domain], v)
		}
	}

	if len(overall) > 0 {
		m := mean(overall)
		sig.Overall = &m
	}
	for d, vals := range byDomain {
		sig.ByDomain[d] = mean(vals)
	}
	return sig
}

// SeverityRisk applies each domain's cutoffs and returns the most severe
// level. Unknown when there is no severity data.
func SeverityRisk(sig SeveritySignal, th Thresholds) domain.RiskLevel {
	risk := domain.RiskUnknown
	for d, v := range sig.ByDomain {
		risk = MoreSevere(risk, th.CutoffsFor(d).Level(v))
	}
	return risk
}

// LatestPerDay keeps the most recently created entry for each calendar day,
// ordered by day ascending.
func LatestPerDay(moods []domain.MoodEntry) []domain.MoodEntry {
	latest := map[string]domain.MoodEntry{}
	for _, m := range moods {
		key := m.DayKey()
		prev, ok := latest[key]
		if !ok || m.CreatedAt.After(prev.CreatedAt) ||
			(m.CreatedAt.Equal(prev.CreatedAt) && m.ID > prev.ID) {
			latest[key] = m
		}
	}
	out := make([]domain.MoodEntry, 0, len(latest))
	for _, m := range latest {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayKey() < out[j].DayKey() })
	return out
}

// ComputeMoodTrend compares the last window days (ending today) with the
// window days before that. Both windows need at least one entry; otherwise
// the trend is unknown.
func ComputeMoodTrend(daily []domain.MoodEntry, now time.Time, th Thresholds) MoodSignal {
	sig := MoodSignal{Trend: domain.TrendUnknown}
	today := dayStart(now)
	recentFrom := today.AddDate(0, 0, -(th.MoodWindowDays - 1))
	priorFrom := recentFrom.AddDate(0, 0, -th.MoodWindowDays)

	var recent, prior []float64
	for _, m := range daily {
		d := dayStart(m.Day)
		switch {
		case d.After(today):
			continue
		case !d.Before(recentFrom):
			recent = append(recent, m.Mood.Value())
		case !d.Before(priorFrom):
			prior = append(prior, m.Mood.Value())
		}
	}

	if len(recent) > 0 {
		r := mean(recent)
		sig.Recent = &r
	}
	if len(prior) > 0 {
		p := mean(prior)
		sig.Prior = &p
	}
	if sig.Recent == nil || sig.Prior == nil {
		return sig
	}

	delta := *sig.Recent - *sig.Prior
	sig.Delta = &delta
	switch {
	case delta > th.MoodDeadband:
		sig.Trend = domain.TrendImproving
	case delta < -th.MoodDeadband:
		sig.Trend = domain.TrendDeclining
		sig.DecliningSharply = delta <= -th.MoodSharpDrop
	default:
		sig.Trend = domain.TrendStable
	}
	return sig
}

// MoodRisk maps a mood signal to a risk level.
func MoodRisk(sig MoodSignal) domain.RiskLevel {
	switch {
	case sig.DecliningSharply:
		return domain.RiskHigh
	case sig.Trend == domain.TrendDeclining:
		return domain.RiskMedium
	case sig.Trend == domain.TrendUnknown:
		return domain.RiskUnknown
	default:
		return domain.RiskLow
	}
}

// ActiveDays counts distinct calendar days with a test or mood entry in the
// trailing window ending today.
func ActiveDays(history []domain.ScoredResult, moods []domain.MoodEntry, now time.Time, days int) int {
	today := dayStart(now)
	from := today.AddDate(0, 0, -(days - 1))
	seen := map[string]bool{}
	mark := func(t time.Time) {
		d := dayStart(t)
		if d.Before(from) || d.After(today) {
			return
		}
		seen[d.Format(domain.DayLayout)] = true
	}
	for _, r := range history {
		mark(r.CreatedAt)
	}
	for _, m := range moods {
		mark(m.Day)
	}
	return len(seen)
}

func dayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// mean sums in slice order so the result is reproducible.
func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
