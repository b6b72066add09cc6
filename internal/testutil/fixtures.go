package testutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/google/uuid"
)

// Instrument options
type InstrumentOption func(*domain.Instrument)

func WithInstrumentID(id string) InstrumentOption {
	return func(i *domain.Instrument) {
		i.ID = id
	}
}

func WithDomain(d string) InstrumentOption {
	return func(i *domain.Instrument) {
		i.Domain = d
	}
}

func WithScale(min, max float64) InstrumentOption {
	return func(i *domain.Instrument) {
		i.Scale = domain.Scale{Min: min, Max: max}
	}
}

func WithPolarity(p domain.Polarity) InstrumentOption {
	return func(i *domain.Instrument) {
		i.Polarity = p
	}
}

func WithCutoffs(cutoffs ...float64) InstrumentOption {
	return func(i *domain.Instrument) {
		i.Policy.Cutoffs = cutoffs
	}
}

func WithLevelTemplates(t domain.LevelTemplates) InstrumentOption {
	return func(i *domain.Instrument) {
		i.Templates.Level = &t
	}
}

func WithSubscaleTemplates(dim string, t domain.LevelTemplates) InstrumentOption {
	return func(i *domain.Instrument) {
		if i.Templates.Subscales == nil {
			i.Templates.Subscales = map[string]domain.LevelTemplates{}
		}
		i.Templates.Subscales[dim] = t
	}
}

func WithRecommendation(rule domain.RecommendationRule) InstrumentOption {
	return func(i *domain.Instrument) {
		i.Recommendations = append(i.Recommendations, rule)
	}
}

func WithReverse(questionIDs ...string) InstrumentOption {
	return func(i *domain.Instrument) {
		rev := map[string]bool{}
		for _, id := range questionIDs {
			rev[id] = true
		}
		for k := range i.Questions {
			if rev[i.Questions[k].ID] {
				i.Questions[k].Reverse = true
			}
		}
	}
}

// NewTestSeverityInstrument builds a single-dimension severity instrument on a
// 0..3 scale with nQuestions items q1..qN and tiers minimal/mild/moderate/severe.
func NewTestSeverityInstrument(nQuestions int, opts ...InstrumentOption) *domain.Instrument {
	inst := &domain.Instrument{
		ID:         "sev",
		Title:      "Severity Scale",
		Domain:     "anxiety",
		Scale:      domain.Scale{Min: 0, Max: 3},
		Dimensions: []domain.Dimension{{ID: "total", Label: "Total"}},
		Policy: domain.Policy{
			Kind:    domain.PolicySeverityTier,
			Cutoffs: []float64{0.75, 1.5, 2.25},
			Tiers: []domain.Tier{
				{ID: "minimal", Label: "Minimal"},
				{ID: "mild", Label: "Mild"},
				{ID: "moderate", Label: "Moderate"},
				{ID: "severe", Label: "Severe"},
			},
		},
	}
	for n := 1; n <= nQuestions; n++ {
		inst.Questions = append(inst.Questions, domain.Question{
			ID:        fmt.Sprintf("q%d", n),
			Text:      fmt.Sprintf("Question %d", n),
			Dimension: "total",
		})
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// NewTestTypeInstrument builds a type-code instrument on a 1..5 scale with
// midpoint 3. Each entry in dims is "ID:HighLow", e.g. "EI:EI".
func NewTestTypeInstrument(questionsPerDim int, dims []string, opts ...InstrumentOption) *domain.Instrument {
	inst := &domain.Instrument{
		ID:     "type",
		Title:  "Type Indicator",
		Domain: "personality",
		Scale:  domain.Scale{Min: 1, Max: 5},
		Policy: domain.Policy{Kind: domain.PolicyTypeCode, Midpoint: 3},
	}
	for _, d := range dims {
		id, letters, _ := strings.Cut(d, ":")
		inst.Dimensions = append(inst.Dimensions, domain.Dimension{
			ID:      id,
			Label:   id,
			Letters: &domain.LetterPair{High: letters[:1], Low: letters[1:]},
		})
		for n := 1; n <= questionsPerDim; n++ {
			inst.Questions = append(inst.Questions, domain.Question{
				ID:        fmt.Sprintf("%s%d", id, n),
				Text:      fmt.Sprintf("%s question %d", id, n),
				Dimension: id,
			})
		}
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Result options
type ResultOption func(*domain.ScoredResult)

func WithUser(userID string) ResultOption {
	return func(r *domain.ScoredResult) {
		r.UserID = userID
	}
}

func WithCreatedAt(t time.Time) ResultOption {
	return func(r *domain.ScoredResult) {
		r.CreatedAt = t
	}
}

func WithTier(idx int, id string) ResultOption {
	return func(r *domain.ScoredResult) {
		r.Classification = domain.Classification{
			Kind:      domain.PolicySeverityTier,
			TierIndex: idx,
			TierID:    id,
		}
	}
}

// NewTestResult creates a stored-looking result for instrumentID with the
// given overall score on a single "total" dimension.
func NewTestResult(instrumentID string, overall float64, opts ...ResultOption) *domain.ScoredResult {
	r := &domain.ScoredResult{
		ID:           uuid.New().String(),
		UserID:       "user-1",
		InstrumentID: instrumentID,
		Overall:      overall,
		Dimensions:   map[string]float64{"total": overall},
		Answered:     1,
		Classification: domain.Classification{
			Kind: domain.PolicySeverityTier,
		},
		CreatedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestMood creates a mood entry for the given day at 20:00 UTC.
func NewTestMood(userID string, day time.Time, mood domain.Mood) *domain.MoodEntry {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return &domain.MoodEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Day:       d,
		Mood:      mood,
		CreatedAt: d.Add(20 * time.Hour),
	}
}

func NewTestContent(id, category string) *domain.ContentItem {
	return &domain.ContentItem{
		ID:         id,
		Title:      "Content " + id,
		Category:   category,
		Type:       "exercise",
		Difficulty: "easy",
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
