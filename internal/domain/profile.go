package domain

import "time"

// MentalHealthProfile is the single evolving aggregate per user. Its ID is
// assigned on first write and preserved by every later upsert.
type MentalHealthProfile struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	Phase              AggregationPhase `json:"phase"`
	CombinedReport     string           `json:"combined_report"`
	NarrativeSource    NarrativeSource  `json:"narrative_source"`
	NarrativeDegraded  bool             `json:"narrative_degraded"`
	ChartData          []ChartPoint     `json:"chart_data"`
	RiskLevel          RiskLevel        `json:"risk_level"`
	MoodTrend          Trend            `json:"mood_trend"`
	State              ProfileState     `json:"state"`
	Signals            Signals          `json:"signals"`
	Recommendations    []Recommendation `json:"recommendations"`
	RecommendationText string           `json:"recommendation_text"`
	Stats              ProfileStats     `json:"stats"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ChartPoint is one day of the profile chart series.
type ChartPoint struct {
	Date      string   `json:"date"`
	Tests     int      `json:"tests"`
	Severity  *float64 `json:"severity,omitempty"`
	MoodValue *float64 `json:"mood_value,omitempty"`
	Mood      Mood     `json:"mood,omitempty"`
}

// Signals are the derived inputs behind risk and state.
type Signals struct {
	Severity         *float64           `json:"severity,omitempty"`
	DomainSeverity   map[string]float64 `json:"domain_severity,omitempty"`
	SeverityRisk     RiskLevel          `json:"severity_risk"`
	MoodRecent       *float64           `json:"mood_recent,omitempty"`
	MoodPrior        *float64           `json:"mood_prior,omitempty"`
	MoodDelta        *float64           `json:"mood_delta,omitempty"`
	MoodTrend        Trend              `json:"mood_trend"`
	DecliningSharply bool               `json:"declining_sharply"`
	MoodRisk         RiskLevel          `json:"mood_risk"`
	ActiveDays       int                `json:"active_days"`
	// Window lengths the signals above were computed over.
	EngagementDays int `json:"engagement_days"`
	MoodWindowDays int `json:"mood_window_days"`
}

type RecommendationKind string

const (
	RecommendTakeTest    RecommendationKind = "take_test"
	RecommendFollowUp    RecommendationKind = "follow_up"
	RecommendLogMood     RecommendationKind = "log_mood"
	RecommendSeekSupport RecommendationKind = "seek_support"
	RecommendPractice    RecommendationKind = "practice"
)

// Recommendation is one ranked entry of the profile's suggestion list.
type Recommendation struct {
	Kind         RecommendationKind `json:"kind"`
	Text         string             `json:"text"`
	InstrumentID string             `json:"instrument_id,omitempty"`
	Priority     int                `json:"priority"`
}

type ProfileStats struct {
	TotalTests    int        `json:"total_tests"`
	TotalMoodDays int        `json:"total_mood_days"`
	LastTestAt    *time.Time `json:"last_test_at,omitempty"`
	LastMoodAt    *time.Time `json:"last_mood_at,omitempty"`
}
