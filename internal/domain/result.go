package domain

import "time"

// AnswerSet maps question ids to numeric responses.
type AnswerSet map[string]float64

// WarningCode identifies a non-fatal scoring issue.
type WarningCode string

const (
	WarnUnmappedQuestion WarningCode = "UNMAPPED_QUESTION"
	WarnInvalidValue     WarningCode = "INVALID_VALUE"
	WarnOutOfRange       WarningCode = "OUT_OF_RANGE"
	WarnEmptyDimension   WarningCode = "EMPTY_DIMENSION"
)

// ScoringWarning records an answer that was skipped or a dimension that
// could not be classified.
type ScoringWarning struct {
	Code       WarningCode `json:"code"`
	QuestionID string      `json:"question_id,omitempty"`
	Dimension  string      `json:"dimension,omitempty"`
	Message    string      `json:"message"`
}

// Classification is a severity tier or a type code, depending on Kind.
type Classification struct {
	Kind      PolicyKind `json:"kind,omitempty"`
	TierID    string     `json:"tier_id,omitempty"`
	TierLabel string     `json:"tier_label,omitempty"`
	TierIndex int        `json:"tier_index"`
	Code      string     `json:"code,omitempty"`
}

// Label returns the human-facing classification text.
func (c Classification) Label() string {
	switch c.Kind {
	case PolicyTypeCode:
		return c.Code
	case PolicySeverityTier:
		if c.TierLabel != "" {
			return c.TierLabel
		}
		return c.TierID
	}
	return ""
}

// ScoredResult is produced once per submission and never mutated.
type ScoredResult struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	InstrumentID   string             `json:"instrument_id"`
	Overall        float64            `json:"overall"`
	Dimensions     map[string]float64 `json:"dimensions"`
	Answered       int                `json:"answered"`
	Classification Classification     `json:"classification"`
	Unscored       bool               `json:"unscored"`
	Warnings       []ScoringWarning   `json:"warnings,omitempty"`
	// RecommendedTests lists instruments suggested by the rules that fired,
	// first occurrence first. RecommendationMessages holds their messages.
	RecommendedTests       []string  `json:"recommended_tests,omitempty"`
	RecommendationMessages []string  `json:"recommendation_messages,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// DimensionScored reports whether a dimension received at least one valid
// answer. A zero score for an absent dimension is not a real low score.
func (r *ScoredResult) DimensionScored(id string) bool {
	_, ok := r.Dimensions[id]
	return ok
}
