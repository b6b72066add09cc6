package contract

import (
	"time"

	"github.com/alexanderramin/psyche/internal/domain"
)

type SubmitRequest struct {
	InstrumentID string `validate:"required"`
	UserID       string `validate:"required"`
	Answers      domain.AnswerSet
	// SubmittedAt overrides the clock; nil means now.
	SubmittedAt *time.Time
}

func NewSubmitRequest(instrumentID, userID string, answers domain.AnswerSet) SubmitRequest {
	return SubmitRequest{
		InstrumentID: instrumentID,
		UserID:       userID,
		Answers:      answers,
	}
}

// ProfileRefreshStatus reports what happened to the profile after a
// submission.
type ProfileRefreshStatus string

const (
	ProfileRefreshed ProfileRefreshStatus = "refreshed"
	ProfileFailed    ProfileRefreshStatus = "failed"
	ProfileSkipped   ProfileRefreshStatus = "skipped"
)

// SubmitResponse always carries the scored result and interpretation, even
// when storing or refreshing failed.
type SubmitResponse struct {
	Result         domain.ScoredResult         `json:"result"`
	Interpretation domain.Interpretation       `json:"interpretation"`
	Stored         bool                        `json:"stored"`
	Profile        *domain.MentalHealthProfile `json:"profile,omitempty"`
	ProfileRefresh ProfileRefreshStatus        `json:"profile_refresh"`
	Warnings       []string                    `json:"warnings,omitempty"`
}

type SubmitErrorCode string

const (
	ErrUnknownInstrument SubmitErrorCode = "UNKNOWN_INSTRUMENT"
	ErrInvalidRequest    SubmitErrorCode = "INVALID_REQUEST"
	ErrEmptyAnswers      SubmitErrorCode = "EMPTY_ANSWERS"
)

type SubmitError struct {
	Code    SubmitErrorCode
	Message string
}

func (e *SubmitError) Error() string {
	return string(e.Code) + ": " + e.Message
}
