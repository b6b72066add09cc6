package contract

import "time"

type MoodLogRequest struct {
	UserID string `validate:"required"`
	// Mood is a mood name or one of its emoji aliases.
	Mood string `validate:"required"`
	Note string `validate:"max=500"`
	// Day defaults to today in UTC.
	Day *time.Time
}

type MoodErrorCode string

const (
	ErrInvalidMood        MoodErrorCode = "INVALID_MOOD"
	ErrInvalidMoodRequest MoodErrorCode = "INVALID_REQUEST"
)

type MoodError struct {
	Code    MoodErrorCode
	Message string
}

func (e *MoodError) Error() string {
	return string(e.Code) + ": " + e.Message
}
