package domain

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the storage and display format for mood days.
const DayLayout = "2006-01-02"

type Mood string

const (
	MoodGreat   Mood = "great"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodLow     Mood = "low"
	MoodBad     Mood = "bad"
)

var moodValues = map[Mood]float64{
	MoodGreat:   5,
	MoodGood:    4,
	MoodNeutral: 3,
	MoodLow:     2,
	MoodBad:     1,
}

var moodAliases = map[string]Mood{
	"😊": MoodGreat,
	"😴": MoodGood,
	"😐": MoodNeutral,
	"😠": MoodLow,
	"😢": MoodBad,
}

// ParseMood accepts a mood name or one of the emoji aliases.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if m, ok := moodAliases[s]; ok {
		return m, nil
	}
	m := Mood(strings.ToLower(s))
	if _, ok := moodValues[m]; !ok {
		return "", fmt.Errorf("unknown mood %q (expected great, good, neutral, low or bad)", s)
	}
	return m, nil
}

// Value returns the numeric mood on a 1..5 scale. Unknown moods read as neutral.
func (m Mood) Value() float64 {
	if v, ok := moodValues[m]; ok {
		return v
	}
	return moodValues[MoodNeutral]
}

// MoodEntry is one mood rating for a calendar day.
type MoodEntry struct {
	ID        string
	UserID    string
	Day       time.Time
	Mood      Mood
	Note      string
	CreatedAt time.Time
}

// DayKey returns the calendar day of the entry as YYYY-MM-DD.
func (e *MoodEntry) DayKey() string {
	return e.Day.Format(DayLayout)
}
