package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type moodService struct {
	moods    repository.MoodRepo
	profiles ProfileService
	log      *slog.Logger
	observer UseCaseObserver
	now      func() time.Time
}

// NewMoodService returns a MoodService. profiles may be nil; otherwise each
// logged entry also refreshes the user's profile.
func NewMoodService(moods repository.MoodRepo, profiles ProfileService, log *slog.Logger, observers ...UseCaseObserver) MoodService {
	return &moodService{
		moods:    moods,
		profiles: profiles,
		log:      loggerOrDefault(log, "mood"),
		observer: useCaseObserverOrNoop(observers),
		now:      systemNow,
	}
}

func (s *moodService) Log(ctx context.Context, req contract.MoodLogRequest) (entry *domain.MoodEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": req.UserID}
	defer observe(ctx, s.observer, "log-mood", startedAt, fields, &err)

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &contract.MoodError{
				Code:    contract.ErrInvalidMoodRequest,
				Message: fmt.Sprintf("%s failed %q", verrs[0].Field(), verrs[0].Tag()),
			}
		}
		return nil, &contract.MoodError{Code: contract.ErrInvalidMoodRequest, Message: err.Error()}
	}
	mood, err := domain.ParseMood(req.Mood)
	if err != nil {
		return nil, &contract.MoodError{Code: contract.ErrInvalidMood, Message: err.Error()}
	}

	now := s.now()
	day := now
	if req.Day != nil {
		day = *req.Day
	}
	entry = &domain.MoodEntry{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Day:       time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Mood:      mood,
		Note:      req.Note,
		CreatedAt: now,
	}
	if err = s.moods.Create(ctx, entry); err != nil {
		return nil, err
	}
	fields["mood"] = mood
	fields["day"] = entry.DayKey()

	if s.profiles != nil {
		if _, refreshErr := s.profiles.Refresh(ctx, req.UserID); refreshErr != nil {
			s.log.WarnContext(ctx, "profile refresh after mood log failed", "user_id", req.UserID, "error", refreshErr)
		}
	}
	return entry, nil
}

func (s *moodService) ListRecent(ctx context.Context, userID string, days int) ([]*domain.MoodEntry, error) {
	var since time.Time
	if days > 0 {
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		since = today.AddDate(0, 0, -(days - 1))
	}
	return s.moods.ListByUser(ctx, userID, since)
}
