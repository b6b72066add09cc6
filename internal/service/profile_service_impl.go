package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/psyche/internal/aggregate"
	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/intelligence"
	"github.com/alexanderramin/psyche/internal/repository"
	"golang.org/x/sync/errgroup"
)

type profileService struct {
	results     repository.ResultRepo
	moods       repository.MoodRepo
	profiles    repository.ProfileRepo
	uow         db.UnitOfWork
	instruments aggregate.InstrumentLookup
	narrator    intelligence.Narrator
	thresholds  aggregate.Thresholds
	log         *slog.Logger
	observer    UseCaseObserver
	now         func() time.Time
}

// NewProfileService creates a new ProfileService. A nil narrator falls back
// to the deterministic one.
func NewProfileService(
	results repository.ResultRepo,
	moods repository.MoodRepo,
	profiles repository.ProfileRepo,
	uow db.UnitOfWork,
	instruments aggregate.InstrumentLookup,
	narrator intelligence.Narrator,
	thresholds aggregate.Thresholds,
	log *slog.Logger,
	observers ...UseCaseObserver,
) ProfileService {
	if narrator == nil {
		narrator = intelligence.DeterministicNarrator{}
	}
	return &profileService{
		results:     results,
		moods:       moods,
		profiles:    profiles,
		uow:         uow,
		instruments: instruments,
		narrator:    narrator,
		thresholds:  thresholds,
		log:         loggerOrDefault(log, "profile"),
		observer:    useCaseObserverOrNoop(observers),
		now:         systemNow,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.MentalHealthProfile, error) {
	p, err := s.profiles.GetByUser(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	// No row yet. Build an unsaved view over whatever is stored, which is
	// a cold start only when the user has no results either.
	history, moods, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Aggregate(ctx, userID, history, moods)
}

func (s *profileService) Refresh(ctx context.Context, userID string) (profile *domain.MentalHealthProfile, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer observe(ctx, s.observer, "refresh-profile", startedAt, fields, &err)

	history, moods, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	fields["results"] = len(history)
	fields["moods"] = len(moods)

	profile, err = s.Aggregate(ctx, userID, history, moods)
	if err != nil {
		return nil, err
	}
	fields["phase"] = profile.Phase
	fields["state"] = profile.State

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProfileRepo(tx).Upsert(ctx, profile)
	})
	if err != nil {
		return nil, fmt.Errorf("storing profile: %w", err)
	}
	return profile, nil
}

// loadHistory reads a user's full result and mood history concurrently.
func (s *profileService) loadHistory(ctx context.Context, userID string) ([]domain.ScoredResult, []domain.MoodEntry, error) {
	var (
		history []*domain.ScoredResult
		moods   []*domain.MoodEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = s.results.ListByUser(gctx, userID, 0)
		if err != nil {
			return fmt.Errorf("loading results: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		moods, err = s.moods.ListByUser(gctx, userID, time.Time{})
		if err != nil {
			return fmt.Errorf("loading moods: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return derefResults(history), derefMoods(moods), nil
}

func (s *profileService) Aggregate(ctx context.Context, userID string, history []domain.ScoredResult, moods []domain.MoodEntry) (*domain.MentalHealthProfile, error) {
	now := s.now()
	p := aggregate.Build(aggregate.Input{
		UserID:      userID,
		History:     history,
		Moods:       moods,
		Instruments: s.instruments,
		Now:         now,
	}, s.thresholds)
	p.CreatedAt = now
	p.UpdatedAt = now

	trace := intelligence.BuildTrace(&p, history, s.instruments)
	narrative, err := s.narrator.Narrate(ctx, trace)
	if err != nil || narrative == nil {
		s.log.WarnContext(ctx, "narrator failed, using deterministic narrative", "user_id", userID, "error", err)
		narrative = intelligence.DeterministicNarrative(trace)
		narrative.Degraded = true
	}
	p.CombinedReport = narrative.Render()
	p.NarrativeSource = narrative.Source
	p.NarrativeDegraded = narrative.Degraded
	return &p, nil
}

func derefResults(in []*domain.ScoredResult) []domain.ScoredResult {
	out := make([]domain.ScoredResult, len(in))
	for i, r := range in {
		out[i] = *r
	}
	return out
}

func derefMoods(in []*domain.MoodEntry) []domain.MoodEntry {
	out := make([]domain.MoodEntry, len(in))
	for i, m := range in {
		out[i] = *m
	}
	return out
}
