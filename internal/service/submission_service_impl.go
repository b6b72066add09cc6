package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/db"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/instrument"
	"github.com/alexanderramin/psyche/internal/interpret"
	"github.com/alexanderramin/psyche/internal/repository"
	"github.com/alexanderramin/psyche/internal/scoring"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type submissionService struct {
	instruments *instrument.Registry
	uow         db.UnitOfWork
	profiles    ProfileService
	log         *slog.Logger
	observer    UseCaseObserver
	now         func() time.Time
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	instruments *instrument.Registry,
	uow db.UnitOfWork,
	profiles ProfileService,
	log *slog.Logger,
	observers ...UseCaseObserver,
) SubmissionService {
	return &submissionService{
		instruments: instruments,
		uow:         uow,
		profiles:    profiles,
		log:         loggerOrDefault(log, "submission"),
		observer:    useCaseObserverOrNoop(observers),
		now:         systemNow,
	}
}

// Submit validates the request, then scores and interprets it. Storage and
// profile refresh failures do not fail the call: the response still carries
// the result, with Stored and ProfileRefresh reporting what went wrong.
func (s *submissionService) Submit(ctx context.Context, req contract.SubmitRequest) (resp *contract.SubmitResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"instrument_id": req.InstrumentID,
		"user_id":       req.UserID,
	}
	defer observe(ctx, s.observer, "submit", startedAt, fields, &err)

	inst, err := s.check(req)
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	if req.SubmittedAt != nil {
		createdAt = req.SubmittedAt.UTC()
	}
	result := scoring.Score(inst, req.Answers)
	result.ID = uuid.New().String()
	result.UserID = req.UserID
	result.CreatedAt = createdAt

	interp := interpret.Interpret(inst, result)
	interp.CreatedAt = createdAt

	resp = &contract.SubmitResponse{
		Result:         result,
		Interpretation: interp,
		ProfileRefresh: contract.ProfileSkipped,
	}
	for _, w := range result.Warnings {
		resp.Warnings = append(resp.Warnings, w.Message)
	}
	fields["unscored"] = result.Unscored
	fields["classification"] = result.Classification.Label()

	storeErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteResultRepo(tx).Create(ctx, &resp.Result); err != nil {
			return err
		}
		return repository.NewSQLiteInterpretationRepo(tx).Create(ctx, &resp.Interpretation)
	})
	if storeErr != nil {
		s.log.WarnContext(ctx, "result not stored", "user_id", req.UserID, "instrument_id", req.InstrumentID, "error", storeErr)
		resp.Warnings = append(resp.Warnings, "result could not be saved: "+storeErr.Error())
		fields["stored"] = false
		return resp, nil
	}
	resp.Stored = true
	fields["stored"] = true

	profile, refreshErr := s.profiles.Refresh(ctx, req.UserID)
	if refreshErr != nil {
		s.log.WarnContext(ctx, "profile refresh failed", "user_id", req.UserID, "error", refreshErr)
		resp.ProfileRefresh = contract.ProfileFailed
		resp.Warnings = append(resp.Warnings, "profile could not be refreshed; run profile refresh to retry")
		return resp, nil
	}
	resp.Profile = profile
	resp.ProfileRefresh = contract.ProfileRefreshed
	return resp, nil
}

func (s *submissionService) check(req contract.SubmitRequest) (*domain.Instrument, error) {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &contract.SubmitError{
				Code:    contract.ErrInvalidRequest,
				Message: fmt.Sprintf("%s is required", verrs[0].Field()),
			}
		}
		return nil, &contract.SubmitError{Code: contract.ErrInvalidRequest, Message: err.Error()}
	}
	inst, ok := s.instruments.Get(req.InstrumentID)
	if !ok {
		return nil, &contract.SubmitError{
			Code:    contract.ErrUnknownInstrument,
			Message: fmt.Sprintf("no instrument with id %q", req.InstrumentID),
		}
	}
	if len(req.Answers) == 0 {
		return nil, &contract.SubmitError{Code: contract.ErrEmptyAnswers, Message: "at least one answer is required"}
	}
	return inst, nil
}

type resultService struct {
	results         repository.ResultRepo
	interpretations repository.InterpretationRepo
}

// NewResultService creates a new ResultService.
func NewResultService(results repository.ResultRepo, interpretations repository.InterpretationRepo) ResultService {
	return &resultService{results: results, interpretations: interpretations}
}

func (s *resultService) List(ctx context.Context, userID string, limit int) ([]*domain.ScoredResult, error) {
	return s.results.ListByUser(ctx, userID, limit)
}

func (s *resultService) Get(ctx context.Context, id string) (*domain.ScoredResult, *domain.Interpretation, error) {
	r, err := s.results.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	in, err := s.interpretations.GetByResult(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return r, in, nil
}
