package barter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/popbarter/internal/random"
	"github.com/fkhayef/popbarter/pkg/apperr"
)

// Common errors
var (
	ErrBarterNotFound   = apperr.New(apperr.CodeNotFound, "barter not found")
	ErrProgressPending  = apperr.New(apperr.CodeStateConflict, "progress already pending approval")
	ErrNothingToApprove = apperr.New(apperr.CodeStateConflict, "no pending progress to approve")
	ErrConcurrentChange = apperr.New(apperr.CodeStateConflict, "barter changed concurrently, retry")
	ErrTokensExceedCap  = apperr.New(apperr.CodeValidation, "yourTokensGiven exceeds yourCap")
	ErrToUserRequired   = apperr.New(apperr.CodeValidation, "toUser is required")
	ErrUsernameRequired = apperr.New(apperr.CodeValidation, "username is required")
	ErrNegativeAmount   = apperr.New(apperr.CodeValidation, "token amounts, caps and expenseEstimate must be non-negative")
	ErrInvalidDate      = apperr.New(apperr.CodeValidation, "date must be YYYY-MM-DD")
	ErrEstimateTooLarge = apperr.New(apperr.CodeValidation, "expenseEstimate must be a finite number no larger than 1e15")
	ErrEstimateOverflow = apperr.New(apperr.CodeStateConflict, "day outcome would push expenseEstimate past 1e15")
)

const dateLayout = "2006-01-02"

// CapResolver settles which cap applies to a party.
// claimed is the cap the client sent; implementations may override it with a
// cap the server already knows for username or presetName.
type CapResolver interface {
	ResolveCap(ctx context.Context, username, presetName string, claimed int64) (int64, error)
}

// Service handles barter ledger and progression logic
type Service struct {
	repo   Repository
	caps   CapResolver
	rng    random.Source
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new barter service.
// A nil caps resolver accepts client caps as sent.
func NewService(repo Repository, caps CapResolver, rng random.Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		caps:   caps,
		rng:    rng,
		logger: logger,
		now:    time.Now,
	}
}

// ListBarters returns every barter in a user's books in creation order
func (s *Service) ListBarters(ctx context.Context, username string) ([]*Barter, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	barters, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, unavailable(err)
	}
	return barters, nil
}

// CreateBarter validates and records a new barter in username's books
func (s *Service) CreateBarter(ctx context.Context, username string, req *CreateBarterRequest) (*Barter, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	if strings.TrimSpace(req.ToUser) == "" {
		return nil, ErrToUserRequired
	}
	if req.YourTokensGiven < 0 || req.OtherTokensReceived < 0 ||
		req.YourCap < 0 || req.OtherCap < 0 || req.ExpenseEstimate < 0 {
		return nil, ErrNegativeAmount
	}
	if !estimateInRange(req.ExpenseEstimate) {
		return nil, ErrEstimateTooLarge
	}

	now := s.now().UTC()
	date, err := normalizeDate(req.Date, now)
	if err != nil {
		return nil, err
	}

	yourCap, otherCap := req.YourCap, req.OtherCap
	if s.caps != nil {
		if yourCap, err = s.caps.ResolveCap(ctx, username, req.YourPreset, req.YourCap); err != nil {
			return nil, err
		}
		if otherCap, err = s.caps.ResolveCap(ctx, req.ToUser, req.OtherPreset, req.OtherCap); err != nil {
			return nil, err
		}
	}

	if req.YourTokensGiven > yourCap {
		return nil, ErrTokensExceedCap
	}

	fromUser := req.FromUser
	if strings.TrimSpace(fromUser) == "" {
		fromUser = username
	}

	b := &Barter{
		ID:                  uuid.NewString(),
		Username:            username,
		FromUser:            fromUser,
		ToUser:              req.ToUser,
		YourPreset:          req.YourPreset,
		OtherPreset:         req.OtherPreset,
		YourTokensGiven:     req.YourTokensGiven,
		OtherTokensReceived: req.OtherTokensReceived,
		YourCap:             yourCap,
		OtherCap:            otherCap,
		Date:                date,
		ExpenseEstimate:     req.ExpenseEstimate,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, unavailable(err)
	}

	s.logger.InfoContext(ctx, "barter created",
		"username", username,
		"barter_id", created.ID,
		"to_user", created.ToUser,
		"tokens_given", created.YourTokensGiven,
		"your_cap", created.YourCap,
	)
	return created, nil
}

// ProgressDay simulates one business day on an idle barter.
// It returns the updated barter and the outcome note.
func (s *Service) ProgressDay(ctx context.Context, username, id string) (*Barter, string, error) {
	current, err := s.repo.GetByID(ctx, username, id)
	if err != nil {
		return nil, "", unavailable(err)
	}
	if current == nil {
		return nil, "", ErrBarterNotFound
	}
	if current.ProgressPending {
		return nil, "", ErrProgressPending
	}

	outcome := SimulateDay(s.rng.Float64(), current.ExpenseEstimate)
	if !estimateInRange(outcome.Estimate) {
		return nil, "", ErrEstimateOverflow
	}

	updated, err := s.repo.RecordProgress(ctx, username, id, current.Revision, outcome.Estimate, outcome.Note, s.now())
	if err != nil {
		return nil, "", unavailable(err)
	}
	if updated == nil {
		return nil, "", s.classifyMiss(ctx, username, id, ErrConcurrentChange)
	}

	s.logger.InfoContext(ctx, "barter progressed",
		"username", username,
		"barter_id", id,
		"note", outcome.Note,
		"adjustment", outcome.Adjustment,
		"expense_estimate", updated.ExpenseEstimate,
	)
	return updated, outcome.Note, nil
}

// ApproveProgress accepts a pending progression and returns the barter to idle
func (s *Service) ApproveProgress(ctx context.Context, username, id string) (*Barter, error) {
	updated, err := s.repo.Approve(ctx, username, id, s.now())
	if err != nil {
		return nil, unavailable(err)
	}
	if updated == nil {
		return nil, s.classifyMiss(ctx, username, id, ErrNothingToApprove)
	}

	s.logger.InfoContext(ctx, "barter progress approved",
		"username", username,
		"barter_id", id,
	)
	return updated, nil
}

// classifyMiss explains why a conditional update touched no row
func (s *Service) classifyMiss(ctx context.Context, username, id string, fallback error) error {
	b, err := s.repo.GetByID(ctx, username, id)
	if err != nil {
		return unavailable(err)
	}
	if b == nil {
		return ErrBarterNotFound
	}
	if fallback == ErrConcurrentChange && b.ProgressPending {
		return ErrProgressPending
	}
	return fallback
}

func normalizeDate(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(dateLayout), nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(dateLayout), nil
	}
	return "", ErrInvalidDate
}

func unavailable(err error) error {
	return apperr.Wrap(apperr.CodeUnavailable, "storage unavailable", err)
}
