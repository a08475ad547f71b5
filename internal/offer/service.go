package offer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fkhayef/popbarter/pkg/apperr"
)

// Common errors
var (
	ErrOfferNotFound     = apperr.New(apperr.CodeNotFound, "offer not found")
	ErrMissingFields     = apperr.New(apperr.CodeValidation, "user, offer, preset, tokenAmount and cap are required")
	ErrTokenAmountTooLow = apperr.New(apperr.CodeValidation, "tokenAmount must be at least 1")
	ErrTokensExceedCap   = apperr.New(apperr.CodeValidation, "tokenAmount exceeds cap")
)

// CapResolver settles which cap applies to the poster
type CapResolver interface {
	ResolveCap(ctx context.Context, username, presetName string, claimed int64) (int64, error)
}

// Service handles offer board logic
type Service struct {
	repo   Repository
	caps   CapResolver
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new offer service.
// A nil caps resolver accepts client caps as sent.
func NewService(repo Repository, caps CapResolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		caps:   caps,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every offer, revealed or not
func (s *Service) List(ctx context.Context) ([]*Offer, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	return offers, nil
}

// Create validates and posts an offer bounded by the poster's cap
func (s *Service) Create(ctx context.Context, req *CreateOfferRequest) (*Offer, error) {
	if strings.TrimSpace(req.User) == "" || strings.TrimSpace(req.Offer) == "" ||
		strings.TrimSpace(req.Preset) == "" || req.TokenAmount == nil || req.Cap == nil {
		return nil, ErrMissingFields
	}
	if *req.TokenAmount < 1 {
		return nil, ErrTokenAmountTooLow
	}

	capValue := *req.Cap
	if s.caps != nil {
		var err error
		if capValue, err = s.caps.ResolveCap(ctx, req.User, req.Preset, *req.Cap); err != nil {
			return nil, err
		}
	}
	if *req.TokenAmount > capValue {
		return nil, ErrTokensExceedCap
	}

	reveal := true
	if req.Reveal != nil {
		reveal = *req.Reveal
	}

	o, err := s.repo.Create(ctx, &Offer{
		ID:          uuid.NewString(),
		User:        req.User,
		Offer:       req.Offer,
		Reveal:      reveal,
		Preset:      req.Preset,
		TokenAmount: *req.TokenAmount,
		Cap:         capValue,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, unavailable(err)
	}

	s.logger.InfoContext(ctx, "offer posted",
		"offer_id", o.ID,
		"user", o.User,
		"token_amount", o.TokenAmount,
		"cap", o.Cap,
	)
	return o, nil
}

// Remove deletes an offer by ID
func (s *Service) Remove(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return unavailable(err)
	}
	if !removed {
		return ErrOfferNotFound
	}

	s.logger.InfoContext(ctx, "offer removed", "offer_id", id)
	return nil
}

func unavailable(err error) error {
	return apperr.Wrap(apperr.CodeUnavailable, "storage unavailable", err)
}
