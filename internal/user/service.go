package user

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fkhayef/popbarter/pkg/apperr"
)

// Common errors
var (
	ErrProfileNotFound  = apperr.New(apperr.CodeNotFound, "profile not found")
	ErrUnknownPreset    = apperr.New(apperr.CodeValidation, "unknown preset")
	ErrUsernameRequired = apperr.New(apperr.CodeValidation, "username is required")
	ErrNegativeCap      = apperr.New(apperr.CodeValidation, "cap must be non-negative")
)

// PresetCaps looks up the derived cap of a catalog preset
type PresetCaps interface {
	CapFor(name string) (int64, bool)
}

// Service handles profile business logic
type Service struct {
	repo    Repository
	presets PresetCaps
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new profile service with its repository and preset catalog injected
func NewService(repo Repository, presets PresetCaps, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		presets: presets,
		logger:  logger,
		now:     time.Now,
	}
}

// Get retrieves a profile by username
func (s *Service) Get(ctx context.Context, username string) (*Profile, error) {
	p, err := s.repo.Get(ctx, username)
	if err != nil {
		return nil, unavailable(err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// SelectPreset binds a catalog preset to the user and records its cap
func (s *Service) SelectPreset(ctx context.Context, username, presetName string) (*Profile, error) {
	capValue, ok := s.presets.CapFor(presetName)
	if !ok {
		return nil, ErrUnknownPreset
	}
	return s.RecordCap(ctx, username, CapSourcePreset, presetName, capValue)
}

// RecordCap stores a derived cap on the user's profile, creating it if needed
func (s *Service) RecordCap(ctx context.Context, username string, source CapSource, presetName string, popTokenCap int64) (*Profile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	if popTokenCap < 0 {
		return nil, ErrNegativeCap
	}

	p, err := s.repo.Upsert(ctx, &Profile{
		Username:    username,
		PresetName:  presetName,
		PopTokenCap: popTokenCap,
		CapSource:   source,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, unavailable(err)
	}

	s.logger.InfoContext(ctx, "cap recorded",
		"username", username,
		"source", source,
		"pop_token_cap", popTokenCap,
	)
	return p, nil
}

// ResolveCap returns the cap that applies to username.
// A recorded profile cap wins, then the cap of a known preset, then the
// client-claimed value.
func (s *Service) ResolveCap(ctx context.Context, username, presetName string, claimed int64) (int64, error) {
	if username != "" {
		p, err := s.repo.Get(ctx, username)
		if err != nil {
			return 0, unavailable(err)
		}
		if p != nil {
			return p.PopTokenCap, nil
		}
	}
	if presetName != "" {
		if capValue, ok := s.presets.CapFor(presetName); ok {
			return capValue, nil
		}
	}
	if claimed < 0 {
		return 0, ErrNegativeCap
	}
	s.logger.DebugContext(ctx, "accepting client cap", "username", username, "pop_token_cap", claimed)
	return claimed, nil
}

func unavailable(err error) error {
	return apperr.Wrap(apperr.CodeUnavailable, "storage unavailable", err)
}
