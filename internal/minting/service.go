package minting

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/fkhayef/popbarter/internal/popcap"
	"github.com/fkhayef/popbarter/internal/user"
)

const dateLayout = "2006-01-02"

// FinverseSource is the OAuth-backed transaction feed
type FinverseSource interface {
	AuthURL(state string) string
	AccountTransactions(ctx context.Context, code string) (json.RawMessage, []popcap.Transaction, error)
}

// StatementSource is the bank statement feed
type StatementSource interface {
	Statement(ctx context.Context, req StatementRequest) ([]popcap.Transaction, error)
}

// CapRecorder stores a derived cap against a user
type CapRecorder interface {
	RecordCap(ctx context.Context, username string, source user.CapSource, presetName string, popTokenCap int64) (*user.Profile, error)
}

// Options configures the minting service
type Options struct {
	Finverse           FinverseSource
	Brankas            StatementSource
	Catalog            *popcap.Catalog
	Profiles           CapRecorder
	Timeout            time.Duration
	FinversePeriodDays int
	Logger             *slog.Logger
}

// Service derives PoP token caps from presets and live financial data
type Service struct {
	finverse   FinverseSource
	brankas    StatementSource
	catalog    *popcap.Catalog
	profiles   CapRecorder
	timeout    time.Duration
	periodDays int
	logger     *slog.Logger
}

// NewService creates a new minting service.
// Nil sources report ErrSourceNotEnabled; a nil Profiles skips cap recording.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	periodDays := opts.FinversePeriodDays
	if periodDays < 1 {
		periodDays = 90
	}
	return &Service{
		finverse:   opts.Finverse,
		brankas:    opts.Brankas,
		catalog:    opts.Catalog,
		profiles:   opts.Profiles,
		timeout:    timeout,
		periodDays: periodDays,
		logger:     logger,
	}
}

// Presets returns the demo catalog with derived caps
func (s *Service) Presets() []popcap.PresetWithCap {
	return s.catalog.All()
}

// Preset returns one catalog entry by exact name
func (s *Service) Preset(name string) (popcap.PresetWithCap, error) {
	p, ok := s.catalog.Lookup(name)
	if !ok {
		return popcap.PresetWithCap{}, ErrPresetNotFound
	}
	return p.WithCap(), nil
}

// FinverseAuthURL returns the consent URL for the Finverse flow
func (s *Service) FinverseAuthURL(state string) (string, error) {
	if s.finverse == nil {
		return "", ErrSourceNotEnabled
	}
	return s.finverse.AuthURL(state), nil
}

// FinverseCap exchanges an authorization code and derives a cap from the
// first account's transactions over the configured period.
func (s *Service) FinverseCap(ctx context.Context, code, username string) (*FinverseCapResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrCodeRequired
	}
	if s.finverse == nil {
		return nil, ErrSourceNotEnabled
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	account, txs, err := s.finverse.AccountTransactions(fetchCtx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "finverse fetch failed", "error", err)
		return nil, upstreamError(fetchCtx, "finverse", err)
	}

	derivation := popcap.Derive(txs, s.periodDays)
	if err := s.record(ctx, username, user.CapSourceFinverse, derivation); err != nil {
		return nil, err
	}

	return &FinverseCapResponse{
		PopTokenCap: derivation.PopTokenCap,
		Account:     account,
		Derivation:  derivation,
	}, nil
}

// BrankasCap pulls a bank statement and derives a cap from it.
// The period is the statement's span in whole days, or 1 for an empty statement.
func (s *Service) BrankasCap(ctx context.Context, req *BrankasCapRequest) (*BrankasCapResponse, error) {
	sr := req.StatementRequest
	if strings.TrimSpace(sr.BankCode) == "" || strings.TrimSpace(sr.AccountNumber) == "" ||
		strings.TrimSpace(sr.StartDate) == "" || strings.TrimSpace(sr.EndDate) == "" {
		return nil, ErrStatementFields
	}
	start, err := time.Parse(dateLayout, sr.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(dateLayout, sr.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrDateRange
	}
	if s.brankas == nil {
		return nil, ErrSourceNotEnabled
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	txs, err := s.brankas.Statement(fetchCtx, sr)
	if err != nil {
		s.logger.WarnContext(ctx, "brankas fetch failed", "error", err)
		return nil, upstreamError(fetchCtx, "brankas", err)
	}

	derivation := popcap.Derive(txs, statementDays(start, end, len(txs)))
	if err := s.record(ctx, req.Username, user.CapSourceBrankas, derivation); err != nil {
		return nil, err
	}

	return &BrankasCapResponse{
		PopTokenCap:   derivation.PopTokenCap,
		AccountNumber: sr.AccountNumber,
		Derivation:    derivation,
	}, nil
}

func (s *Service) record(ctx context.Context, username string, source user.CapSource, d popcap.Derivation) error {
	s.logger.InfoContext(ctx, "cap derived",
		"source", source,
		"pop_token_cap", d.PopTokenCap,
		"period_days", d.PeriodDays,
		"skipped", d.Skipped,
	)
	if username == "" || s.profiles == nil {
		return nil
	}
	_, err := s.profiles.RecordCap(ctx, username, source, "", d.PopTokenCap)
	return err
}

// statementDays is ceil((end-start)/1 day) for a non-empty statement, at least 1.
func statementDays(start, end time.Time, txCount int) int {
	if txCount == 0 {
		return 1
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
