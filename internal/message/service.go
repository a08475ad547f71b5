package message

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
	ErrMissingFields    = apperr.New(apperr.CodeValidation, "from, to, offerId and text are required")
	ErrUsernameRequired = apperr.New(apperr.CodeValidation, "username is required")
)

// Service handles message business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new message service
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Send stores a message for later pickup by the recipient
func (s *Service) Send(ctx context.Context, req *SendMessageRequest) (*Message, error) {
	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" ||
		strings.TrimSpace(req.OfferID) == "" || strings.TrimSpace(req.Text) == "" {
		return nil, ErrMissingFields
	}

	m, err := s.repo.Create(ctx, &Message{
		ID:        uuid.NewString(),
		From:      req.From,
		To:        req.To,
		OfferID:   req.OfferID,
		Text:      req.Text,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, unavailable(err)
	}

	s.logger.DebugContext(ctx, "message stored", "message_id", m.ID, "offer_id", m.OfferID)
	return m, nil
}

// ListByOffer returns the conversation attached to an offer
func (s *Service) ListByOffer(ctx context.Context, offerID string) ([]*Message, error) {
	messages, err := s.repo.ListByOffer(ctx, offerID)
	if err != nil {
		return nil, unavailable(err)
	}
	return messages, nil
}

// Thread returns everything exchanged between username and other
func (s *Service) Thread(ctx context.Context, username, other string) ([]*Message, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(other) == "" {
		return nil, ErrUsernameRequired
	}
	messages, err := s.repo.ListThread(ctx, username, other)
	if err != nil {
		return nil, unavailable(err)
	}
	return messages, nil
}

// Contacts returns the users username has exchanged messages with
func (s *Service) Contacts(ctx context.Context, username string) ([]string, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	contacts, err := s.repo.ListContacts(ctx, username)
	if err != nil {
		return nil, unavailable(err)
	}
	return contacts, nil
}

func unavailable(err error) error {
	return apperr.Wrap(apperr.CodeUnavailable, "storage unavailable", err)
}
