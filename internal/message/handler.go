package message

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/popbarter/pkg/response"
)

// Handler handles HTTP requests for message operations
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new message handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the router for offer-scoped message endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Send)
	r.Get("/{offerId}", h.ListByOffer)

	return r
}

// ContactRoutes returns the router for per-user conversation endpoints
func (h *Handler) ContactRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{username}", h.Contacts)
	r.Get("/{username}/messages", h.Thread)

	return r
}

// Send handles POST /marketplace/message
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	m, err := h.service.Send(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(m))
}

// ListByOffer handles GET /marketplace/message/{offerId}
func (h *Handler) ListByOffer(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListByOffer(r.Context(), chi.URLParam(r, "offerId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponses(messages))
}

// Thread handles GET /contacts/{username}/messages?with={other}
func (h *Handler) Thread(w http.ResponseWriter, r *http.Request) {
	other := r.URL.Query().Get("with")
	if other == "" {
		response.BadRequest(w, "with query parameter is required")
		return
	}

	messages, err := h.service.Thread(r.Context(), chi.URLParam(r, "username"), other)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponses(messages))
}

// Contacts handles GET /contacts/{username}
func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	contacts, err := h.service.Contacts(r.Context(), username)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, ContactsResponse{Username: username, Contacts: contacts})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := response.FromError(w, err); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "message request failed", "path", r.URL.Path, "error", err)
	}
}
