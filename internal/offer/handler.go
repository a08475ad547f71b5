package offer

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/popbarter/pkg/response"
)

// Handler handles HTTP requests for the offer board
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new offer handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the router for offer endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)

	return r
}

// List handles GET /marketplace/offers
// @Summary      List offers
// @Description  Returns every offer, including ones the poster chose not to reveal
// @Tags         marketplace
// @Produce      json
// @Success      200 {array} Offer
// @Failure      503 {object} response.ErrorBody
// @Router       /marketplace/offers [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, offers)
}

// Create handles POST /marketplace/offers
// @Summary      Post an offer
// @Description  tokenAmount must be between 1 and the poster's cap
// @Tags         marketplace
// @Accept       json
// @Produce      json
// @Param        request body CreateOfferRequest true "Offer details"
// @Success      201 {object} Offer
// @Failure      400 {object} response.ErrorBody
// @Router       /marketplace/offers [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	o, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, o)
}

// Delete handles DELETE /marketplace/offers/{id}
// @Summary      Remove an offer
// @Tags         marketplace
// @Produce      json
// @Param        id path string true "Offer ID"
// @Success      200 {object} DeleteResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /marketplace/offers/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, DeleteResponse{Success: true})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := response.FromError(w, err); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "offer request failed", "path", r.URL.Path, "error", err)
	}
}
