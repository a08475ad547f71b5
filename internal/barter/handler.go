package barter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/popbarter/pkg/response"
)

// Handler handles HTTP requests for barter books
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new barter handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the router for barter book endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{username}", h.List)
	r.Post("/{username}", h.Create)
	r.Patch("/{username}/{barterId}/progress", h.Progress)
	r.Patch("/{username}/{barterId}/approve", h.Approve)

	return r
}

// List handles GET /books/{username}
// @Summary      List a user's barters
// @Description  Returns every barter in the user's books in creation order
// @Tags         books
// @Produce      json
// @Param        username path string true "Book owner"
// @Success      200 {array} BarterResponse
// @Failure      503 {object} response.ErrorBody
// @Router       /books/{username} [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	barters, err := h.service.ListBarters(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]*BarterResponse, len(barters))
	for i, b := range barters {
		out[i] = b.ToResponse()
	}

	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /books/{username}
// @Summary      Record a barter
// @Description  Adds a barter to the user's books. yourTokensGiven may not exceed yourCap.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        username path string true "Book owner"
// @Param        request body CreateBarterRequest true "Barter details"
// @Success      201 {object} BarterResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      503 {object} response.ErrorBody
// @Router       /books/{username} [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBarterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	b, err := h.service.CreateBarter(r.Context(), chi.URLParam(r, "username"), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, b.ToResponse())
}

// Progress handles PATCH /books/{username}/{barterId}/progress
// @Summary      Simulate one business day
// @Description  Applies a random day outcome to the expense estimate and waits for approval
// @Tags         books
// @Produce      json
// @Param        username path string true "Book owner"
// @Param        barterId path string true "Barter ID"
// @Success      200 {object} ProgressResponse
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Router       /books/{username}/{barterId}/progress [patch]
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	b, note, err := h.service.ProgressDay(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "barterId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, &ProgressResponse{Barter: b.ToResponse(), Note: note})
}

// Approve handles PATCH /books/{username}/{barterId}/approve
// @Summary      Approve a pending progression
// @Tags         books
// @Produce      json
// @Param        username path string true "Book owner"
// @Param        barterId path string true "Barter ID"
// @Success      200 {object} BarterResponse
// @Failure      404 {object} response.ErrorBody
// @Failure      409 {object} response.ErrorBody
// @Router       /books/{username}/{barterId}/approve [patch]
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.ApproveProgress(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "barterId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, b.ToResponse())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := response.FromError(w, err); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "barter request failed", "path", r.URL.Path, "error", err)
	}
}
