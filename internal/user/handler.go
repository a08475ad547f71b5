package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/popbarter/pkg/response"
)

// Handler handles HTTP requests for profile operations
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new profile handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the router for profile endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{username}", h.Get)
	r.Put("/{username}/preset", h.SelectPreset)

	return r
}

// Get handles GET /users/{username}
// @Summary      Get a profile
// @Description  Returns the user's recorded cap and where it came from
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} ProfileResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /users/{username} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// SelectPreset handles PUT /users/{username}/preset
// @Summary      Choose a demo business
// @Description  Binds a catalog preset to the user and records its derived cap
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username path string true "Username"
// @Param        request body SelectPresetRequest true "Preset name"
// @Success      200 {object} ProfileResponse
// @Failure      400 {object} response.ErrorBody
// @Router       /users/{username}/preset [put]
func (h *Handler) SelectPreset(w http.ResponseWriter, r *http.Request) {
	var req SelectPresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Preset == "" {
		response.BadRequest(w, "preset is required")
		return
	}

	p, err := h.service.SelectPreset(r.Context(), chi.URLParam(r, "username"), req.Preset)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := response.FromError(w, err); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "profile request failed", "path", r.URL.Path, "error", err)
	}
}
