package minting

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/popbarter/pkg/response"
)

// Handler handles HTTP requests for cap derivation
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a new minting handler
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the router for minting endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/presets", h.ListPresets)
	r.Get("/presets/*", h.GetPreset)
	r.Get("/finverse/auth-url", h.FinverseAuthURL)
	r.Get("/finverse/callback", h.FinverseCallback)
	r.Post("/brankas", h.Brankas)

	return r
}

// ListPresets handles GET /minting/presets
// @Summary      List demo businesses
// @Description  Returns every preset with its derived popTokenCap
// @Tags         minting
// @Produce      json
// @Success      200 {array} popcap.PresetWithCap
// @Router       /minting/presets [get]
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.Presets())
}

// GetPreset handles GET /minting/presets/{name}
// @Summary      Get a demo business
// @Tags         minting
// @Produce      json
// @Param        name path string true "Preset name (URL-encoded)"
// @Success      200 {object} popcap.PresetWithCap
// @Failure      404 {object} response.ErrorBody
// @Router       /minting/presets/{name} [get]
func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	p, err := h.service.Preset(name)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, p)
}

// FinverseAuthURL handles GET /minting/finverse/auth-url
// @Summary      Finverse consent URL
// @Tags         minting
// @Produce      json
// @Param        state query string false "Opaque state echoed back on the callback"
// @Success      200 {object} AuthURLResponse
// @Failure      503 {object} response.ErrorBody
// @Router       /minting/finverse/auth-url [get]
func (h *Handler) FinverseAuthURL(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.FinverseAuthURL(r.URL.Query().Get("state"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, AuthURLResponse{URL: u})
}

// FinverseCallback handles GET /minting/finverse/callback
// @Summary      Derive a cap from Finverse transactions
// @Description  Exchanges the authorization code server side and derives the cap over the configured period
// @Tags         minting
// @Produce      json
// @Param        code query string true "Authorization code"
// @Param        username query string false "Record the cap on this profile"
// @Success      200 {object} FinverseCapResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      502 {object} response.ErrorBody
// @Failure      504 {object} response.ErrorBody
// @Router       /minting/finverse/callback [get]
func (h *Handler) FinverseCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.service.FinverseCap(r.Context(), q.Get("code"), q.Get("username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

// Brankas handles POST /minting/brankas
// @Summary      Derive a cap from a bank statement
// @Tags         minting
// @Accept       json
// @Produce      json
// @Param        request body BrankasCapRequest true "Statement parameters"
// @Success      200 {object} BrankasCapResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      502 {object} response.ErrorBody
// @Failure      504 {object} response.ErrorBody
// @Router       /minting/brankas [post]
func (h *Handler) Brankas(w http.ResponseWriter, r *http.Request) {
	var req BrankasCapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.service.BrankasCap(r.Context(), &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := response.FromError(w, err); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "minting request failed", "path", r.URL.Path, "error", err)
	}
}
