package response

import (
	"encoding/json"
	"net/http"

	"github.com/fkhayef/popbarter/pkg/apperr"
)

// ErrorBody is the envelope for every non-2xx response
type ErrorBody struct {
	Error APIError `json:"error"`
}

// APIError represents an error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// JSON sends the given value as a JSON body with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends an error JSON response
func Error(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorBody{
		Error: APIError{
			Code:      code,
			Message:   message,
			Retryable: apperr.Code(code).Retryable(),
		},
	})
}

// StatusFor maps a domain error code to an HTTP status
func StatusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeValidation:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeStateConflict:
		return http.StatusConflict
	case apperr.CodeUpstream:
		return http.StatusBadGateway
	case apperr.CodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	case apperr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the response matching err's domain code.
// It returns the status written so callers can decide whether to log.
func FromError(w http.ResponseWriter, err error) int {
	code := apperr.CodeOf(err)
	status := StatusFor(code)
	Error(w, status, string(code), apperr.MessageOf(err))
	return status
}

// Common error responses
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, string(apperr.CodeValidation), message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, string(apperr.CodeNotFound), message)
}
