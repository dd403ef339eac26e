package signetsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents an error returned by the service. It carries the
// HTTP status alongside the wire code so handlers and clients can share
// one definition per failure mode.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the APIError to the response writer as JSON.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	json.NewEncoder(w).Encode(e)
}

// Predefined service errors.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "The request is missing a required parameter or is otherwise malformed",
	}

	ErrMalformedToken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "malformed_token",
		Description: "The supplied token is not a structurally well-formed JWT",
	}

	ErrNoSigningKey = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        "no_signing_key",
		Description: "No signing key is currently valid",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "An unexpected error occurred",
	}
)

// parseErrorResponse decodes an error body from a non-2xx response into
// an APIError. Bodies that aren't the expected JSON shape still produce
// a usable error carrying the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        "unknown_error",
			Description: string(body),
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        errResp.Error,
		Description: errResp.ErrorDescription,
	}
}
