package signetsdk

import (
	"github.com/aussiebroadwan/signet/pkg/jwtx"
)

// ErrorResponse is the wire shape of every error the service returns.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// IssueTokenRequest is the body for POST /v1/token. Subject defaults to
// "anonymous" and TTL (a Go duration string like "10m") to the service's
// configured default when omitted.
type IssueTokenRequest struct {
	Subject string `json:"subject,omitempty"`
	TTL     string `json:"ttl,omitempty"`
}

// TokenResponse is returned from POST /v1/token.
type TokenResponse struct {
	// Token is the signed identity token.
	Token string `json:"token"`

	// Kid identifies the key that signed it, resolvable via the JWKS
	// endpoint while that key is still published.
	Kid string `json:"kid"`
}

// ValidateTokenRequest is the body for POST /v1/token/validate.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse reports the verdict for a well-formed token.
// Any verdict is a 200: an invalid token is a result, not an error.
type ValidateTokenResponse struct {
	Subject string `json:"subject,omitempty"`
	Kid     string `json:"kid,omitempty"`
	Verdict string `json:"verdict"`
}

// Verdict values mirrored from jwtx so SDK consumers don't need to import
// the engine package just to compare strings.
const (
	VerdictValid                = string(jwtx.VerdictValid)
	VerdictSignatureMismatch    = string(jwtx.VerdictSignatureMismatch)
	VerdictTokenExpired         = string(jwtx.VerdictTokenExpired)
	VerdictKeyExpiredAtIssuance = string(jwtx.VerdictKeyExpiredAtIssuance)
	VerdictUnknownKey           = string(jwtx.VerdictUnknownKey)
)

// JWKSResponse contains the JSON Web Key Set.
type JWKSResponse jwtx.JWKS

// HealthResponse is returned from the /livez and /readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
