package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/signet/internal/signet/service"
	"github.com/aussiebroadwan/signet/pkg/httpx"
	"github.com/aussiebroadwan/signet/pkg/jwtx"
	"github.com/aussiebroadwan/signet/pkg/signetsdk"
	"github.com/aussiebroadwan/signet/pkg/slogx"
)

// IssueTokenHandler serves POST /v1/token. The optional expired=true
// query parameter signs with an already-expired key for testing verifier
// behaviour downstream.
type IssueTokenHandler struct {
	TokenService *service.TokenService
}

func (h *IssueTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// An empty body is a valid request for a default token.
	var req signetsdk.IssueTokenRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			signetsdk.ErrInvalidRequest.WriteError(w)
			return
		}
	}

	// An omitted ttl and an explicit "0s" are different requests: the
	// first takes the service default, the second asks for a token that
	// is born expired.
	var ttl *time.Duration
	if req.TTL != "" {
		parsed, err := time.ParseDuration(req.TTL)
		if err != nil {
			signetsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		ttl = &parsed
	}

	expiredKey := r.URL.Query().Get("expired") == "true"

	issued, err := h.TokenService.Issue(ctx, req.Subject, ttl, expiredKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTTL), errors.Is(err, service.ErrInvalidSubject):
			signetsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, jwtx.ErrNoValidKey):
			signetsdk.ErrNoSigningKey.WriteError(w)
		default:
			log.Error("token issuance failed", slog.Any("error", err))
			signetsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, signetsdk.TokenResponse{
		Token: issued.Token,
		Kid:   issued.Kid,
	})
}
