package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/signet/internal/signet/service"
	"github.com/aussiebroadwan/signet/pkg/httpx"
	"github.com/aussiebroadwan/signet/pkg/jwtx"
	"github.com/aussiebroadwan/signet/pkg/signetsdk"
	"github.com/aussiebroadwan/signet/pkg/slogx"
)

// ValidateTokenHandler serves POST /v1/token/validate. Every well-formed
// token gets a 200 with a verdict; only structurally broken input is an
// error.
type ValidateTokenHandler struct {
	TokenService *service.TokenService
}

func (h *ValidateTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signetsdk.ValidateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		signetsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Token == "" {
		signetsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.TokenService.Validate(ctx, req.Token)
	if err != nil {
		if errors.Is(err, jwtx.ErrMalformedToken) {
			signetsdk.ErrMalformedToken.WriteError(w)
			return
		}
		log.Error("token validation failed", slog.Any("error", err))
		signetsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, signetsdk.ValidateTokenResponse{
		Subject: result.Subject,
		Kid:     result.Kid,
		Verdict: string(result.Verdict),
	})
}
