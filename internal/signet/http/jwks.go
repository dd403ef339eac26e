package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/signet/pkg/httpx"
	"github.com/aussiebroadwan/signet/pkg/jwtx"
	"github.com/aussiebroadwan/signet/pkg/signetsdk"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
// The optional at=RFC3339 query parameter renders the set as it would
// appear at that instant instead of now.
func JWKSHandler(keys *jwtx.KeyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at := time.Now().UTC()
		if raw := r.URL.Query().Get("at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				signetsdk.ErrInvalidRequest.WriteError(w)
				return
			}
			at = parsed
		}

		httpx.WriteJSON(w, http.StatusOK, signetsdk.JWKSResponse(keys.PublicJWKS(at)))
	}
}
