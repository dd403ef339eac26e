package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/signet/pkg/httpx"
	"github.com/aussiebroadwan/signet/pkg/jwtx"
	"github.com/aussiebroadwan/signet/pkg/signetsdk"
)

// ReadyzHandler is the readiness probe. The service is ready once the
// store holds at least one key valid for signing.
func ReadyzHandler(startTime time.Time, version string, keys *jwtx.KeyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		statusCode := http.StatusOK

		if !keys.IsReady() {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := signetsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
