package http

import (
	"net/http"

	"github.com/MKhiriev/vault-relay/internal/logger"
)

const dashboardTokenHeader = "X-Dashboard-Token"

// withDashboardToken guards mutating side-channel endpoints with the
// dashboard token, taken from the X-Dashboard-Token header or, for browser
// callers, the "token" query parameter.
func (h *Handler) withDashboardToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(dashboardTokenHeader)
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if !h.services.AuthService.CheckHash(token) {
			logger.FromRequest(r).Warn().Str("uri", r.RequestURI).Msg("rejected request with invalid dashboard token")
			http.Error(w, "invalid dashboard token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
