package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/vault-relay/internal/logger"
)

// maxThemeBytes bounds the opaque theme payload; it only carries colors and
// font names.
const maxThemeBytes = 64 << 10

func (h *Handler) setTheme(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxThemeBytes+1))
	if err != nil {
		log.Err(err).Str("func", "*Handler.setTheme").Msg("error reading theme payload")
		http.Error(w, "error reading theme payload", http.StatusBadRequest)
		return
	}
	if len(body) > maxThemeBytes {
		http.Error(w, "theme payload too large", http.StatusRequestEntityTooLarge)
		return
	}
	if !json.Valid(body) {
		log.Error().Str("func", "*Handler.setTheme").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.hub.SetTheme(r.Context(), body)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTheme(w http.ResponseWriter, r *http.Request) {
	theme := h.hub.Theme()
	if theme == nil {
		http.Error(w, "no theme set", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(theme)
}
