package http

import (
	"net/http"

	"github.com/MKhiriev/vault-relay/internal/logger"
)

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.hub.Reset(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.reset").Msg("error resetting server state")
		http.Error(w, "error resetting server state", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
