package http

import (
	"net/http"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/utils"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	status, err := h.hub.Status(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Msg("error assembling server status")
		http.Error(w, "error assembling server status", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
