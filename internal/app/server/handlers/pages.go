package handlers

import (
	"fmt"
	"net/http"
)

type welcome struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status     string `json:"status"`
	InstanceID string `json:"instance_id,omitempty"`
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, welcome{Message: fmt.Sprintf("Welcome to the %s API", h.cfg.App.Name)})
}

func (h *Handlers) Privacy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.privacyPage); err != nil {
		h.logger.WithContext(r.Context()).Debug("failed to write privacy page", "error", err)
	}
}

// Health answers from the cached probe result and never touches the ledger.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ready(); err != nil {
		h.writeJSON(w, r, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", InstanceID: h.health.InstanceID()})
		return
	}

	h.writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", InstanceID: h.health.InstanceID()})
}
