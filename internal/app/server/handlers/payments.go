package handlers

import (
	"net/http"

	"francoggm/paygate-go-redis/internal/models"
)

func (h *Handlers) GetPaymentURL(w http.ResponseWriter, r *http.Request) {
	id, err := h.correlationID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, h.paymentService.PaymentLink(r.Context(), id))
}

func (h *Handlers) HasUserPaid(w http.ResponseWriter, r *http.Request) {
	id, err := h.correlationID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	paid, err := h.paymentService.HasPaid(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.PaymentStatus{Paid: paid})
}
