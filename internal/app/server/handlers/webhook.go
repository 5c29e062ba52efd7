package handlers

import (
	"net/http"

	"francoggm/paygate-go-redis/internal/app/server/rawbody"
	"francoggm/paygate-go-redis/internal/app/server/respond"

	goerrors "github.com/goliatone/go-errors"
)

const signatureHeader = "Stripe-Signature"

type webhookAck struct {
	Status string `json:"status"`
}

func (h *Handlers) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, ok := rawbody.FromContext(ctx)
	if !ok {
		h.writeError(w, r, goerrors.New("raw body was not captured", goerrors.CategoryInternal).
			WithCode(http.StatusInternalServerError).
			WithTextCode(respond.TextCodeInternal))
		return
	}

	result, err := h.applier.Apply(ctx, payload, r.Header.Get(signatureHeader))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.WithContext(ctx).Debug("webhook acknowledged", "event_id", result.EventID, "outcome", result.Outcome)
	h.writeJSON(w, r, http.StatusOK, webhookAck{Status: "success"})
}
