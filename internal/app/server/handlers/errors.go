package handlers

import (
	"fmt"
	"net/http"

	"francoggm/paygate-go-redis/internal/app/server/respond"
	"francoggm/paygate-go-redis/internal/models"

	goerrors "github.com/goliatone/go-errors"
)

const TextCodeCorrelationMissing = "CORRELATION_ID_MISSING"

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := respond.Describe(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithContext(r.Context()).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "code", body.Code, "error", err)
	}

	h.writeJSON(w, r, status, body)
}

// writeJSON logs a failed write at debug. The client has usually gone away
// and nothing else can be sent.
func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := respond.JSON(w, status, v); err != nil {
		h.logger.WithContext(r.Context()).Debug("failed to write response",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
}

// correlationID reads the configured header. Absent and empty are the same.
func (h *Handlers) correlationID(r *http.Request) (models.CorrelationID, error) {
	header := h.cfg.App.CorrelationHeader

	id, err := models.ParseCorrelationID(r.Header.Get(header))
	if err != nil {
		rich := goerrors.Wrap(err, goerrors.CategoryBadInput, fmt.Sprintf("Missing %s header", header)).
			WithCode(http.StatusBadRequest).
			WithTextCode(TextCodeCorrelationMissing)
		return "", rich
	}

	return id, nil
}
