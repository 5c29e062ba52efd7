// Package rawbody captures the request body exactly as received so signature
// checks run over the original bytes.
package rawbody

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"francoggm/paygate-go-redis/internal/app/server/respond"

	glog "github.com/goliatone/go-logger/glog"
)

const DefaultLimit int64 = 65536

const (
	TextCodeTooLarge = "REQUEST_BODY_TOO_LARGE"
	TextCodeInvalid  = "REQUEST_BODY_INVALID"
)

type ctxKey struct{}

// Capture reads the body once, up to limit bytes, and stores it in the request
// context. Downstream handlers get the same bytes from FromContext and r.Body
// is replaced by a reader over them.
func Capture(limit int64, logger glog.Logger) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultLimit
	}
	logger = glog.Ensure(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				reject := respond.BadInput("failed to read request body", TextCodeInvalid, http.StatusBadRequest)
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					reject = respond.BadInput("request body too large", TextCodeTooLarge, http.StatusRequestEntityTooLarge)
				}

				logger.WithContext(r.Context()).Debug("request body rejected", "path", r.URL.Path, "error", err)
				if err := respond.Error(w, reject); err != nil {
					logger.WithContext(r.Context()).Debug("failed to write response", "path", r.URL.Path, "error", err)
				}
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			ctx := context.WithValue(r.Context(), ctxKey{}, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the captured body. The slice is shared and must not be
// modified.
func FromContext(ctx context.Context) ([]byte, bool) {
	body, ok := ctx.Value(ctxKey{}).([]byte)
	return body, ok
}
