// Package respond writes JSON bodies and go-errors envelopes for the HTTP
// handlers.
package respond

import (
	"errors"
	"fmt"
	"net/http"

	"francoggm/paygate-go-redis/internal/app/ledger"

	"github.com/bytedance/sonic"
	goerrors "github.com/goliatone/go-errors"
)

const TextCodeInternal = "INTERNAL_ERROR"

const internalDetail = "An unexpected error occurred"

type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// JSON encodes v and writes it with status. The returned error is the encode
// or write failure; the status line may already be sent.
func JSON(w http.ResponseWriter, status int, v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return fmt.Errorf("respond: encode: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("respond: write: %w", err)
	}

	return nil
}

// Error writes err as {"detail","code"} using the envelope's HTTP code. Errors
// without an envelope become an opaque 500, except ledger outages which
// always map to 503.
func Error(w http.ResponseWriter, err error) error {
	status, body := Describe(err)
	return JSON(w, status, body)
}

// Describe resolves the status and body err is answered with. Internal
// messages are never exposed.
func Describe(err error) (int, ErrorBody) {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		status := rich.Code
		if status == 0 {
			status = statusForCategory(rich.Category)
		}
		if rich.Category == goerrors.CategoryInternal || status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
			return status, ErrorBody{Detail: internalDetail, Code: textCodeOr(rich.TextCode, TextCodeInternal)}
		}
		return status, ErrorBody{Detail: rich.Message, Code: rich.TextCode}
	}

	if errors.Is(err, ledger.ErrUnavailable) {
		return http.StatusServiceUnavailable, ErrorBody{Detail: "payment status store is unavailable", Code: ledger.TextCodeUnavailable}
	}

	return http.StatusInternalServerError, ErrorBody{Detail: internalDetail, Code: TextCodeInternal}
}

func BadInput(message, textCode string, status int) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(status).
		WithTextCode(textCode)
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation, goerrors.CategoryAuth:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryExternal:
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func textCodeOr(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
