package webhook

import (
	"net/http"

	"francoggm/paygate-go-redis/internal/app/ledger"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeSignatureMissing = "WEBHOOK_SIGNATURE_MISSING"
	TextCodeSignatureInvalid = "WEBHOOK_SIGNATURE_INVALID"
	TextCodeSignatureStale   = "WEBHOOK_SIGNATURE_STALE"
	TextCodePayloadMalformed = "WEBHOOK_PAYLOAD_MALFORMED"
	TextCodeLedgerDown       = ledger.TextCodeUnavailable
	TextCodeInternal         = "INTERNAL_ERROR"
)

// Signature failures map to 400, never 401.
func signatureError(source error, textCode, message string) error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryAuth).
			WithCode(http.StatusBadRequest).
			WithTextCode(textCode)
	}

	return goerrors.Wrap(source, goerrors.CategoryAuth, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(textCode)
}

func malformedError(source error, message string, metadata map[string]any) error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryBadInput)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryBadInput, message)
	}

	err = err.WithCode(http.StatusBadRequest).WithTextCode(TextCodePayloadMalformed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func ledgerError(source error, unavailable bool, metadata map[string]any) error {
	var err *goerrors.Error
	if unavailable {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, "payment status store is unavailable").
			WithCode(http.StatusServiceUnavailable).
			WithTextCode(TextCodeLedgerDown)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryInternal, "failed to record payment status").
			WithCode(http.StatusInternalServerError).
			WithTextCode(TextCodeInternal)
	}

	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
