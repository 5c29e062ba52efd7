package webhook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

const DefaultTolerance = 5 * time.Minute

// Verifier authenticates webhook payloads signed with the provider's
// "t=<unix>,v1=<hex>" scheme. Several secrets can be active at once while an
// endpoint secret is being rolled; the payload is authentic if any of them
// produced one of the v1 signatures.
type Verifier struct {
	secrets   []string
	tolerance time.Duration
	now       func() time.Time
}

func NewVerifier(secrets []string, tolerance time.Duration) (*Verifier, error) {
	active := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		if secret != "" {
			active = append(active, secret)
		}
	}
	if len(active) == 0 {
		return nil, errors.New("webhook: at least one signing secret is required")
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("webhook: tolerance must be positive, got %s", tolerance)
	}

	return &Verifier{
		secrets:   active,
		tolerance: tolerance,
		now:       time.Now,
	}, nil
}

// Verify must be given the request body exactly as received.
func (v *Verifier) Verify(payload []byte, header string) error {
	if strings.TrimSpace(header) == "" {
		return signatureError(nil, TextCodeSignatureMissing, "missing signature header")
	}

	signedAt, err := signatureTimestamp(header)
	if err != nil {
		return signatureError(err, TextCodeSignatureInvalid, "malformed signature header")
	}
	// The library only bounds the past; bound the future as well.
	if signedAt.Sub(v.now()) > v.tolerance {
		return signatureError(nil, TextCodeSignatureStale, "signature timestamp is in the future")
	}

	var lastErr error
	for _, secret := range v.secrets {
		err := stripewebhook.ValidatePayloadWithTolerance(payload, header, secret, v.tolerance)
		if err == nil {
			return nil
		}
		if errors.Is(err, stripewebhook.ErrTooOld) {
			return signatureError(err, TextCodeSignatureStale, "signature timestamp is outside the tolerance window")
		}
		lastErr = err
	}

	return signatureError(lastErr, TextCodeSignatureInvalid, "invalid signature")
}

func signatureTimestamp(header string) (time.Time, error) {
	for _, pair := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key != "t" {
			continue
		}

		unix, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("webhook: bad timestamp %q: %w", value, err)
		}
		return time.Unix(unix, 0), nil
	}

	return time.Time{}, errors.New("webhook: signature header has no timestamp")
}
