package webhook

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

const testSecret = "whsec_test_secret"

func newTestVerifier(t *testing.T, secrets ...string) *Verifier {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{testSecret}
	}
	v, err := NewVerifier(secrets, DefaultTolerance)
	require.NoError(t, err)
	return v
}

func requireTextCode(t *testing.T, err error, textCode string) {
	t.Helper()
	require.Error(t, err)

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich), "expected go-errors envelope, got %T", err)
	require.Equal(t, textCode, rich.TextCode)
}

func TestNewVerifierRequiresSecretAndTolerance(t *testing.T) {
	_, err := NewVerifier(nil, DefaultTolerance)
	require.Error(t, err)

	_, err = NewVerifier([]string{"", ""}, DefaultTolerance)
	require.Error(t, err)

	_, err = NewVerifier([]string{testSecret}, 0)
	require.Error(t, err)
}

func TestVerifyAcceptsFreshSignature(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	header := SignTestPayload(payload, testSecret, time.Now())

	require.NoError(t, newTestVerifier(t).Verify(payload, header))
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	header := SignTestPayload([]byte(`{"amount":100}`), testSecret, time.Now())

	err := newTestVerifier(t).Verify([]byte(`{"amount":1}`), header)
	requireTextCode(t, err, TextCodeSignatureInvalid)

	var rich *goerrors.Error
	require.True(t, goerrors.As(err, &rich))
	require.Equal(t, goerrors.CategoryAuth, rich.Category)
	require.Equal(t, 400, rich.Code)
}

func TestVerifyRejectsReserializedBody(t *testing.T) {
	// Same JSON value, different bytes.
	original := []byte(`{"type": "checkout.session.completed", "id": "evt_1"}`)
	compact := []byte(`{"type":"checkout.session.completed","id":"evt_1"}`)
	header := SignTestPayload(original, testSecret, time.Now())

	requireTextCode(t, newTestVerifier(t).Verify(compact, header), TextCodeSignatureInvalid)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := SignTestPayload(payload, "whsec_other", time.Now())

	requireTextCode(t, newTestVerifier(t).Verify(payload, header), TextCodeSignatureInvalid)
}

func TestVerifyRejectsStaleTimestampWithValidHMAC(t *testing.T) {
	payload := []byte(`{}`)
	header := SignTestPayload(payload, testSecret, time.Now().Add(-DefaultTolerance-time.Minute))

	requireTextCode(t, newTestVerifier(t).Verify(payload, header), TextCodeSignatureStale)
}

func TestVerifyRejectsFutureTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	header := SignTestPayload(payload, testSecret, time.Now().Add(DefaultTolerance+time.Minute))

	requireTextCode(t, newTestVerifier(t).Verify(payload, header), TextCodeSignatureStale)
}

func TestVerifyMissingAndMalformedHeaders(t *testing.T) {
	v := newTestVerifier(t)

	requireTextCode(t, v.Verify([]byte(`{}`), ""), TextCodeSignatureMissing)
	requireTextCode(t, v.Verify([]byte(`{}`), "v1=deadbeef"), TextCodeSignatureInvalid)
	requireTextCode(t, v.Verify([]byte(`{}`), "t=yesterday,v1=deadbeef"), TextCodeSignatureInvalid)
	requireTextCode(t, v.Verify([]byte(`{}`), fmt.Sprintf("t=%d", time.Now().Unix())), TextCodeSignatureInvalid)
}

func TestVerifyAcceptsAnyMatchingV1(t *testing.T) {
	payload := []byte(`{"id":"evt_rotating"}`)
	now := time.Now()
	good := hex.EncodeToString(stripewebhook.ComputeSignature(now, payload, testSecret))
	header := fmt.Sprintf("t=%d,v1=%s,v1=%s", now.Unix(), "00ff00ff", good)

	require.NoError(t, newTestVerifier(t).Verify(payload, header))
}

func TestVerifyAcceptsAnyConfiguredSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := SignTestPayload(payload, "whsec_previous", time.Now())

	v := newTestVerifier(t, "whsec_current", "whsec_previous")
	require.NoError(t, v.Verify(payload, header))
}
