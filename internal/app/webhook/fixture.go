package webhook

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"
)

// NewTestEvent builds an event body of the given type with correlationID
// placed where that type carries it. An empty correlationID leaves the field
// out. It backs the paygatectl send-event command and the tests.
func NewTestEvent(eventType stripe.EventType, correlationID, metadataKey string) ([]byte, error) {
	if metadataKey == "" {
		metadataKey = DefaultMetadataKey
	}

	object := map[string]any{}
	switch eventType {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded,
		stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		object["id"] = "cs_test_" + shortID()
		object["object"] = "checkout.session"
		object["mode"] = "payment"
		if correlationID != "" {
			object["client_reference_id"] = correlationID
		}
	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
		object["id"] = "pi_test_" + shortID()
		object["object"] = "payment_intent"
		metadata := map[string]string{}
		if correlationID != "" {
			metadata[metadataKey] = correlationID
		}
		object["metadata"] = metadata
	default:
		object["id"] = "pm_test_" + shortID()
		object["object"] = "payment_method"
		if correlationID != "" {
			object["metadata"] = map[string]string{metadataKey: correlationID}
		}
	}

	return sonic.Marshal(map[string]any{
		"id":          "evt_test_" + shortID(),
		"object":      "event",
		"api_version": stripe.APIVersion,
		"created":     time.Now().Unix(),
		"livemode":    false,
		"type":        string(eventType),
		"data":        map[string]any{"object": object},
	})
}

// SignTestPayload returns a signature header for payload as the provider
// would compute it at the given time.
func SignTestPayload(payload []byte, secret string, at time.Time) string {
	signed := stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})

	return signed.Header
}

func shortID() string {
	return uuid.NewString()[:8]
}
