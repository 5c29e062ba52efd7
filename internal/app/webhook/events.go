package webhook

import (
	"francoggm/paygate-go-redis/internal/models"

	"github.com/bytedance/sonic"
	"github.com/stripe/stripe-go/v82"
)

const DefaultMetadataKey = "correlation_id"

type envelope struct {
	ID   string           `json:"id"`
	Type stripe.EventType `json:"type"`
	Data *struct {
		Object sonic.NoCopyRawMessage `json:"object"`
	} `json:"data"`
}

// eventObject is what a variant pulls out of data.object.
type eventObject struct {
	ID            string
	CorrelationID string
}

type extractFunc func(object []byte) (eventObject, error)

// variant is one recognised event type: where its correlation id lives and
// which status it records. Types without a variant are acknowledged and
// otherwise ignored.
type variant struct {
	status  models.Status
	extract extractFunc
}

func newVariants(metadataKey string) map[stripe.EventType]variant {
	fromIntent := paymentIntentExtractor(metadataKey)

	return map[stripe.EventType]variant{
		stripe.EventTypeCheckoutSessionCompleted:             {status: models.StatusPaid, extract: extractCheckoutSession},
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded: {status: models.StatusPaid, extract: extractCheckoutSession},
		stripe.EventTypeCheckoutSessionAsyncPaymentFailed:    {status: models.StatusFailed, extract: extractCheckoutSession},
		stripe.EventTypePaymentIntentSucceeded:               {status: models.StatusPaid, extract: fromIntent},
		stripe.EventTypePaymentIntentPaymentFailed:           {status: models.StatusFailed, extract: fromIntent},
	}
}

// Checkout sessions carry the id the payment link was opened with.
func extractCheckoutSession(object []byte) (eventObject, error) {
	var session stripe.CheckoutSession
	if err := sonic.Unmarshal(object, &session); err != nil {
		return eventObject{}, err
	}

	return eventObject{ID: session.ID, CorrelationID: session.ClientReferenceID}, nil
}

// Payment intents have no client_reference_id; the id travels in metadata.
func paymentIntentExtractor(metadataKey string) extractFunc {
	return func(object []byte) (eventObject, error) {
		var intent stripe.PaymentIntent
		if err := sonic.Unmarshal(object, &intent); err != nil {
			return eventObject{}, err
		}

		return eventObject{ID: intent.ID, CorrelationID: intent.Metadata[metadataKey]}, nil
	}
}

// objectID is best effort and only used for logging ignored events.
func objectID(object []byte) string {
	var ref struct {
		ID string `json:"id"`
	}
	if err := sonic.Unmarshal(object, &ref); err != nil {
		return ""
	}

	return ref.ID
}
