package webhook

import (
	"bytes"
	"context"
	"errors"

	"francoggm/paygate-go-redis/internal/app/ledger"
	"francoggm/paygate-go-redis/internal/models"

	"github.com/bytedance/sonic"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/stripe/stripe-go/v82"
)

type Outcome string

const (
	OutcomeApplied              Outcome = "applied"
	OutcomeIgnored              Outcome = "ignored"
	OutcomeMissingCorrelationID Outcome = "missing_correlation_id"
)

type SignatureVerifier interface {
	Verify(payload []byte, header string) error
}

type Result struct {
	EventID       string
	Type          stripe.EventType
	ObjectID      string
	CorrelationID models.CorrelationID
	Status        models.Status
	Outcome       Outcome
}

type Applier struct {
	verifier    SignatureVerifier
	ledger      ledger.Ledger
	logger      glog.Logger
	metadataKey string
	variants    map[stripe.EventType]variant
}

type Option func(*Applier)

func WithLogger(logger glog.Logger) Option {
	return func(a *Applier) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetadataKey sets the payment intent metadata key holding the
// correlation id.
func WithMetadataKey(key string) Option {
	return func(a *Applier) {
		if key != "" {
			a.metadataKey = key
		}
	}
}

func NewApplier(verifier SignatureVerifier, l ledger.Ledger, opts ...Option) *Applier {
	a := &Applier{
		verifier:    verifier,
		ledger:      l,
		logger:      glog.Nop(),
		metadataKey: DefaultMetadataKey,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.variants = newVariants(a.metadataKey)

	return a
}

// Apply authenticates payload and records the status it implies. payload is
// the request body exactly as received; nothing in it is trusted until the
// signature has been checked. A nil error means the event can be
// acknowledged, including types this service does not act on.
func (a *Applier) Apply(ctx context.Context, payload []byte, signatureHeader string) (Result, error) {
	logger := a.logger.WithContext(ctx)

	if err := a.verifier.Verify(payload, signatureHeader); err != nil {
		logger.Warn("webhook signature rejected", "error", err)
		return Result{}, err
	}

	var event envelope
	if err := sonic.Unmarshal(payload, &event); err != nil {
		return Result{}, malformedError(err, "webhook body is not a valid event", nil)
	}
	if event.Type == "" {
		return Result{}, malformedError(nil, "webhook event has no type", map[string]any{"event_id": event.ID})
	}
	if event.Data == nil || len(event.Data.Object) == 0 || bytes.Equal(event.Data.Object, []byte("null")) {
		return Result{}, malformedError(nil, "webhook event has no data.object", map[string]any{"event_id": event.ID, "type": string(event.Type)})
	}

	result := Result{EventID: event.ID, Type: event.Type}

	v, ok := a.variants[event.Type]
	if !ok {
		result.ObjectID = objectID(event.Data.Object)
		result.Outcome = OutcomeIgnored
		logger.Info("ignoring unhandled webhook event", "event_id", event.ID, "type", event.Type, "object_id", result.ObjectID)
		return result, nil
	}

	object, err := v.extract(event.Data.Object)
	if err != nil {
		return Result{}, malformedError(err, "webhook data.object does not match its event type", map[string]any{"event_id": event.ID, "type": string(event.Type)})
	}
	result.ObjectID = object.ID

	id, err := models.ParseCorrelationID(object.CorrelationID)
	if err != nil {
		// Redelivery cannot add the missing id, so acknowledge.
		result.Outcome = OutcomeMissingCorrelationID
		logger.Warn("webhook event has no correlation id", "event_id", event.ID, "type", event.Type, "object_id", object.ID)
		return result, nil
	}
	result.CorrelationID = id
	result.Status = v.status

	if err := a.ledger.Set(ctx, id, v.status); err != nil {
		logger.Error("failed to record payment status", "event_id", event.ID, "correlation_id", id, "status", v.status, "error", err)
		return Result{}, ledgerError(err, errors.Is(err, ledger.ErrUnavailable), map[string]any{"event_id": event.ID})
	}

	result.Outcome = OutcomeApplied
	logger.Info("payment status recorded", "event_id", event.ID, "type", event.Type, "correlation_id", id, "status", v.status)

	return result, nil
}
