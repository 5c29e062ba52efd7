// Package ledger stores the payment status of each correlation id.
//
// Every adapter is an unconditional upsert store: Set overwrites, Get reads
// the backing store directly with no cache in between. Failures of the store
// itself are reported as ErrUnavailable so callers can tell an outage apart
// from an id that has simply not been paid yet.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"francoggm/paygate-go-redis/internal/models"
)

var ErrUnavailable = errors.New("ledger unavailable")

type Ledger interface {
	Set(ctx context.Context, id models.CorrelationID, status models.Status) error
	// Get returns StatusUnknown with a nil error when no record exists.
	Get(ctx context.Context, id models.CorrelationID) (models.Status, error)
	Ping(ctx context.Context) error
	Close() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

// TextCodeUnavailable is the error text code callers attach when ErrUnavailable
// reaches the HTTP surface.
const TextCodeUnavailable = "LEDGER_UNAVAILABLE"
