package ledger

import (
	"context"
	"time"

	"francoggm/paygate-go-redis/internal/models"

	bolt "github.com/boltdb/bolt"
)

const boltBucket = "payment_statuses"

// BoltLedger keeps statuses in a single embedded database file. Bolt allows
// one writer at a time and any number of readers, each inside its own
// transaction, which gives atomic per-key upserts.
type BoltLedger struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltLedger, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, unavailable("bolt open", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, unavailable("bolt create bucket", err)
	}

	return &BoltLedger{db: db}, nil
}

func (l *BoltLedger) Set(_ context.Context, id models.CorrelationID, status models.Status) error {
	err := l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(id), []byte(status))
	})
	if err != nil {
		return unavailable("bolt put", err)
	}

	return nil
}

func (l *BoltLedger) Get(_ context.Context, id models.CorrelationID) (models.Status, error) {
	status := models.StatusUnknown

	err := l.db.View(func(tx *bolt.Tx) error {
		// v is only valid for the life of the transaction
		if v := tx.Bucket([]byte(boltBucket)).Get([]byte(id)); v != nil {
			status = models.ParseStatus(string(v))
		}
		return nil
	})
	if err != nil {
		return models.StatusUnknown, unavailable("bolt get", err)
	}

	return status, nil
}

func (l *BoltLedger) Ping(context.Context) error {
	if err := l.db.View(func(*bolt.Tx) error { return nil }); err != nil {
		return unavailable("bolt ping", err)
	}

	return nil
}

func (l *BoltLedger) Close() error {
	return l.db.Close()
}
