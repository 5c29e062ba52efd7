package ledger

import (
	"context"
	"sync"

	"francoggm/paygate-go-redis/internal/models"
)

type MemoryLedger struct {
	mu       sync.RWMutex
	statuses map[models.CorrelationID]models.Status
}

func NewMemory() *MemoryLedger {
	return &MemoryLedger{
		statuses: make(map[models.CorrelationID]models.Status),
	}
}

func (l *MemoryLedger) Set(_ context.Context, id models.CorrelationID, status models.Status) error {
	l.mu.Lock()
	l.statuses[id] = status
	l.mu.Unlock()

	return nil
}

func (l *MemoryLedger) Get(_ context.Context, id models.CorrelationID) (models.Status, error) {
	l.mu.RLock()
	status, ok := l.statuses[id]
	l.mu.RUnlock()

	if !ok {
		return models.StatusUnknown, nil
	}

	return status, nil
}

func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.statuses)
}

func (l *MemoryLedger) Ping(context.Context) error {
	return nil
}

func (l *MemoryLedger) Close() error {
	return nil
}
