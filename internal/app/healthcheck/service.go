package healthcheck

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	glog "github.com/goliatone/go-logger/glog"
)

const (
	defaultInterval = 5 * time.Second
	probeTimeout    = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckService pings the ledger in the background and keeps the last
// result for the readiness endpoint. Payment status reads never go through it.
type HealthCheckService struct {
	target     Pinger
	interval   time.Duration
	instanceID string
	logger     glog.Logger

	healthMutex sync.RWMutex
	lastErr     error
	checkedAt   time.Time
}

func NewHealthCheckService(target Pinger, interval time.Duration, logger glog.Logger) *HealthCheckService {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &HealthCheckService{
		target:     target,
		interval:   interval,
		instanceID: uuid.New().String(),
		logger:     glog.Ensure(logger),
	}
}

// Start runs an immediate probe and then one per interval until ctx is done.
func (s *HealthCheckService) Start(ctx context.Context) {
	s.Check(ctx)

	go s.backgroundRoutine(ctx)
}

func (s *HealthCheckService) backgroundRoutine(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Check probes the target once and records the outcome.
func (s *HealthCheckService) Check(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := s.target.Ping(probeCtx)

	s.healthMutex.Lock()
	wasHealthy := s.lastErr == nil && !s.checkedAt.IsZero()
	s.lastErr = err
	s.checkedAt = time.Now().UTC()
	s.healthMutex.Unlock()

	switch {
	case err != nil:
		s.logger.Warn("ledger health check failed", "instance_id", s.instanceID, "error", err)
	case !wasHealthy:
		s.logger.Info("ledger healthy", "instance_id", s.instanceID)
	}

	return err
}

// Ready returns the error of the last probe. Before the first probe it
// reports not ready.
func (s *HealthCheckService) Ready() error {
	s.healthMutex.RLock()
	defer s.healthMutex.RUnlock()

	if s.checkedAt.IsZero() {
		return ErrNotChecked
	}

	return s.lastErr
}

func (s *HealthCheckService) InstanceID() string {
	return s.instanceID
}
