package cache

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig controls when the cache backend is considered down.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the configuration used for the Redis cache.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		FailureThreshold: 0.5,
		MinRequests:      10,
	}
}

// BreakerStore guards a Store with a circuit breaker. While the breaker is
// open every call fails immediately with gobreaker.ErrOpenState.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

var _ Store = (*BreakerStore)(nil)

// NewBreakerStore wraps next with a breaker built from cfg.
func NewBreakerStore(next Store, cfg BreakerConfig, logger *zap.Logger) *BreakerStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// A cancelled request says nothing about the health of the backend.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &BreakerStore{next: next, cb: cb}
}

// State returns the current breaker state.
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *BreakerStore) Exists(ctx context.Context, key string) (bool, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Exists(ctx, key)
	})
	if err != nil {
		return false, err
	}
	ok, _ := v.(bool)
	return ok, nil
}

func (s *BreakerStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.cb.Execute(func() (interface{}, error) {
		return s.next.Get(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	b, _ := v.([]byte)
	return b, nil
}

func (s *BreakerStore) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.SetEx(ctx, key, value, ttl)
	})
	return err
}

func (s *BreakerStore) Del(ctx context.Context, keys ...string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.next.Del(ctx, keys...)
	})
	return err
}
