package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/nmehta/dpdpacheck/internal/cache"
	"github.com/nmehta/dpdpacheck/internal/model"
)

// sleepFunc is the sleep used between retry attempts (injectable for tests).
var sleepFunc = time.Sleep

// Adapter wraps a Provider with rate limiting, retry with exponential
// backoff, and response caching keyed by (provider, model, checklist
// version, sentence). This is the matching engine's only path to the
// external service.
type Adapter struct {
	provider   Provider
	config     Config
	limiter    *rate.Limiter
	store      cache.Cache
	cacheTTL   time.Duration
	maxRetries int
}

// AdapterOption customizes an Adapter.
type AdapterOption func(*Adapter)

// WithCache enables response caching with the given store and TTL.
func WithCache(store cache.Cache, ttl time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.store = store
		a.cacheTTL = ttl
	}
}

// WithRateLimit throttles provider calls to r requests per second.
func WithRateLimit(r float64, burst int) AdapterOption {
	return func(a *Adapter) {
		if burst <= 0 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// NewAdapter wraps the provider. Without options there is no cache and no
// throttle; retries come from config.
func NewAdapter(provider Provider, config Config, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		provider:   provider,
		config:     config,
		maxRetries: config.MaxRetries,
	}
	if a.maxRetries <= 0 {
		a.maxRetries = 1
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the underlying provider name.
func (a *Adapter) Name() string {
	return a.provider.Name()
}

// MatchSentence resolves one (sentence, section) pair: cache first, then the
// provider with throttling and retries. Claims are cached on success,
// including the empty list, which is the common case.
func (a *Adapter) MatchSentence(ctx context.Context, sentence string, cl model.Checklist) ([]model.MatchClaim, error) {
	key := cache.Key(a.provider.Name(), a.config.Model, cl.Version, sentence)

	if a.store != nil {
		if raw, found := a.store.Get(key); found {
			var claims []model.MatchClaim
			if err := json.Unmarshal(raw, &claims); err == nil {
				return claims, nil
			}
			// Corrupt entry: fall through to the provider.
			_ = a.store.Delete(key)
		}
	}

	claims, err := a.callWithRetry(ctx, sentence, cl)
	if err != nil {
		return nil, err
	}

	if a.store != nil {
		if raw, err := json.Marshal(claims); err == nil {
			_ = a.store.Set(key, raw, a.cacheTTL)
		}
	}
	return claims, nil
}

func (a *Adapter) callWithRetry(ctx context.Context, sentence string, cl model.Checklist) ([]model.MatchClaim, error) {
	var lastErr error

	for attempt := 0; attempt < a.maxRetries; attempt++ {
		if a.limiter != nil {
			if err := a.limiter.Wait(ctx); err != nil {
				return nil, &CallError{Kind: ErrCommunication, Err: err}
			}
		}

		claims, err := a.provider.MatchSentence(ctx, sentence, cl)
		if err == nil {
			return claims, nil
		}
		lastErr = err

		var callErr *CallError
		if !errors.As(err, &callErr) || !callErr.Retryable() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, &CallError{Kind: ErrCommunication, Err: ctx.Err()}
		}
		if attempt < a.maxRetries-1 {
			sleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}

	return nil, lastErr
}
