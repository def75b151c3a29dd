// Package lookup composes an adapter call with the shared retry policy and TTL cache: cache(retry(call)).
// Results that end without a value are mapped to a facts.Result so callers can tell not-found from
// unavailable without inspecting errors.
package lookup

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/cache"
	"github.com/hedisam/chaininvestigator/internal/custompromauto"
	"github.com/hedisam/chaininvestigator/internal/facts"
	"github.com/hedisam/chaininvestigator/internal/retry"
)

const DefaultTTL = 5 * time.Minute

// Operation names double as cache key namespaces, so two callers asking the same question share an entry.
const (
	OpReceipt       = "tx_receipt"
	OpBlock         = "block"
	OpBalance       = "balance"
	OpTxCount       = "tx_count"
	OpTronTx        = "tron_tx"
	OpTronAccount   = "tron_account"
	OpTokenHoldings = "token_holdings"
)

var degraded = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "degraded_lookups_total",
	Help:      "Number of lookups that ended without a value, by operation and outcome",
}, []string{"op", "outcome"})

// Runner holds what every lookup shares. A nil cache disables memoisation and a nil policy disables retries.
type Runner struct {
	logger *logrus.Logger
	cache  *cache.Cache
	policy *retry.Policy
	ttl    time.Duration
}

func NewRunner(logger *logrus.Logger, c *cache.Cache, policy *retry.Policy, ttl time.Duration) *Runner {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Runner{
		logger: logger,
		cache:  c,
		policy: policy,
		ttl:    ttl,
	}
}

// Cached runs fn through the retry policy and memoises a successful result under key.
// A facts.ErrNotFound answer is final and is not retried.
func Cached[T any](ctx context.Context, r *Runner, key cache.Key, fn func(context.Context) (T, error)) (T, error) {
	return cache.GetOrCompute(r.cache, key, r.ttl, func() (T, error) {
		return retry.Do(ctx, r.policy, key.Op, func(ctx context.Context) (T, error) {
			v, err := fn(ctx)
			if errors.Is(err, facts.ErrNotFound) {
				return v, retry.Permanent(err)
			}
			return v, err
		})
	})
}

// Run is Cached with the error mapped to a facts.Result. Every degraded result is logged.
func Run[T any](ctx context.Context, r *Runner, key cache.Key, fn func(context.Context) (T, error)) facts.Result[T] {
	v, err := Cached(ctx, r, key, fn)
	if err != nil {
		res := facts.FromError[T](err)
		r.Degraded(ctx, key.Op, res.Outcome, res.Reason)
		return res
	}
	return facts.OK(v)
}

// Degraded records a lookup that ended without a value.
func (r *Runner) Degraded(ctx context.Context, op string, outcome facts.Outcome, reason string) {
	degraded.WithLabelValues(op, string(outcome)).Inc()
	r.logger.WithContext(ctx).WithFields(logrus.Fields{
		"op":      op,
		"outcome": outcome,
		"reason":  reason,
	}).Warn("Lookup ended without a value")
}
