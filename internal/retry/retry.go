// Package retry re-invokes fallible lookups with a linear backoff. Every error is treated as retryable
// unless the operation marks it Permanent.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/chaininvestigator/internal/custompromauto"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 500 * time.Millisecond
)

var retries = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
	Namespace: custompromauto.Namespace,
	Name:      "lookup_retries_total",
	Help:      "Number of retried lookup attempts, by operation",
}, []string{"op"})

// Policy describes how many times an operation is attempted and how long to wait between attempts.
// The wait before attempt n+1 is BaseDelay*n.
type Policy struct {
	logger    *logrus.Logger
	attempts  int
	baseDelay time.Duration
}

func NewPolicy(logger *logrus.Logger, attempts int, baseDelay time.Duration) *Policy {
	return &Policy{
		logger:    logger,
		attempts:  max(1, attempts),
		baseDelay: max(0, baseDelay),
	}
}

// Attempts returns the total number of invocations Do makes before giving up.
func (p *Policy) Attempts() int {
	if p == nil {
		return 1
	}
	return p.attempts
}

// Do calls fn until it succeeds or the policy's attempts are exhausted, in which case the last error is
// returned. A nil policy calls fn exactly once. ctx only cuts the waits between attempts short.
func Do[T any](ctx context.Context, p *Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	if p == nil || p.attempts <= 1 {
		v, err := fn(ctx)
		return v, unwrapPermanent(err)
	}

	bk := backoff.WithContext(
		backoff.WithMaxRetries(newLinearBackOff(p.baseDelay), uint64(p.attempts-1)),
		ctx,
	)

	attempt := 1
	notify := func(err error, wait time.Duration) {
		p.logger.WithFields(logrus.Fields{
			"op":      op,
			"attempt": attempt,
			"of":      p.attempts,
			"wait":    wait,
		}).WithError(err).Warn("Lookup failed, retrying...")
		retries.WithLabelValues(op).Inc()
		attempt++
	}

	return backoff.RetryNotifyWithData[T](func() (T, error) {
		return fn(ctx)
	}, bk, notify)
}

// Permanent marks err as final so Do returns it without another attempt. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

func unwrapPermanent(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}

// linearBackOff waits base, 2*base, 3*base, ... between attempts.
type linearBackOff struct {
	base    time.Duration
	attempt int64
}

func newLinearBackOff(base time.Duration) *linearBackOff {
	return &linearBackOff{base: base}
}

func (l *linearBackOff) NextBackOff() time.Duration {
	l.attempt++
	return l.base * time.Duration(l.attempt)
}

func (l *linearBackOff) Reset() {
	l.attempt = 0
}
