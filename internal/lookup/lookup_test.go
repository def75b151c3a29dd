package lookup_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/chaininvestigator/internal/cache"
	"github.com/hedisam/chaininvestigator/internal/facts"
	"github.com/hedisam/chaininvestigator/internal/lookup"
	"github.com/hedisam/chaininvestigator/internal/retry"
)

func newRunner(attempts int) *lookup.Runner {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return lookup.NewRunner(logger, cache.New(logger), retry.NewPolicy(logger, attempts, time.Millisecond), time.Minute)
}

func TestRun(t *testing.T) {
	tests := map[string]struct {
		errs       []error
		expOutcome facts.Outcome
		expCalls   int
		expValue   int
	}{
		"first call succeeds": {
			expOutcome: facts.OutcomeOK,
			expCalls:   1,
			expValue:   42,
		},
		"transient failure is retried": {
			errs:       []error{errors.New("timeout")},
			expOutcome: facts.OutcomeOK,
			expCalls:   2,
			expValue:   42,
		},
		"not found is final": {
			errs:       []error{fmt.Errorf("receipt: %w", facts.ErrNotFound)},
			expOutcome: facts.OutcomeNotFound,
			expCalls:   1,
		},
		"exhausted retries are unavailable": {
			errs:       []error{errors.New("a"), errors.New("b"), errors.New("c")},
			expOutcome: facts.OutcomeUnavailable,
			expCalls:   3,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var calls int
			res := lookup.Run(context.Background(), newRunner(3), cache.NewKey("op", name), func(context.Context) (int, error) {
				calls++
				if calls <= len(test.errs) {
					return 0, test.errs[calls-1]
				}
				return 42, nil
			})

			assert.Equal(t, test.expOutcome, res.Outcome)
			assert.Equal(t, test.expCalls, calls)
			assert.Equal(t, test.expValue, res.Value)
			if !res.Ok() {
				assert.NotEmpty(t, res.Reason)
			}
		})
	}
}

func TestCachedWrapsRetry(t *testing.T) {
	r := newRunner(2)
	key := cache.NewKey("balance", "0xabc")

	var calls int
	fn := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	}

	v, err := lookup.Cached(context.Background(), r, key, fn)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)

	// the retried result is what got cached
	v, err = lookup.Cached(context.Background(), r, key, fn)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestCachedDoesNotCacheFailures(t *testing.T) {
	r := newRunner(1)
	key := cache.NewKey("balance", "0xdef")

	var calls int
	fn := func(context.Context) (string, error) {
		calls++
		return "", errors.New("down")
	}

	for range 3 {
		_, err := lookup.Cached(context.Background(), r, key, fn)
		require.Error(t, err)
	}
	assert.Equal(t, 3, calls)
}
