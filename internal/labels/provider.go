// Package labels serves address label lists (stablecoin contracts, exchanges, mixers, known-bad contracts,
// scam addresses) merged from built-in seeds and public community lists.
package labels

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hedisam/chaininvestigator/internal/cache"
	"github.com/hedisam/chaininvestigator/internal/custompromauto"
	"github.com/hedisam/pipeline/chans"
)

const (
	DefaultTTL        = 24 * time.Hour
	DefaultRetryTTL   = 5 * time.Minute
	DefaultFetchLimit = 4
	DefaultTimeout    = 12 * time.Second

	maxListSize = 8 << 20
)

var (
	fetches = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Namespace: custompromauto.Namespace,
		Name:      "label_fetches_total",
		Help:      "Number of label list downloads, by category and outcome",
	}, []string{"category", "outcome"})

	labelledAddresses = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Namespace: custompromauto.Namespace,
		Name:      "labelled_addresses",
		Help:      "Number of labelled addresses in the current label set",
	})
)

var (
	labelsKey   = cache.NewKey("labels")
	fallbackKey = cache.NewKey("labels", "fallback")
)

// SnapshotStore persists the last good label set.
type SnapshotStore interface {
	Save(ctx context.Context, set Set, savedAt time.Time) error
	Load(ctx context.Context) (Set, time.Time, error)
}

type config struct {
	ttl        time.Duration
	retryTTL   time.Duration
	fetchLimit int
	snapshot   SnapshotStore
	now        func() time.Time
}

type Option func(*config)

// WithTTL sets how long a fetched label set is served before it is fetched again. Defaults to DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRetryTTL sets how long a set built without any remote list answering is served before the lists are
// tried again. Defaults to DefaultRetryTTL.
func WithRetryTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.retryTTL = ttl
		}
	}
}

// WithFetchLimit caps the number of lists downloaded concurrently.
func WithFetchLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.fetchLimit = n
		}
	}
}

// WithSnapshot enables persisting every fetched set and falling back to it when no remote list answers.
func WithSnapshot(s SnapshotStore) Option {
	return func(c *config) {
		c.snapshot = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

type Provider struct {
	logger     *logrus.Logger
	httpClient *http.Client
	cache      *cache.Cache
	ttl        time.Duration
	retryTTL   time.Duration
	fetchLimit int
	snapshot   SnapshotStore
	now        func() time.Time

	mu      sync.RWMutex
	sources Sources
}

func NewProvider(logger *logrus.Logger, httpClient *http.Client, sources Sources, opts ...Option) *Provider {
	cfg := &config{
		ttl:        DefaultTTL,
		retryTTL:   DefaultRetryTTL,
		fetchLimit: DefaultFetchLimit,
		now:        time.Now,
	}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &Provider{
		logger:     logger,
		httpClient: httpClient,
		cache:      cache.New(logger, cache.WithMaxEntries(2), cache.WithClock(cfg.now)),
		ttl:        cfg.ttl,
		retryTTL:   min(cfg.retryTTL, cfg.ttl),
		fetchLimit: cfg.fetchLimit,
		snapshot:   cfg.snapshot,
		now:        cfg.now,
		sources:    sources,
	}
}

// SetSources replaces the list URLs. The next GetLabels with forceRefresh, or after the TTL, uses them.
func (p *Provider) SetSources(sources Sources) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources = sources
}

func (p *Provider) Sources() Sources {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sources
}

// GetLabels returns the current label set, fetching it when it is older than the TTL or when forceRefresh
// is set. It never fails: unreachable lists are skipped, and the seeds are always present. A set built
// while no list answered is only kept for the retry TTL.
// The fetch is detached from ctx cancellation so an abandoned request cannot cut it short.
// The returned set must not be modified.
func (p *Provider) GetLabels(ctx context.Context, forceRefresh bool) Set {
	if forceRefresh {
		p.cache.Delete(labelsKey)
		p.cache.Delete(fallbackKey)
	}

	if v, ok := p.cache.Get(labelsKey, p.ttl); ok {
		return v.(Set)
	}
	if v, ok := p.cache.Get(fallbackKey, p.retryTTL); ok {
		return v.(Set)
	}

	set, answered := p.refresh(context.WithoutCancel(ctx))
	if answered > 0 {
		p.cache.Delete(fallbackKey)
		p.cache.Set(labelsKey, set, p.ttl)
	} else {
		p.cache.Set(fallbackKey, set, p.retryTTL)
	}
	return set
}

// StartRefresher builds the label set right away and then forces a refresh every interval until ctx is done.
func (p *Provider) StartRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	warm := p.GetLabels(ctx, false)
	p.logger.WithField("labelled", warm.Len()).Debug("Label lists loaded")

	for range chans.ReceiveOrDoneSeq(ctx, ticker.C) {
		set := p.GetLabels(ctx, true)
		p.logger.WithField("labelled", set.Len()).Debug("Label lists refreshed")
	}
}

func (p *Provider) refresh(ctx context.Context) (Set, int) {
	logger := p.logger.WithContext(ctx)

	fetched, answered := p.fetchAll(ctx, p.Sources())
	set := Seeds()
	switch {
	case answered > 0:
		set.merge(fetched)
		p.saveSnapshot(ctx, fetched)
	case p.snapshot != nil:
		snap, savedAt, err := p.snapshot.Load(ctx)
		if err != nil {
			logger.WithError(err).Warn("No label list answered and no snapshot is available, using seeds only")
			break
		}
		logger.WithField("saved_at", savedAt).Warn("No label list answered, using the last snapshot")
		set.merge(snap)
	default:
		logger.Warn("No label list answered, using seeds only")
	}

	labelledAddresses.Set(float64(set.Len()))
	logger.WithFields(logrus.Fields{
		"labelled": set.Len(),
		"answered": answered,
	}).Info("Label set built")
	return set, answered
}

// fetchAll downloads every source concurrently and reports how many lists answered with at least one
// address.
func (p *Provider) fetchAll(ctx context.Context, sources Sources) (Set, int) {
	var (
		mu       sync.Mutex
		set      = Set{}
		answered int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fetchLimit)
	for category, urls := range sources {
		for url := range slices.Values(urls) {
			g.Go(func() error {
				addrs, err := p.fetchList(ctx, url)
				if err != nil {
					fetches.WithLabelValues(category, "error").Inc()
					p.logger.WithFields(logrus.Fields{
						"category": category,
						"url":      url,
					}).WithError(err).Warn("Could not fetch label list, skipping it")
					return nil
				}
				fetches.WithLabelValues(category, "ok").Inc()
				if len(addrs) == 0 {
					return nil
				}

				mu.Lock()
				defer mu.Unlock()
				set.add(category, addrs...)
				answered++
				return nil
			})
		}
	}
	_ = g.Wait()

	return set, answered
}

func (p *Provider) fetchList(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create new http request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListSize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return parseList(body, resp.Header.Get("Content-Type")), nil
}

func (p *Provider) saveSnapshot(ctx context.Context, set Set) {
	if p.snapshot == nil {
		return
	}
	err := p.snapshot.Save(ctx, set, p.now())
	if err != nil {
		p.logger.WithContext(ctx).WithError(err).Warn("Could not save label snapshot")
	}
}
