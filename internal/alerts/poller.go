package alerts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Doer abstracts the HTTP client so tests can inject fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type PollerConfig struct {
	FeedURL        string
	Referer        string
	UserAgent      string
	Interval       time.Duration
	Cooldown       time.Duration
	Attempts       int
	RetryStep      time.Duration
	RequestTimeout time.Duration
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		FeedURL:        "https://www.oref.org.il/WarningMessages/alert/alerts.json",
		Referer:        "https://www.oref.org.il/",
		UserAgent:      "Mozilla/5.0 (compatible; ShomerBot/1.0)",
		Interval:       10 * time.Second,
		Cooldown:       45 * time.Second,
		Attempts:       3,
		RetryStep:      time.Second,
		RequestTimeout: 12 * time.Second,
	}
}

// Non-JSON payloads are a routinely observed, benign feed behavior; log them
// at most this often.
const parseLogInterval = 10 * time.Minute

// Poller drives the alert pipeline: on a fixed interval it fetches the feed,
// normalizes the payload, filters already-dispatched alerts and hands the
// rest to the broadcaster. All mutable pipeline state (dedup set, cooldown
// timestamp, log throttle) is owned by the instance.
type Poller struct {
	cfg         PollerConfig
	registry    *Registry
	broadcaster *Broadcaster
	client      Client
	http        Doer
	clock       Clock
	logger      *zap.Logger

	dedup        *ProcessedSet
	lastDispatch time.Time
	lastParseLog time.Time

	inProgress atomic.Bool
	stop       chan struct{}
	done       chan struct{}
}

func NewPoller(cfg PollerConfig, registry *Registry, broadcaster *Broadcaster, client Client, logger *zap.Logger) *Poller {
	defaults := DefaultPollerConfig()
	if cfg.FeedURL == "" {
		cfg.FeedURL = defaults.FeedURL
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaults.Interval
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaults.Cooldown
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaults.Attempts
	}
	if cfg.RetryStep <= 0 {
		cfg.RetryStep = defaults.RetryStep
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.Referer == "" {
		cfg.Referer = defaults.Referer
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	return &Poller{
		cfg:         cfg,
		registry:    registry,
		broadcaster: broadcaster,
		client:      client,
		http:        &http.Client{},
		clock:       realClock{},
		logger:      logger,
		dedup:       NewProcessedSet(DefaultProcessedCap),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (p *Poller) WithClock(clock Clock) {
	p.clock = clock
}

func (p *Poller) WithHTTPClient(client Doer) {
	p.http = client
}

// Start runs one registry validation pass, then begins polling in the
// background until Stop is called or the context is canceled.
func (p *Poller) Start(ctx context.Context) {
	if _, err := p.registry.ListValid(ctx, p.client); err != nil {
		p.logger.Warn("startup channel validation failed", zap.Error(err))
	}
	go p.loop(ctx)
	p.logger.Info("alert poller started",
		zap.String("feed_url", p.cfg.FeedURL),
		zap.Duration("interval", p.cfg.Interval))
}

func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
	p.logger.Info("alert poller stopped")
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.tick(ctx)
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// tick runs one poll cycle. The in-progress flag keeps a slow cycle from
// overlapping the next firing; the cooldown gate skips the whole tick,
// fetch included, shortly after a dispatched alert.
func (p *Poller) tick(ctx context.Context) {
	if !p.inProgress.CompareAndSwap(false, true) {
		return
	}
	defer p.inProgress.Store(false)

	now := p.clock.Now()
	if !p.lastDispatch.IsZero() && now.Sub(p.lastDispatch) < p.cfg.Cooldown {
		return
	}

	body, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("alert feed fetch failed", zap.Error(err))
		return
	}

	records, err := Normalize(body)
	if err != nil {
		if now.Sub(p.lastParseLog) >= parseLogInterval {
			p.lastParseLog = now
			p.logger.Warn("alert feed returned non-JSON payload", zap.Error(err))
		}
		return
	}

	for _, alert := range records {
		if !p.dedup.ShouldDispatch(alert.Key()) {
			continue
		}
		p.broadcaster.Broadcast(ctx, alert, now, p.client)
		p.lastDispatch = p.clock.Now()
	}
}

// fetch tries the feed up to the configured attempt budget, sleeping
// attempt-index × RetryStep between tries.
func (p *Poller) fetch(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.Attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * p.cfg.RetryStep):
			}
		}
		body, err := p.fetchOnce(ctx)
		if err == nil {
			return body, nil
		}
		lastErr = err
		p.logger.Debug("alert feed attempt failed", zap.Int("attempt", attempt), zap.Error(err))
	}
	return nil, lastErr
}

func (p *Poller) fetchOnce(ctx context.Context) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, p.cfg.FeedURL, nil)
	if err != nil {
		return nil, err
	}
	// The upstream service only answers requests that look same-origin.
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", p.cfg.Referer)
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
