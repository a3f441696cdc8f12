package marketdata

import (
	"context"
	"time"

	"github.com/thdms4101-lab/Open-API-COSPI/internal/market"
	"github.com/thdms4101-lab/Open-API-COSPI/pkg/logger"
)

// QuoteSource fetches one stock's current snapshot. internal/kis
// implements it against the real API; tests substitute a fake.
type QuoteSource interface {
	FetchQuote(ctx context.Context, code, appKey, appSecret string) (*market.Snapshot, error)
}

// ProgressObserver receives advisory fetch telemetry after each stock.
// Not a correctness contract; observers must be cheap.
type ProgressObserver interface {
	Progress(done, total int)
}

// NopObserver ignores progress updates
type NopObserver struct{}

func (NopObserver) Progress(done, total int) {}

// FetchOptions are the per-request inputs that select the data path.
type FetchOptions struct {
	AppKey    string
	AppSecret string
	UseLive   bool
}

func (o FetchOptions) hasCredentials() bool {
	return o.AppKey != "" && o.AppSecret != ""
}

// Service retrieves universe snapshots with time-bounded caching
// ⭐ SSOT: 시세 일괄 조회와 캐시 규율은 여기서만
type Service struct {
	source   QuoteSource
	store    SnapshotStore
	universe []string
	ttl      time.Duration
	logger   *logger.Logger
}

// NewService creates a snapshot service over the given source and store
func NewService(source QuoteSource, store SnapshotStore, universe []string, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		source:   source,
		store:    store,
		universe: universe,
		ttl:      ttl,
		logger:   log,
	}
}

// UniverseSnapshots returns snapshots for the whole tracked universe.
//
// Live mode with credentials fetches every code sequentially in universe
// order, skipping stocks that cannot be quoted. Otherwise, or when the
// live pass yields nothing, the fixed fallback dataset is returned
// verbatim. A batch is never a mixture of the two.
//
// Results are cached for the configured TTL keyed on
// (credentials-present, useLive); Refresh clears all entries.
func (s *Service) UniverseSnapshots(ctx context.Context, opts FetchOptions, obs ProgressObserver) Batch {
	if obs == nil {
		obs = NopObserver{}
	}

	key := snapshotKey(opts.hasCredentials(), opts.UseLive)
	if batch, ok := s.store.Get(ctx, key); ok {
		s.logger.WithFields(map[string]interface{}{
			"key":    key,
			"source": batch.Source,
			"count":  len(batch.Snapshots),
		}).Debug("Snapshot cache hit")
		return batch
	}

	batch := s.fetchBatch(ctx, opts, obs)

	s.store.Set(ctx, key, batch, s.ttl)

	s.logger.WithFields(map[string]interface{}{
		"source": batch.Source,
		"count":  len(batch.Snapshots),
		"ttl":    s.ttl,
	}).Info("Universe snapshots cached")

	return batch
}

// Refresh clears every cached entry immediately. The next call
// re-fetches regardless of TTL.
func (s *Service) Refresh(ctx context.Context) {
	s.store.Flush(ctx)
	s.logger.Info("Snapshot cache flushed")
}

// Universe returns the tracked universe codes in order
func (s *Service) Universe() []string {
	codes := make([]string, len(s.universe))
	copy(codes, s.universe)
	return codes
}

func (s *Service) fetchBatch(ctx context.Context, opts FetchOptions, obs ProgressObserver) Batch {
	if opts.UseLive && opts.hasCredentials() {
		snapshots := s.fetchLive(ctx, opts, obs)
		if len(snapshots) > 0 {
			return Batch{Source: market.SourceLive, Snapshots: snapshots}
		}
		s.logger.Warn("Live fetch yielded no snapshots, using fallback dataset")
	}

	return Batch{Source: market.SourceFallback, Snapshots: market.FallbackSnapshots()}
}

// fetchLive quotes every universe code sequentially. Failures are
// logged and skipped; the output keeps universe order.
func (s *Service) fetchLive(ctx context.Context, opts FetchOptions, obs ProgressObserver) []market.Snapshot {
	total := len(s.universe)
	snapshots := make([]market.Snapshot, 0, total)

	for i, code := range s.universe {
		snapshot, err := s.source.FetchQuote(ctx, code, opts.AppKey, opts.AppSecret)
		if err != nil {
			s.logger.WithError(err).WithField("code", code).Warn("Quote fetch skipped")
		} else {
			snapshots = append(snapshots, *snapshot)
		}

		obs.Progress(i+1, total)
	}

	return snapshots
}
