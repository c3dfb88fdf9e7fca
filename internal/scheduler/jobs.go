package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/clientdata"
	"github.com/aristath/advisor/internal/clients/marketdata"
)

// refreshTimeout bounds one full cache warm-up pass.
const refreshTimeout = 2 * time.Minute

// purgeGrace keeps recently-expired cache entries around as a stale
// fallback for API outages.
const purgeGrace = 7 * 24 * time.Hour

// MarketRefreshJob pre-warms the market overview and sector caches so
// dashboard reads hit fresh data instead of waiting on the upstream API.
type MarketRefreshJob struct {
	market *marketdata.Client
	log    zerolog.Logger
}

// NewMarketRefreshJob creates a market cache refresh job.
func NewMarketRefreshJob(market *marketdata.Client, log zerolog.Logger) *MarketRefreshJob {
	return &MarketRefreshJob{
		market: market,
		log:    log.With().Str("job", "market_refresh").Logger(),
	}
}

// Name returns the job name.
func (j *MarketRefreshJob) Name() string {
	return "market_refresh"
}

// Run refreshes the overview, sector, crypto and bond caches.
func (j *MarketRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	overview := j.market.GetMarketOverview(ctx)
	sectors := j.market.GetSectorPerformance(ctx)
	crypto := j.market.GetCryptoPrices(ctx)
	bonds := j.market.GetBondYields(ctx)

	j.log.Info().
		Int("indices", len(overview)).
		Int("sectors", len(sectors)).
		Int("crypto", len(crypto)).
		Int("bonds", len(bonds)).
		Msg("Market caches refreshed")

	return nil
}

// CachePurgeJob removes long-expired client cache entries.
type CachePurgeJob struct {
	cacheRepo *clientdata.Repository
	log       zerolog.Logger
}

// NewCachePurgeJob creates a cache purge job.
func NewCachePurgeJob(cacheRepo *clientdata.Repository, log zerolog.Logger) *CachePurgeJob {
	return &CachePurgeJob{
		cacheRepo: cacheRepo,
		log:       log.With().Str("job", "cache_purge").Logger(),
	}
}

// Name returns the job name.
func (j *CachePurgeJob) Name() string {
	return "cache_purge"
}

// Run deletes entries that expired more than the grace period ago.
func (j *CachePurgeJob) Run() error {
	purged, err := j.cacheRepo.PurgeExpired(purgeGrace)
	if err != nil {
		return err
	}

	if purged > 0 {
		j.log.Info().Int64("purged", purged).Msg("Purged expired cache entries")
	}
	return nil
}
