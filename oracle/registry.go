// Package oracle implements the collateral oracle registry: an owner-gated
// mapping from assets to price feeds and the valuation of asset amounts in USD.
package oracle

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/sljivkov/collateral-oracle/domain"
	"github.com/sljivkov/collateral-oracle/metrics"
	"github.com/sljivkov/collateral-oracle/pricefeed"
)

type entry struct {
	feed   common.Address
	source pricefeed.PriceSource
}

// Registry maps collateral assets to price feeds.
//
// Every method is safe for concurrent use. Mutations are serialized; a
// valuation reads its entry under the lock and queries the feed without it.
type Registry struct {
	mu     sync.RWMutex
	owner  common.Address
	feeds  map[common.Address]entry
	binder pricefeed.SourceBinder
	logger *zap.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry owned by owner
func NewRegistry(owner common.Address, binder pricefeed.SourceBinder, opts ...Option) *Registry {
	r := &Registry{
		owner:  owner,
		feeds:  make(map[common.Address]entry),
		binder: binder,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Owner returns the only identity allowed to register feeds
func (r *Registry) Owner() common.Address {
	return r.owner
}

// AddPriceFeed maps asset to feed on behalf of caller, replacing any previous feed.
// The feed is not validated; a bad feed only fails at valuation time.
func (r *Registry) AddPriceFeed(caller, asset, feed common.Address) error {
	if caller != r.owner {
		metrics.FeedRegistrationsTotal.WithLabelValues("unauthorized").Inc()
		r.logger.Warn("rejected price feed registration",
			zap.Stringer("caller", caller),
			zap.Stringer("asset", asset),
			zap.Stringer("feed", feed))

		return fmt.Errorf("%w: %s is not the owner", domain.ErrUnauthorized, caller.Hex())
	}

	e := entry{feed: feed}
	if feed != (common.Address{}) {
		e.source = r.binder.Bind(feed)
	}

	r.mu.Lock()
	previous := r.feeds[asset].feed
	r.feeds[asset] = e
	r.mu.Unlock()

	metrics.FeedRegistrationsTotal.WithLabelValues("ok").Inc()
	r.logger.Info("price feed registered",
		zap.Stringer("asset", asset),
		zap.Stringer("feed", feed),
		zap.Stringer("previous", previous))

	return nil
}

// RegisteredFeed returns the feed for asset, or the zero address if there is none
func (r *Registry) RegisteredFeed(asset common.Address) common.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.feeds[asset].feed
}

// Assets returns the assets with a registered feed in address order
func (r *Registry) Assets() []common.Address {
	r.mu.RLock()
	assets := make([]common.Address, 0, len(r.feeds))
	for asset, e := range r.feeds {
		if e.feed != (common.Address{}) {
			assets = append(assets, asset)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(assets, func(a, b common.Address) int {
		return a.Cmp(b)
	})

	return assets
}

// CollateralValue returns amount * price / 10^decimals for the feed registered to asset
func (r *Registry) CollateralValue(ctx context.Context, asset common.Address, amount *uint256.Int) (*uint256.Int, error) {
	v, err := r.Quote(ctx, asset, amount)
	if err != nil {
		return nil, err
	}

	return v.Value, nil
}

// Quote values amount of asset and returns the feed reading used alongside the value
func (r *Registry) Quote(ctx context.Context, asset common.Address, amount *uint256.Int) (domain.Valuation, error) {
	if amount == nil {
		amount = new(uint256.Int)
	}

	r.mu.RLock()
	e := r.feeds[asset]
	r.mu.RUnlock()

	if e.feed == (common.Address{}) {
		metrics.ValuationsTotal.WithLabelValues("not_found").Inc()

		return domain.Valuation{}, fmt.Errorf("%w: asset %s", domain.ErrFeedNotFound, asset.Hex())
	}

	reading, err := read(ctx, e.source)
	if err != nil {
		metrics.ValuationsTotal.WithLabelValues("read_error").Inc()
		r.logger.Warn("price feed read failed",
			zap.Stringer("asset", asset),
			zap.Stringer("feed", e.feed),
			zap.Error(err))

		return domain.Valuation{}, &domain.FeedReadError{Asset: asset, Feed: e.feed, Err: err}
	}

	value, err := Value(amount, reading)
	if err != nil {
		metrics.ValuationsTotal.WithLabelValues("overflow").Inc()

		return domain.Valuation{}, fmt.Errorf("valuing %s of asset %s at price %s: %w",
			amount.Dec(), asset.Hex(), reading.Price.Dec(), err)
	}

	metrics.ValuationsTotal.WithLabelValues("ok").Inc()
	r.logger.Debug("collateral valued",
		zap.Stringer("asset", asset),
		zap.String("amount", amount.Dec()),
		zap.String("price", reading.Price.Dec()),
		zap.Uint8("decimals", reading.Decimals),
		zap.String("value", value.Dec()))

	return domain.Valuation{
		Asset:   asset,
		Feed:    e.feed,
		Amount:  new(uint256.Int).Set(amount),
		Reading: reading,
		Value:   value,
	}, nil
}

func read(ctx context.Context, src pricefeed.PriceSource) (domain.FeedReading, error) {
	start := time.Now()
	defer func() {
		metrics.FeedReadDuration.Observe(time.Since(start).Seconds())
	}()

	answer, updatedAt, err := src.LatestPrice(ctx)
	if err != nil {
		return domain.FeedReading{}, fmt.Errorf("latest price: %w", err)
	}

	if answer == nil || answer.Sign() <= 0 {
		return domain.FeedReading{}, fmt.Errorf("non-positive price %v", answer)
	}

	price, overflow := uint256.FromBig(answer)
	if overflow {
		return domain.FeedReading{}, fmt.Errorf("price %s exceeds 256 bits", answer)
	}

	decimals, err := src.Decimals(ctx)
	if err != nil {
		return domain.FeedReading{}, fmt.Errorf("decimals: %w", err)
	}

	return domain.FeedReading{
		Price:     price,
		Decimals:  decimals,
		UpdatedAt: updatedAt,
	}, nil
}
