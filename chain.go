package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sljivkov/collateral-oracle/chains"
	"github.com/sljivkov/collateral-oracle/config"
	"github.com/sljivkov/collateral-oracle/oracle"
	"github.com/sljivkov/collateral-oracle/pricefeed"
)

// mockDomain replaces the chain id in the signing domain of mock mode
const mockDomain = "mock"

// describer is implemented by sources that can name their pair
type describer interface {
	Description(ctx context.Context) (string, error)
}

// backend is where the registry's feeds live
type backend struct {
	binder pricefeed.SourceBinder
	// domain is signed into admin requests, binding them to this deployment
	domain string
	close  func()
}

// newBackend returns the source binder for the configured mode
func newBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*backend, error) {
	if cfg.MockMode() {
		return newMockBackend(cfg, logger)
	}

	client, chainID, err := chains.Dial(ctx, cfg.RPCURL, logger)
	if err != nil {
		return nil, err
	}

	return &backend{
		binder: chains.NewChainlinkBinder(client, cfg.CallTimeout),
		domain: cfg.Domain + ":" + chainID.String(),
		close:  client.Close,
	}, nil
}

// newMockBackend deploys an in-memory feed at every configured feed address
func newMockBackend(cfg *config.Config, logger *zap.Logger) (*backend, error) {
	bindings, err := cfg.FeedBindings()
	if err != nil {
		return nil, err
	}

	answer, err := cfg.MockAnswer()
	if err != nil {
		return nil, err
	}

	binder := pricefeed.NewStaticBinder()
	for _, b := range bindings {
		binder.Deploy(b.Feed, pricefeed.NewStaticFeed(cfg.MockDecimals, answer))
	}

	logger.Warn("serving mock price feeds",
		zap.String("answer", cfg.MockPrice),
		zap.Uint8("decimals", cfg.MockDecimals),
		zap.Int("feeds", len(bindings)))

	return &backend{
		binder: binder,
		domain: cfg.Domain + ":" + mockDomain,
		close:  func() {},
	}, nil
}

// seedFeeds registers the configured feeds on behalf of the owner
func seedFeeds(ctx context.Context, registry *oracle.Registry, binder pricefeed.SourceBinder, cfg *config.Config, logger *zap.Logger) error {
	bindings, err := cfg.FeedBindings()
	if err != nil {
		return err
	}

	for _, b := range bindings {
		if err := registry.AddPriceFeed(registry.Owner(), b.Asset, b.Feed); err != nil {
			return err
		}

		d, ok := binder.Bind(b.Feed).(describer)
		if !ok {
			continue
		}

		desc, err := d.Description(ctx)
		if err != nil {
			logger.Warn("price feed did not answer", zap.Stringer("feed", b.Feed), zap.Error(err))
			continue
		}

		logger.Info("price feed ready", zap.Stringer("asset", b.Asset), zap.String("description", desc))
	}

	return nil
}
