// Package chains provides blockchain backed price sources
package chains

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/sljivkov/collateral-oracle/contract"
	"github.com/sljivkov/collateral-oracle/pricefeed"
)

// DefaultCallTimeout bounds a single feed call when no timeout is configured
const DefaultCallTimeout = 10 * time.Second

// ChainlinkSource reads a Chainlink AggregatorV3 compatible feed
type ChainlinkSource struct {
	address common.Address
	caller  *contract.AggregatorCaller
	timeout time.Duration
}

// NewChainlinkSource binds the aggregator deployed at address
func NewChainlinkSource(address common.Address, caller bind.ContractCaller, timeout time.Duration) (*ChainlinkSource, error) {
	aggregator, err := contract.NewAggregatorCaller(address, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to bind aggregator %s: %w", address.Hex(), err)
	}

	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	return &ChainlinkSource{
		address: address,
		caller:  aggregator,
		timeout: timeout,
	}, nil
}

// Address returns the feed address
func (s *ChainlinkSource) Address() common.Address {
	return s.address
}

// LatestPrice fetches latestRoundData and returns its answer and update time
func (s *ChainlinkSource) LatestPrice(ctx context.Context) (*big.Int, time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	round, err := s.caller.LatestRoundData(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to fetch Chainlink price data from %s: %w", s.address.Hex(), err)
	}

	if round.Answer == nil {
		return nil, time.Time{}, fmt.Errorf("invalid price data received from Chainlink feed %s", s.address.Hex())
	}

	var updatedAt time.Time
	if round.UpdatedAt != nil && round.UpdatedAt.IsInt64() {
		updatedAt = time.Unix(round.UpdatedAt.Int64(), 0).UTC()
	}

	return round.Answer, updatedAt, nil
}

// Decimals fetches the precision of the feed answer
func (s *ChainlinkSource) Decimals(ctx context.Context) (uint8, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	decimals, err := s.caller.Decimals(&bind.CallOpts{Context: ctx})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch Chainlink decimals from %s: %w", s.address.Hex(), err)
	}

	return decimals, nil
}

// Description fetches the human readable pair name, e.g. "ETH / USD"
func (s *ChainlinkSource) Description(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	desc, err := s.caller.Description(&bind.CallOpts{Context: ctx})
	if err != nil {
		return "", fmt.Errorf("failed to fetch Chainlink description from %s: %w", s.address.Hex(), err)
	}

	return desc, nil
}

// ChainlinkBinder binds feed addresses to ChainlinkSources sharing one RPC caller
type ChainlinkBinder struct {
	caller  bind.ContractCaller
	timeout time.Duration
}

// NewChainlinkBinder creates a binder over caller, usually an *ethclient.Client
func NewChainlinkBinder(caller bind.ContractCaller, timeout time.Duration) *ChainlinkBinder {
	return &ChainlinkBinder{
		caller:  caller,
		timeout: timeout,
	}
}

// Bind returns a ChainlinkSource for feed. No call is made until the source is read.
func (b *ChainlinkBinder) Bind(feed common.Address) pricefeed.PriceSource {
	src, err := NewChainlinkSource(feed, b.caller, b.timeout)
	if err != nil {
		return brokenSource{err: err}
	}

	return src
}

type brokenSource struct {
	err error
}

func (b brokenSource) LatestPrice(context.Context) (*big.Int, time.Time, error) {
	return nil, time.Time{}, b.err
}

func (b brokenSource) Decimals(context.Context) (uint8, error) {
	return 0, b.err
}
