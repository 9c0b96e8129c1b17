// Package pricefeed provides the price source interfaces used by the oracle registry
package pricefeed

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PriceSource is the read contract of a price feed
type PriceSource interface {
	// LatestPrice returns the most recent answer and the time it was reported
	LatestPrice(ctx context.Context) (*big.Int, time.Time, error)

	// Decimals returns the fixed-point precision of the answer
	Decimals(ctx context.Context) (uint8, error)
}

// SourceBinder turns a feed identifier into a PriceSource.
// Binding must not perform any I/O; a bad feed only fails when it is read.
type SourceBinder interface {
	Bind(feed common.Address) PriceSource
}
