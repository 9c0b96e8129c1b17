// Package domain defines core types and errors for the collateral oracle
package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// NativeAsset identifies the chain's native currency in the registry
var NativeAsset = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// FeedReading is a single read of a price feed. It is never stored.
type FeedReading struct {
	Price     *uint256.Int // Latest answer, always positive
	Decimals  uint8        // Fixed-point precision of Price
	UpdatedAt time.Time    // Time the feed last updated the answer
}

// Valuation is the result of valuing an amount of a registered asset
type Valuation struct {
	Asset   common.Address
	Feed    common.Address
	Amount  *uint256.Int
	Reading FeedReading
	Value   *uint256.Int
}
