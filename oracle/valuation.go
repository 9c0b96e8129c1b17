package oracle

import (
	"github.com/holiman/uint256"

	"github.com/sljivkov/collateral-oracle/domain"
)

// maxPow10 is the largest exponent for which 10^n fits in 256 bits
const maxPow10 = 77

var ten = uint256.NewInt(10)

// Value computes amount * price / 10^decimals with truncating integer division.
//
// amount is taken in the asset's smallest unit; the asset's own decimals are not
// consulted, so the result carries the asset's precision scaled into USD.
func Value(amount *uint256.Int, reading domain.FeedReading) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(amount, reading.Price)
	if overflow {
		return nil, domain.ErrArithmeticOverflow
	}

	if reading.Decimals > maxPow10 {
		// product < 2^256 < 10^78, so the quotient truncates to zero
		return new(uint256.Int), nil
	}

	divisor := new(uint256.Int).Exp(ten, uint256.NewInt(uint64(reading.Decimals)))

	return product.Div(product, divisor), nil
}
