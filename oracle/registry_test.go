package oracle

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sljivkov/collateral-oracle/domain"
	"github.com/sljivkov/collateral-oracle/pricefeed"
)

var (
	owner    = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	stranger = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	wbtc    = common.HexToAddress("0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599")
	wbtcUSD = common.HexToAddress("0xdeb288f737066589598e9214e782fa5a8ed689e8")
	ethUSD  = common.HexToAddress("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419")
)

// MockSource implements pricefeed.PriceSource for testing
type MockSource struct {
	mock.Mock
}

func (m *MockSource) LatestPrice(ctx context.Context) (*big.Int, time.Time, error) {
	args := m.Called(ctx)

	price, _ := args.Get(0).(*big.Int)

	return price, args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSource) Decimals(ctx context.Context) (uint8, error) {
	args := m.Called(ctx)

	return args.Get(0).(uint8), args.Error(1)
}

// MockBinder implements pricefeed.SourceBinder for testing
type MockBinder struct {
	mock.Mock
}

func (m *MockBinder) Bind(feed common.Address) pricefeed.PriceSource {
	args := m.Called(feed)

	return args.Get(0).(pricefeed.PriceSource)
}

// newTestRegistry deploys a 3000 USD feed at ethUSD and registers it for the native asset
func newTestRegistry(t *testing.T) (*Registry, *pricefeed.StaticFeed) {
	t.Helper()

	binder := pricefeed.NewStaticBinder()
	feed := pricefeed.NewStaticFeed(8, big.NewInt(300000000000))
	binder.Deploy(ethUSD, feed)

	r := NewRegistry(owner, binder)
	require.NoError(t, r.AddPriceFeed(owner, domain.NativeAsset, ethUSD))

	return r, feed
}

func TestRegistry_Owner(t *testing.T) {
	r := NewRegistry(owner, pricefeed.NewStaticBinder())
	assert.Equal(t, owner, r.Owner())
}

func TestRegistry_UnregisteredAsset(t *testing.T) {
	r, _ := newTestRegistry(t)

	assert.Equal(t, common.Address{}, r.RegisteredFeed(wbtc))

	value, err := r.CollateralValue(context.Background(), wbtc, uint256.NewInt(1))
	assert.ErrorIs(t, err, domain.ErrFeedNotFound)
	assert.Nil(t, value)
}

func TestRegistry_AddPriceFeed(t *testing.T) {
	r, _ := newTestRegistry(t)

	require.NoError(t, r.AddPriceFeed(owner, wbtc, wbtcUSD))
	assert.Equal(t, wbtcUSD, r.RegisteredFeed(wbtc))
	assert.Equal(t, ethUSD, r.RegisteredFeed(domain.NativeAsset))

	t.Run("second registration wins", func(t *testing.T) {
		require.NoError(t, r.AddPriceFeed(owner, wbtc, ethUSD))
		assert.Equal(t, ethUSD, r.RegisteredFeed(wbtc))
	})

	t.Run("zero feed reads as unregistered", func(t *testing.T) {
		require.NoError(t, r.AddPriceFeed(owner, wbtc, common.Address{}))
		assert.Equal(t, common.Address{}, r.RegisteredFeed(wbtc))

		_, err := r.CollateralValue(context.Background(), wbtc, uint256.NewInt(1))
		assert.ErrorIs(t, err, domain.ErrFeedNotFound)
		assert.NotContains(t, r.Assets(), wbtc)
	})
}

func TestRegistry_AddPriceFeed_Unauthorized(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.AddPriceFeed(stranger, wbtc, wbtcUSD)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, common.Address{}, r.RegisteredFeed(wbtc))

	err = r.AddPriceFeed(stranger, domain.NativeAsset, wbtcUSD)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, ethUSD, r.RegisteredFeed(domain.NativeAsset))
}

func TestRegistry_AddPriceFeed_BindsWithoutReading(t *testing.T) {
	src := new(MockSource)
	binder := new(MockBinder)
	binder.On("Bind", wbtcUSD).Return(src).Once()

	r := NewRegistry(owner, binder)
	require.NoError(t, r.AddPriceFeed(owner, wbtc, wbtcUSD))

	binder.AssertExpectations(t)
	src.AssertNotCalled(t, "LatestPrice", mock.Anything)
	src.AssertNotCalled(t, "Decimals", mock.Anything)
}

func TestRegistry_CollateralValue(t *testing.T) {
	r, feed := newTestRegistry(t)
	ctx := context.Background()
	oneEther := uint256.MustFromDecimal("1000000000000000000")

	value, err := r.CollateralValue(ctx, domain.NativeAsset, oneEther)
	require.NoError(t, err)
	assert.Equal(t, "3000000000000000000000", value.Dec())

	t.Run("idempotent", func(t *testing.T) {
		again, err := r.CollateralValue(ctx, domain.NativeAsset, oneEther)
		require.NoError(t, err)
		assert.Equal(t, value, again)
		assert.Equal(t, uint64(1), feed.Round())
	})

	t.Run("zero amount", func(t *testing.T) {
		zero, err := r.CollateralValue(ctx, domain.NativeAsset, new(uint256.Int))
		require.NoError(t, err)
		assert.True(t, zero.IsZero())
	})

	t.Run("nil amount is zero", func(t *testing.T) {
		zero, err := r.CollateralValue(ctx, domain.NativeAsset, nil)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())
	})

	t.Run("reads the latest answer", func(t *testing.T) {
		feed.UpdateAnswer(big.NewInt(250000000000))

		updated, err := r.CollateralValue(ctx, domain.NativeAsset, oneEther)
		require.NoError(t, err)
		assert.Equal(t, "2500000000000000000000", updated.Dec())
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := r.CollateralValue(ctx, domain.NativeAsset, new(uint256.Int).SetAllOne())
		assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)
	})
}

func TestRegistry_Quote(t *testing.T) {
	r, _ := newTestRegistry(t)
	amount := uint256.NewInt(5)

	v, err := r.Quote(context.Background(), domain.NativeAsset, amount)
	require.NoError(t, err)

	assert.Equal(t, domain.NativeAsset, v.Asset)
	assert.Equal(t, ethUSD, v.Feed)
	assert.Equal(t, "5", v.Amount.Dec())
	assert.Equal(t, "300000000000", v.Reading.Price.Dec())
	assert.Equal(t, uint8(8), v.Reading.Decimals)
	assert.False(t, v.Reading.UpdatedAt.IsZero())
	assert.Equal(t, "15000", v.Value.Dec())

	amount.SetUint64(6)
	assert.Equal(t, "5", v.Amount.Dec())
}

func TestRegistry_CollateralValue_FeedReadErrors(t *testing.T) {
	readErr := errors.New("execution reverted")
	now := time.Now()

	tests := []struct {
		name  string
		setup func(src *MockSource)
		cause error
	}{
		{
			name: "latest price fails",
			setup: func(src *MockSource) {
				src.On("LatestPrice", mock.Anything).Return(nil, time.Time{}, readErr)
			},
			cause: readErr,
		},
		{
			name: "decimals fails",
			setup: func(src *MockSource) {
				src.On("LatestPrice", mock.Anything).Return(big.NewInt(100), now, nil)
				src.On("Decimals", mock.Anything).Return(uint8(0), readErr)
			},
			cause: readErr,
		},
		{
			name: "zero price",
			setup: func(src *MockSource) {
				src.On("LatestPrice", mock.Anything).Return(big.NewInt(0), now, nil)
			},
		},
		{
			name: "negative price",
			setup: func(src *MockSource) {
				src.On("LatestPrice", mock.Anything).Return(big.NewInt(-1), now, nil)
			},
		},
		{
			name: "nil price",
			setup: func(src *MockSource) {
				src.On("LatestPrice", mock.Anything).Return(nil, now, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			tt.setup(src)

			binder := new(MockBinder)
			binder.On("Bind", wbtcUSD).Return(src)

			r := NewRegistry(owner, binder)
			require.NoError(t, r.AddPriceFeed(owner, wbtc, wbtcUSD))

			value, err := r.CollateralValue(context.Background(), wbtc, uint256.NewInt(1))
			assert.Nil(t, value)
			assert.ErrorIs(t, err, domain.ErrFeedRead)

			var fre *domain.FeedReadError
			require.ErrorAs(t, err, &fre)
			assert.Equal(t, wbtc, fre.Asset)
			assert.Equal(t, wbtcUSD, fre.Feed)

			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}

			assert.Equal(t, wbtcUSD, r.RegisteredFeed(wbtc))
			src.AssertExpectations(t)
		})
	}
}

func TestRegistry_CollateralValue_UnreachableFeed(t *testing.T) {
	r := NewRegistry(owner, pricefeed.NewStaticBinder())
	require.NoError(t, r.AddPriceFeed(owner, wbtc, wbtcUSD))

	_, err := r.CollateralValue(context.Background(), wbtc, uint256.NewInt(1))
	assert.ErrorIs(t, err, domain.ErrFeedRead)
	assert.ErrorIs(t, err, pricefeed.ErrFeedUnavailable)
}

func TestRegistry_Assets(t *testing.T) {
	r, _ := newTestRegistry(t)
	require.NoError(t, r.AddPriceFeed(owner, wbtc, wbtcUSD))

	assert.Equal(t, []common.Address{wbtc, domain.NativeAsset}, r.Assets())
}

func TestRegistry_Concurrent(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			assert.NoError(t, r.AddPriceFeed(owner, wbtc, wbtcUSD))
		}()

		go func() {
			defer wg.Done()
			_, err := r.CollateralValue(ctx, domain.NativeAsset, uint256.NewInt(1))
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
	assert.Equal(t, wbtcUSD, r.RegisteredFeed(wbtc))
}
