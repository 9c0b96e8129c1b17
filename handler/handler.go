// Package handler serves the oracle registry over HTTP
package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sljivkov/collateral-oracle/domain"
	"github.com/sljivkov/collateral-oracle/metrics"
)

// Oracle is the registry surface served by the handler
type Oracle interface {
	Owner() common.Address
	AddPriceFeed(caller, asset, feed common.Address) error
	RegisteredFeed(asset common.Address) common.Address
	Assets() []common.Address
	Quote(ctx context.Context, asset common.Address, amount *uint256.Int) (domain.Valuation, error)
}

// DefaultDomain is signed into admin requests unless WithDomain sets another
const DefaultDomain = "collateral-oracle"

type handler struct {
	oracle Oracle
	logger *zap.Logger
	domain string

	// mu serializes admin requests; nonce is the last one accepted
	mu    sync.Mutex
	nonce uint64
}

// Option configures the handler
type Option func(*handler)

// WithDomain sets the domain admin signatures must commit to
func WithDomain(domain string) Option {
	return func(h *handler) {
		h.domain = domain
	}
}

type ownerResponse struct {
	Owner     string `json:"owner"`
	Domain    string `json:"domain"`
	NextNonce uint64 `json:"nextNonce"`
}

type feedResponse struct {
	Asset      string `json:"asset"`
	Feed       string `json:"feed"`
	Registered bool   `json:"registered"`
}

type valuationResponse struct {
	Asset         string    `json:"asset"`
	Feed          string    `json:"feed"`
	Amount        string    `json:"amount"`
	Price         string    `json:"price"`
	PriceDecimals uint8     `json:"priceDecimals"`
	PriceUSD      string    `json:"priceUsd"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Value         string    `json:"value"`
}

// New registers the oracle routes on e
func New(e *echo.Echo, oracle Oracle, logger *zap.Logger, opts ...Option) {
	h := &handler{
		oracle: oracle,
		logger: logger,
		domain: DefaultDomain,
	}

	for _, opt := range opts {
		opt(h)
	}

	if e.Validator == nil {
		e.Validator = NewCustomValidator(validator.New())
	}

	e.Use(h.instrument)

	e.GET("/owner", h.getOwner)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	g := e.Group("/feeds")
	g.GET("", h.listFeeds)
	g.GET("/:asset", h.getFeed)
	g.POST("", h.addFeed)

	e.GET("/collateral/:asset", h.getCollateralValue)
}

func (h *handler) getOwner(c echo.Context) error {
	h.mu.Lock()
	next := h.nonce + 1
	h.mu.Unlock()

	return MakeJsonResp(c, http.StatusOK, ownerResponse{
		Owner:     h.oracle.Owner().Hex(),
		Domain:    h.domain,
		NextNonce: next,
	})
}

func (h *handler) listFeeds(c echo.Context) error {
	assets := h.oracle.Assets()

	feeds := make([]feedResponse, 0, len(assets))
	for _, asset := range assets {
		feeds = append(feeds, h.feedOf(asset))
	}

	return MakeJsonResp(c, http.StatusOK, feeds)
}

func (h *handler) getFeed(c echo.Context) error {
	p := struct {
		Asset string `param:"asset" validate:"required,eth_addr"`
	}{}

	if err := bindAndValidate(c, &p); err != nil {
		return MakeJsonResp(c, http.StatusBadRequest, err)
	}

	return MakeJsonResp(c, http.StatusOK, h.feedOf(common.HexToAddress(p.Asset)))
}

func (h *handler) addFeed(c echo.Context) error {
	p := struct {
		Asset     string `json:"asset" validate:"required,eth_addr"`
		Feed      string `json:"feed" validate:"required,eth_addr"`
		Nonce     uint64 `json:"nonce" validate:"gt=0"`
		Deadline  int64  `json:"deadline" validate:"gt=0"`
		Signature string `json:"signature" validate:"required,hexadecimal"`
	}{}

	if err := bindAndValidate(c, &p); err != nil {
		return MakeJsonResp(c, http.StatusBadRequest, err)
	}

	auth := AddFeedAuth{
		Domain:   h.domain,
		Owner:    h.oracle.Owner(),
		Asset:    common.HexToAddress(p.Asset),
		Feed:     common.HexToAddress(p.Feed),
		Nonce:    p.Nonce,
		Deadline: p.Deadline,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if auth.Nonce <= h.nonce {
		return MakeJsonResp(c, http.StatusUnauthorized,
			fmt.Errorf("%w: nonce %d is not above %d", errStaleRequest, auth.Nonce, h.nonce))
	}

	if time.Now().Unix() > auth.Deadline {
		return MakeJsonResp(c, http.StatusUnauthorized,
			fmt.Errorf("%w: deadline %d has passed", errStaleRequest, auth.Deadline))
	}

	caller, err := recoverSigner(auth.Message(), p.Signature)
	if err != nil {
		return MakeJsonResp(c, http.StatusUnauthorized, err)
	}

	if err := h.oracle.AddPriceFeed(caller, auth.Asset, auth.Feed); err != nil {
		return MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	h.nonce = auth.Nonce

	return MakeJsonResp(c, http.StatusOK, h.feedOf(auth.Asset))
}

func (h *handler) getCollateralValue(c echo.Context) error {
	p := struct {
		Asset  string `param:"asset" validate:"required,eth_addr"`
		Amount string `query:"amount" validate:"required,number"`
	}{}

	if err := bindAndValidate(c, &p); err != nil {
		return MakeJsonResp(c, http.StatusBadRequest, err)
	}

	amount, err := uint256.FromDecimal(p.Amount)
	if err != nil {
		return MakeJsonResp(c, http.StatusBadRequest, fmt.Errorf("%w: amount: %v", errBadRequest, err))
	}

	v, err := h.oracle.Quote(c.Request().Context(), common.HexToAddress(p.Asset), amount)
	if err != nil {
		h.logger.Debug("valuation failed", zap.String("asset", p.Asset), zap.Error(err))

		return MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return MakeJsonResp(c, http.StatusOK, valuationResponse{
		Asset:         v.Asset.Hex(),
		Feed:          v.Feed.Hex(),
		Amount:        v.Amount.Dec(),
		Price:         v.Reading.Price.Dec(),
		PriceDecimals: v.Reading.Decimals,
		PriceUSD:      decimal.NewFromBigInt(v.Reading.Price.ToBig(), -int32(v.Reading.Decimals)).String(),
		UpdatedAt:     v.Reading.UpdatedAt,
		Value:         v.Value.Dec(),
	})
}

func (h *handler) feedOf(asset common.Address) feedResponse {
	feed := h.oracle.RegisteredFeed(asset)

	return feedResponse{
		Asset:      asset.Hex(),
		Feed:       feed.Hex(),
		Registered: feed != (common.Address{}),
	}
}

func bindAndValidate(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	if err := c.Validate(p); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	return nil
}

// instrument counts and logs every request
func (h *handler) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		req, status := c.Request(), c.Response().Status
		metrics.HTTPRequestsTotal.WithLabelValues(req.Method, c.Path(), fmt.Sprint(status)).Inc()
		h.logger.Debug("request served",
			zap.String("method", req.Method),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)))

		return nil
	}
}
