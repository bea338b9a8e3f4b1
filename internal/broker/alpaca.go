package broker

import (
	"context"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/domain"
)

const (
	paperBaseURL = "https://paper-api.alpaca.markets"
	liveBaseURL  = "https://api.alpaca.markets"
)

// Listing everything and canceling is the closest the REST API gets to
// returning a cancellation set; cap the listing at the API maximum.
const cancelListLimit = 500

// Compile-time interface checks.
var _ Factory = (*AlpacaFactory)(nil)
var _ TradingClient = (*alpacaTrading)(nil)
var _ MarketDataClient = (*alpacaMarketData)(nil)

// AlpacaFactory builds Alpaca-backed handles. The zero value targets the
// public Alpaca endpoints; TradingBaseURL and DataBaseURL override them
// (used by tests and self-hosted proxies). When TradingBaseURL is set it
// wins over the paper flag.
type AlpacaFactory struct {
	TradingBaseURL string
	DataBaseURL    string
}

// NewAlpacaFactory creates a factory targeting the public Alpaca endpoints.
func NewAlpacaFactory() *AlpacaFactory {
	return &AlpacaFactory{}
}

// Trading builds a fresh trading handle for the given credentials.
func (f *AlpacaFactory) Trading(creds domain.Credentials, paper bool) TradingClient {
	return &alpacaTrading{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    creds.APIKey,
			APISecret: creds.APISecret,
			BaseURL:   tradingBaseURL(paper, f.TradingBaseURL),
		}),
	}
}

// MarketData builds a fresh market-data handle for the given credentials.
func (f *AlpacaFactory) MarketData(creds domain.Credentials) MarketDataClient {
	opts := marketdata.ClientOpts{
		APIKey:    creds.APIKey,
		APISecret: creds.APISecret,
	}
	if f.DataBaseURL != "" {
		opts.BaseURL = f.DataBaseURL
	}
	return &alpacaMarketData{client: marketdata.NewClient(opts)}
}

// tradingBaseURL selects the trading endpoint for the environment flag,
// honoring an explicit override.
func tradingBaseURL(paper bool, override string) string {
	if override != "" {
		return override
	}
	if paper {
		return paperBaseURL
	}
	return liveBaseURL
}

// ---------------------------------------------------------------------------
// Trading handle
// ---------------------------------------------------------------------------

type alpacaTrading struct {
	client *alpaca.Client
}

func (c *alpacaTrading) GetAccount(_ context.Context) (*domain.Account, error) {
	acct, err := c.client.GetAccount()
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:               acct.ID,
		Status:           string(acct.Status),
		Currency:         acct.Currency,
		BuyingPower:      acct.BuyingPower,
		Cash:             acct.Cash,
		PortfolioValue:   acct.PortfolioValue,
		Equity:           acct.Equity,
		LongMarketValue:  acct.LongMarketValue,
		ShortMarketValue: acct.ShortMarketValue,
		PatternDayTrader: acct.PatternDayTrader,
		DaytradeCount:    acct.DaytradeCount,
	}, nil
}

func (c *alpacaTrading) ListPositions(_ context.Context) ([]domain.Position, error) {
	positions, err := c.client.GetPositions()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Position, 0, len(positions))
	for _, p := range positions {
		out = append(out, domain.Position{
			Symbol:         p.Symbol,
			Qty:            p.Qty,
			MarketValue:    derefDecimal(p.MarketValue),
			AvgEntryPrice:  p.AvgEntryPrice,
			CurrentPrice:   derefDecimal(p.CurrentPrice),
			UnrealizedPL:   derefDecimal(p.UnrealizedPL),
			UnrealizedPLPC: derefDecimal(p.UnrealizedPLPC),
		})
	}
	return out, nil
}

func (c *alpacaTrading) ListOrders(_ context.Context, filter domain.StatusFilter, limit int) ([]domain.Order, error) {
	orders, err := c.client.GetOrders(alpaca.GetOrdersRequest{
		Status: string(filter),
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, fromAlpacaOrder(o))
	}
	return out, nil
}

func (c *alpacaTrading) SubmitOrder(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	qty := req.Qty
	order, err := c.client.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      req.Symbol,
		Qty:         &qty,
		Side:        alpaca.Side(req.Side),
		Type:        alpaca.OrderType(req.Type),
		TimeInForce: alpaca.Day,
		LimitPrice:  req.LimitPrice,
	})
	if err != nil {
		return nil, err
	}
	converted := fromAlpacaOrder(*order)
	return &converted, nil
}

func (c *alpacaTrading) CancelAllOrders(_ context.Context) ([]string, error) {
	open, err := c.client.GetOrders(alpaca.GetOrdersRequest{
		Status: string(domain.StatusOpen),
		Limit:  cancelListLimit,
	})
	if err != nil {
		return nil, err
	}
	if err := c.client.CancelAllOrders(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(open))
	for _, o := range open {
		ids = append(ids, o.ID)
	}
	return ids, nil
}

func (c *alpacaTrading) CloseAllPositions(_ context.Context, cancelOrders bool) error {
	// The SDK returns the closing orders alongside any per-position errors;
	// only the error matters here.
	_, err := c.client.CloseAllPositions(alpaca.CloseAllPositionsRequest{
		CancelOrders: cancelOrders,
	})
	return err
}

// ---------------------------------------------------------------------------
// Market-data handle
// ---------------------------------------------------------------------------

type alpacaMarketData struct {
	client *marketdata.Client
}

func (c *alpacaMarketData) LatestQuote(_ context.Context, symbol string) (*domain.Quote, error) {
	quotes, err := c.client.GetLatestQuotes([]string{symbol}, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		return nil, err
	}
	q, ok := quotes[symbol]
	if !ok {
		return nil, nil
	}
	return &domain.Quote{
		Symbol:    symbol,
		AskPrice:  q.AskPrice,
		BidPrice:  q.BidPrice,
		AskSize:   q.AskSize,
		BidSize:   q.BidSize,
		Timestamp: q.Timestamp,
	}, nil
}

func (c *alpacaMarketData) DailyBars(_ context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	multiBars, err := c.client.GetMultiBars([]string{symbol}, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, err
	}
	var bars []domain.Bar
	for _, b := range multiBars[symbol] {
		bars = append(bars, domain.Bar{
			Timestamp: b.Timestamp,
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		})
	}
	return bars, nil
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func fromAlpacaOrder(o alpaca.Order) domain.Order {
	return domain.Order{
		ID:             o.ID,
		Symbol:         o.Symbol,
		Type:           domain.OrderType(o.Type),
		Side:           domain.Side(o.Side),
		Qty:            derefDecimal(o.Qty),
		Status:         string(o.Status),
		TimeInForce:    string(o.TimeInForce),
		SubmittedAt:    o.SubmittedAt,
		FilledAt:       o.FilledAt,
		FilledAvgPrice: o.FilledAvgPrice,
		LimitPrice:     o.LimitPrice,
	}
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
