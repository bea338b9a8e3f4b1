// Package broker provides credential-scoped capability handles for the
// Alpaca brokerage: a trading handle for accounts, positions, and orders,
// and a market-data handle for quotes and bars.
//
// Handles are deliberately cheap and stateless: the Factory builds a fresh
// handle for every tool invocation from the credentials that invocation
// received. No handle is cached or shared across calls.
package broker

import (
	"context"
	"time"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/domain"
)

// TradingClient performs account and order operations against the brokerage.
type TradingClient interface {
	// GetAccount returns a snapshot of the account's balances and status.
	GetAccount(ctx context.Context) (*domain.Account, error)

	// ListPositions returns all open positions in the account.
	ListPositions(ctx context.Context) ([]domain.Position, error)

	// ListOrders returns up to limit orders matching the status filter.
	ListOrders(ctx context.Context, filter domain.StatusFilter, limit int) ([]domain.Order, error)

	// SubmitOrder sends a new order to the brokerage for execution.
	SubmitOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)

	// CancelAllOrders cancels every open order and returns the IDs of the
	// orders that were open at the time of the call.
	CancelAllOrders(ctx context.Context) ([]string, error)

	// CloseAllPositions liquidates all open positions, optionally canceling
	// open orders first.
	CloseAllPositions(ctx context.Context, cancelOrders bool) error
}

// MarketDataClient performs market-data lookups.
type MarketDataClient interface {
	// LatestQuote returns the latest quote for symbol, or nil (with nil
	// error) when the backend has no quote data for it.
	LatestQuote(ctx context.Context, symbol string) (*domain.Quote, error)

	// DailyBars returns daily bars for symbol within [start, end] in the
	// chronological order the backend reports them. An empty slice means no
	// data for the range.
	DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)
}

// Factory builds credential-scoped handles. Construction must be cheap and
// must not reuse handles between calls.
type Factory interface {
	// Trading returns a trading handle bound to the given credentials and
	// environment (paper or live).
	Trading(creds domain.Credentials, paper bool) TradingClient

	// MarketData returns a market-data handle bound to the given credentials.
	MarketData(creds domain.Credentials) MarketDataClient
}
