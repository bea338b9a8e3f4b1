package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/broker"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/domain"
)

// Defaults applied when an argument is absent or non-positive.
const (
	DefaultBarDays    = 5
	DefaultOrderLimit = 10
)

// Service is the operation dispatch table. Every method takes explicit
// credentials, builds fresh handles through the factory, and returns a text
// result, never an error. Credentials never reach the logger.
type Service struct {
	factory broker.Factory
	log     *slog.Logger
}

// NewService creates a Service backed by the given handle factory.
func NewService(factory broker.Factory, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{factory: factory, log: log}
}

// run is the error normalizer: it scopes one operation body so that any
// returned error or panic becomes an "Error <op>: <message>" string. This
// is the only error channel the caller has, so nothing may escape it.
func (s *Service) run(op string, fn func() (string, error)) (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tool panicked", "op", op, "panic", r)
			out = fmt.Sprintf("Error %s: %v", op, r)
		}
	}()

	text, err := fn()
	if err != nil {
		s.log.Warn("tool failed", "op", op, "error", err)
		return fmt.Sprintf("Error %s: %v", op, err)
	}
	return text
}

// GetAccountInfo returns the account's balances and status.
func (s *Service) GetAccountInfo(ctx context.Context, creds domain.Credentials, paper bool) string {
	return s.run("getting account info", func() (string, error) {
		acct, err := s.factory.Trading(creds, paper).GetAccount(ctx)
		if err != nil {
			return "", err
		}
		return FormatAccount(acct), nil
	})
}

// GetPositions returns all open positions in the account.
func (s *Service) GetPositions(ctx context.Context, creds domain.Credentials, paper bool) string {
	return s.run("getting positions", func() (string, error) {
		positions, err := s.factory.Trading(creds, paper).ListPositions(ctx)
		if err != nil {
			return "", err
		}
		if len(positions) == 0 {
			return "No open positions found.", nil
		}
		return FormatPositions(positions), nil
	})
}

// GetStockQuote returns the latest quote for a symbol.
func (s *Service) GetStockQuote(ctx context.Context, symbol string, creds domain.Credentials) string {
	return s.run(fmt.Sprintf("fetching quote for %s", symbol), func() (string, error) {
		quote, err := s.factory.MarketData(creds).LatestQuote(ctx, symbol)
		if err != nil {
			return "", err
		}
		if quote == nil {
			return fmt.Sprintf("No quote data found for %s.", symbol), nil
		}
		return FormatQuote(quote), nil
	})
}

// GetStockBars returns daily bars for a symbol over the last days calendar
// days (default 5).
func (s *Service) GetStockBars(ctx context.Context, symbol string, creds domain.Credentials, days int) string {
	return s.run(fmt.Sprintf("fetching historical data for %s", symbol), func() (string, error) {
		if days <= 0 {
			days = DefaultBarDays
		}
		now := time.Now()
		bars, err := s.factory.MarketData(creds).DailyBars(ctx, symbol, now.AddDate(0, 0, -days), now)
		if err != nil {
			return "", err
		}
		if len(bars) == 0 {
			return fmt.Sprintf("No historical data found for %s in the last %d days.", symbol, days), nil
		}
		return FormatBars(symbol, days, bars), nil
	})
}

// GetOrders returns up to limit orders (default 10) matching the status
// filter ("open", "closed", or anything else for "all").
func (s *Service) GetOrders(ctx context.Context, creds domain.Credentials, paper bool, status string, limit int) string {
	return s.run("fetching orders", func() (string, error) {
		filter := MapStatus(status)
		if limit <= 0 {
			limit = DefaultOrderLimit
		}
		orders, err := s.factory.Trading(creds, paper).ListOrders(ctx, filter, limit)
		if err != nil {
			return "", err
		}
		if len(orders) == 0 {
			return fmt.Sprintf("No %s orders found.", filter), nil
		}
		return FormatOrders(filter, orders), nil
	})
}

// PlaceMarketOrder submits a day market order. An unrecognized side is
// rejected before any backend contact.
func (s *Service) PlaceMarketOrder(ctx context.Context, symbol, side string, quantity float64, creds domain.Credentials, paper bool) string {
	return s.run("placing market order", func() (string, error) {
		return s.placeOrder(ctx, creds, paper, symbol, side, quantity, nil)
	})
}

// PlaceLimitOrder submits a day limit order at the given limit price. An
// unrecognized side is rejected before any backend contact.
func (s *Service) PlaceLimitOrder(ctx context.Context, symbol, side string, quantity, limitPrice float64, creds domain.Credentials, paper bool) string {
	return s.run("placing limit order", func() (string, error) {
		lp := decimal.NewFromFloat(limitPrice)
		if !lp.IsPositive() {
			return "", fmt.Errorf("limit price must be a positive number, got %s", lp)
		}
		return s.placeOrder(ctx, creds, paper, symbol, side, quantity, &lp)
	})
}

// placeOrder validates side and quantity, then submits the order. A nil
// limitPrice selects a market order.
func (s *Service) placeOrder(ctx context.Context, creds domain.Credentials, paper bool, symbol, side string, quantity float64, limitPrice *decimal.Decimal) (string, error) {
	mapped, ok := MapSide(side)
	if !ok {
		return fmt.Sprintf("Invalid order side: %s. Must be 'buy' or 'sell'.", side), nil
	}

	qty := decimal.NewFromFloat(quantity)
	if !qty.IsPositive() {
		return "", fmt.Errorf("quantity must be a positive number, got %s", qty)
	}

	orderType := domain.OrderTypeMarket
	if limitPrice != nil {
		orderType = domain.OrderTypeLimit
	}

	order, err := s.factory.Trading(creds, paper).SubmitOrder(ctx, domain.OrderRequest{
		Symbol:     symbol,
		Side:       mapped,
		Type:       orderType,
		Qty:        qty,
		LimitPrice: limitPrice,
	})
	if err != nil {
		return "", err
	}
	return FormatOrderConfirmation(order), nil
}

// CancelAllOrders cancels every open order and reports the canceled set.
// Calling it again with nothing open reports an empty set.
func (s *Service) CancelAllOrders(ctx context.Context, creds domain.Credentials, paper bool) string {
	return s.run("canceling orders", func() (string, error) {
		ids, err := s.factory.Trading(creds, paper).CancelAllOrders(ctx)
		if err != nil {
			return "", err
		}
		return FormatCancellation(ids), nil
	})
}

// CloseAllPositions liquidates all open positions, optionally canceling
// open orders first.
func (s *Service) CloseAllPositions(ctx context.Context, creds domain.Credentials, paper bool, cancelOrders bool) string {
	return s.run("closing positions", func() (string, error) {
		if err := s.factory.Trading(creds, paper).CloseAllPositions(ctx, cancelOrders); err != nil {
			return "", err
		}
		return "Successfully closed all positions.", nil
	})
}
