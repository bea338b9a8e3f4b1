// Package domain defines the transient view types exchanged between the
// tool dispatch layer and the brokerage backend. Nothing here is persisted;
// every value is fetched fresh for a single tool call.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credentials identifies an Alpaca account for a single tool call. They are
// supplied by the caller, used to build per-call clients, and never logged
// or stored.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType distinguishes market from limit orders.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

// StatusFilter selects which orders a listing returns.
type StatusFilter string

const (
	StatusOpen   StatusFilter = "open"
	StatusClosed StatusFilter = "closed"
	StatusAll    StatusFilter = "all"
)

// Account is a snapshot of the account's balances and status.
type Account struct {
	ID               string
	Status           string
	Currency         string
	BuyingPower      decimal.Decimal
	Cash             decimal.Decimal
	PortfolioValue   decimal.Decimal
	Equity           decimal.Decimal
	LongMarketValue  decimal.Decimal
	ShortMarketValue decimal.Decimal
	PatternDayTrader bool
	DaytradeCount    int64
}

// Position is one open holding in the account.
type Position struct {
	Symbol         string
	Qty            decimal.Decimal
	MarketValue    decimal.Decimal
	AvgEntryPrice  decimal.Decimal
	CurrentPrice   decimal.Decimal
	UnrealizedPL   decimal.Decimal
	UnrealizedPLPC decimal.Decimal // fraction, not percent (0.05 = 5%)
}

// Quote is the latest NBBO quote for a symbol.
type Quote struct {
	Symbol    string
	AskPrice  float64
	BidPrice  float64
	AskSize   uint32
	BidSize   uint32
	Timestamp time.Time
}

// Bar is one daily OHLCV bar.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    uint64
}

// Order is an order as reported by the brokerage.
type Order struct {
	ID             string
	Symbol         string
	Type           OrderType
	Side           Side
	Qty            decimal.Decimal
	Status         string
	TimeInForce    string
	SubmittedAt    time.Time
	FilledAt       *time.Time
	FilledAvgPrice *decimal.Decimal
	LimitPrice     *decimal.Decimal
}

// OrderRequest describes a new order to submit. LimitPrice is nil for
// market orders. Time-in-force is always day.
type OrderRequest struct {
	Symbol     string
	Side       Side
	Type       OrderType
	Qty        decimal.Decimal
	LimitPrice *decimal.Decimal
}
