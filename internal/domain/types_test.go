package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEnumConstants(t *testing.T) {
	if SideBuy != "buy" || SideSell != "sell" {
		t.Error("Side constants have unexpected values")
	}
	if OrderTypeMarket != "market" || OrderTypeLimit != "limit" {
		t.Error("OrderType constants have unexpected values")
	}
	if StatusOpen != "open" || StatusClosed != "closed" || StatusAll != "all" {
		t.Error("StatusFilter constants have unexpected values")
	}
}

func TestZeroValues(t *testing.T) {
	var q Quote
	if q.Symbol != "" || !q.Timestamp.IsZero() {
		t.Error("expected empty zero-value Quote")
	}
	if q.AskPrice != 0 || q.BidPrice != 0 || q.AskSize != 0 || q.BidSize != 0 {
		t.Error("expected zero prices and sizes for zero-value Quote")
	}

	var o Order
	if o.FilledAt != nil || o.FilledAvgPrice != nil || o.LimitPrice != nil {
		t.Error("expected nil optional fields for zero-value Order")
	}
	if !o.Qty.Equal(decimal.Zero) {
		t.Error("expected zero Qty for zero-value Order")
	}
}

func TestOrderRequestLimitPrice(t *testing.T) {
	lp := decimal.NewFromFloat(187.50)
	req := OrderRequest{
		Symbol:     "AAPL",
		Side:       SideBuy,
		Type:       OrderTypeLimit,
		Qty:        decimal.NewFromInt(10),
		LimitPrice: &lp,
	}
	if req.LimitPrice == nil || !req.LimitPrice.Equal(lp) {
		t.Errorf("LimitPrice = %v, want %s", req.LimitPrice, lp)
	}

	market := OrderRequest{Symbol: "AAPL", Side: SideSell, Type: OrderTypeMarket, Qty: decimal.NewFromInt(1)}
	if market.LimitPrice != nil {
		t.Error("market OrderRequest should carry no limit price")
	}
}
