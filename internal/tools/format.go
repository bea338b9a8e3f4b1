package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// money renders a monetary value with exactly two decimal places using
// banker's rounding, e.g. "$150.12".
func money(d decimal.Decimal) string {
	return "$" + d.StringFixedBank(2)
}

func moneyFloat(v float64) string {
	return money(decimal.NewFromFloat(v))
}

// percent renders a fractional value as a percentage with exactly two
// decimal places, e.g. 0.0512 -> "5.12%".
func percent(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixedBank(2) + "%"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatAccount renders an account snapshot as a fixed text block.
func FormatAccount(a *domain.Account) string {
	var b strings.Builder
	b.WriteString("\nAccount Information:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Account ID: %s\n", a.ID)
	fmt.Fprintf(&b, "Status: %s\n", a.Status)
	fmt.Fprintf(&b, "Currency: %s\n", a.Currency)
	fmt.Fprintf(&b, "Buying Power: %s\n", money(a.BuyingPower))
	fmt.Fprintf(&b, "Cash: %s\n", money(a.Cash))
	fmt.Fprintf(&b, "Portfolio Value: %s\n", money(a.PortfolioValue))
	fmt.Fprintf(&b, "Equity: %s\n", money(a.Equity))
	fmt.Fprintf(&b, "Long Market Value: %s\n", money(a.LongMarketValue))
	fmt.Fprintf(&b, "Short Market Value: %s\n", money(a.ShortMarketValue))
	fmt.Fprintf(&b, "Pattern Day Trader: %s\n", yesNo(a.PatternDayTrader))
	fmt.Fprintf(&b, "Day Trades Remaining: %d\n", a.DaytradeCount)
	return b.String()
}

// FormatPositions renders a non-empty position list as a header followed by
// one block per position. Callers short-circuit empty lists before reaching
// this renderer.
func FormatPositions(positions []domain.Position) string {
	var b strings.Builder
	b.WriteString("Current Positions:\n")
	b.WriteString("-------------------\n")
	for _, p := range positions {
		fmt.Fprintf(&b, "\nSymbol: %s\n", p.Symbol)
		fmt.Fprintf(&b, "Quantity: %s shares\n", p.Qty)
		fmt.Fprintf(&b, "Market Value: %s\n", money(p.MarketValue))
		fmt.Fprintf(&b, "Average Entry Price: %s\n", money(p.AvgEntryPrice))
		fmt.Fprintf(&b, "Current Price: %s\n", money(p.CurrentPrice))
		fmt.Fprintf(&b, "Unrealized P/L: %s (%s)\n", money(p.UnrealizedPL), percent(p.UnrealizedPLPC))
		b.WriteString("-------------------\n")
	}
	return b.String()
}

// FormatQuote renders the latest quote for a symbol.
func FormatQuote(q *domain.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nLatest Quote for %s:\n", q.Symbol)
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "Ask Price: %s\n", moneyFloat(q.AskPrice))
	fmt.Fprintf(&b, "Bid Price: %s\n", moneyFloat(q.BidPrice))
	fmt.Fprintf(&b, "Ask Size: %d\n", q.AskSize)
	fmt.Fprintf(&b, "Bid Size: %d\n", q.BidSize)
	fmt.Fprintf(&b, "Timestamp: %s\n", q.Timestamp.Format(time.RFC3339))
	return b.String()
}

// FormatBars renders a non-empty bar list, one line per trading day, in the
// order the backend returned them.
func FormatBars(symbol string, days int, bars []domain.Bar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Historical Data for %s (Last %d trading days):\n", symbol, days)
	b.WriteString("---------------------------------------------------\n")
	for _, bar := range bars {
		fmt.Fprintf(&b, "Date: %s, Open: %s, High: %s, Low: %s, Close: %s, Volume: %d\n",
			bar.Timestamp.Format("2006-01-02"),
			moneyFloat(bar.Open), moneyFloat(bar.High), moneyFloat(bar.Low), moneyFloat(bar.Close),
			bar.Volume)
	}
	return b.String()
}

// FormatOrders renders a non-empty order list under a header naming the
// status filter.
func FormatOrders(filter domain.StatusFilter, orders []domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Orders (Last %d):\n", capitalize(string(filter)), len(orders))
	b.WriteString("-----------------------------------\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "\nSymbol: %s\n", o.Symbol)
		fmt.Fprintf(&b, "ID: %s\n", o.ID)
		fmt.Fprintf(&b, "Type: %s\n", o.Type)
		fmt.Fprintf(&b, "Side: %s\n", o.Side)
		fmt.Fprintf(&b, "Quantity: %s\n", o.Qty)
		fmt.Fprintf(&b, "Status: %s\n", o.Status)
		fmt.Fprintf(&b, "Submitted At: %s\n", o.SubmittedAt.Format(time.RFC3339))
		if o.FilledAt != nil {
			fmt.Fprintf(&b, "Filled At: %s\n", o.FilledAt.Format(time.RFC3339))
		}
		if o.FilledAvgPrice != nil {
			fmt.Fprintf(&b, "Filled Price: %s\n", money(*o.FilledAvgPrice))
		}
		b.WriteString("-----------------------------------\n")
	}
	return b.String()
}

// FormatOrderConfirmation renders the confirmation block for a freshly
// placed order. Limit orders additionally show the limit price.
func FormatOrderConfirmation(o *domain.Order) string {
	var b strings.Builder
	if o.Type == domain.OrderTypeLimit {
		b.WriteString("\nLimit Order Placed Successfully:\n")
		b.WriteString("-------------------------------\n")
	} else {
		b.WriteString("\nMarket Order Placed Successfully:\n")
		b.WriteString("--------------------------------\n")
	}
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Symbol: %s\n", o.Symbol)
	fmt.Fprintf(&b, "Side: %s\n", o.Side)
	fmt.Fprintf(&b, "Quantity: %s\n", o.Qty)
	fmt.Fprintf(&b, "Type: %s\n", o.Type)
	if o.Type == domain.OrderTypeLimit && o.LimitPrice != nil {
		fmt.Fprintf(&b, "Limit Price: %s\n", money(*o.LimitPrice))
	}
	fmt.Fprintf(&b, "Time In Force: %s\n", o.TimeInForce)
	fmt.Fprintf(&b, "Status: %s\n", o.Status)
	return b.String()
}

// FormatCancellation renders the result of canceling all open orders. An
// empty ID set renders as "[]".
func FormatCancellation(ids []string) string {
	return fmt.Sprintf("Successfully canceled all open orders. Canceled order IDs: [%s]", strings.Join(ids, ", "))
}
