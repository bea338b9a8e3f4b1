// Package tools implements the tool dispatch layer: a fixed set of named
// operations that validate their inputs, build per-call brokerage handles,
// perform exactly one backend action, and render the result as text. Every
// failure is normalized to an "Error <doing X>: <message>" string; no
// operation ever returns an error to its caller.
package tools

import (
	"strings"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/domain"
)

// MapSide maps a caller-supplied order side to its domain value,
// case-insensitively. The second return is false for anything other than
// "buy" or "sell"; the caller is responsible for rendering the rejection
// message. No backend contact happens here.
func MapSide(raw string) (domain.Side, bool) {
	switch strings.ToLower(raw) {
	case "buy":
		return domain.SideBuy, true
	case "sell":
		return domain.SideSell, true
	default:
		return "", false
	}
}

// MapStatus maps a caller-supplied order status filter to its domain value,
// case-insensitively. Anything other than "open" or "closed" maps to "all".
func MapStatus(raw string) domain.StatusFilter {
	switch strings.ToLower(raw) {
	case "open":
		return domain.StatusOpen
	case "closed":
		return domain.StatusClosed
	default:
		return domain.StatusAll
	}
}
