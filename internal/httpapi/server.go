// Package httpapi exposes the tool dispatch table over HTTP. Each tool is
// invoked with POST /api/v1/tools/{name}; the response always carries the
// tool's text result, even when that text is a normalized error.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/domain"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/journal"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/metrics"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/tools"
)

// Server routes tool requests to the dispatch table.
type Server struct {
	svc *tools.Service

	// Fallback credentials and environment for requests that omit them.
	// Handles are still built per call; only the argument values default.
	defaultCreds domain.Credentials
	defaultPaper bool

	journal *journal.Store // nil disables journaling
	log     *slog.Logger
}

// NewServer creates a Server around the given dispatch service. jnl may be
// nil to disable the call journal.
func NewServer(svc *tools.Service, defaultCreds domain.Credentials, defaultPaper bool, jnl *journal.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		svc:          svc,
		defaultCreds: defaultCreds,
		defaultPaper: defaultPaper,
		journal:      jnl,
		log:          log,
	}
}

// toolRequest is the JSON argument schema shared by all tools; each tool
// reads only the fields it declares. Pointer fields distinguish "absent"
// from zero so defaults can apply.
type toolRequest struct {
	APIKey       string  `json:"api_key"`
	APISecret    string  `json:"api_secret"`
	Paper        *bool   `json:"paper"`
	Symbol       string  `json:"symbol"`
	Side         string  `json:"side"`
	Quantity     float64 `json:"quantity"`
	LimitPrice   float64 `json:"limit_price"`
	Days         int     `json:"days"`
	Status       string  `json:"status"`
	Limit        int     `json:"limit"`
	CancelOrders *bool   `json:"cancel_orders"`
}

type toolResponse struct {
	Result string `json:"result"`
}

// toolInfo describes one tool for the listing endpoint.
type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var toolList = []toolInfo{
	{"get_account_info", "Get the current account information including balances and status."},
	{"get_positions", "Get all current positions in the portfolio."},
	{"get_stock_quote", "Get the latest quote for a stock."},
	{"get_stock_bars", "Get historical daily price bars for a stock."},
	{"get_orders", "Get orders with the specified status."},
	{"place_market_order", "Place a market order."},
	{"place_limit_order", "Place a limit order."},
	{"cancel_all_orders", "Cancel all open orders."},
	{"close_all_positions", "Close all open positions."},
}

// Router builds the HTTP routing table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLog)

	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/tools", s.handleListTools).Methods(http.MethodGet)
	api.HandleFunc("/tools/{name}", s.handleCallTool).Methods(http.MethodPost)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toolList)
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req toolRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
	}

	// A credential pair is only usable whole; a request missing either half
	// falls back to the configured defaults.
	creds := domain.Credentials{APIKey: req.APIKey, APISecret: req.APISecret}
	if creds.APIKey == "" || creds.APISecret == "" {
		creds = s.defaultCreds
	}
	paper := s.defaultPaper
	if req.Paper != nil {
		paper = *req.Paper
	}
	cancelOrders := true
	if req.CancelOrders != nil {
		cancelOrders = *req.CancelOrders
	}

	ctx := r.Context()
	start := time.Now()

	var result string
	switch name {
	case "get_account_info":
		result = s.svc.GetAccountInfo(ctx, creds, paper)
	case "get_positions":
		result = s.svc.GetPositions(ctx, creds, paper)
	case "get_stock_quote":
		result = s.svc.GetStockQuote(ctx, req.Symbol, creds)
	case "get_stock_bars":
		result = s.svc.GetStockBars(ctx, req.Symbol, creds, req.Days)
	case "get_orders":
		result = s.svc.GetOrders(ctx, creds, paper, req.Status, req.Limit)
	case "place_market_order":
		result = s.svc.PlaceMarketOrder(ctx, req.Symbol, req.Side, req.Quantity, creds, paper)
	case "place_limit_order":
		result = s.svc.PlaceLimitOrder(ctx, req.Symbol, req.Side, req.Quantity, req.LimitPrice, creds, paper)
	case "cancel_all_orders":
		result = s.svc.CancelAllOrders(ctx, creds, paper)
	case "close_all_positions":
		result = s.svc.CloseAllPositions(ctx, creds, paper, cancelOrders)
	default:
		writeError(w, http.StatusNotFound, "unknown tool: "+name)
		return
	}

	s.observe(ctx, name, req.Symbol, paper, result, time.Since(start))
	writeJSON(w, http.StatusOK, toolResponse{Result: result})
}

// observe records metrics and, when configured, a journal row for one
// completed tool call. Credentials never reach either sink.
func (s *Server) observe(ctx context.Context, name, symbol string, paper bool, result string, dur time.Duration) {
	outcome := "ok"
	if isErrorResult(result) {
		outcome = "error"
		metrics.ToolErrors.WithLabelValues(name).Inc()
	}
	metrics.ToolCalls.WithLabelValues(name).Inc()
	metrics.ToolDuration.WithLabelValues(name).Observe(dur.Seconds())

	if s.journal != nil {
		if err := s.journal.Record(ctx, journal.Entry{
			Tool: name, Symbol: symbol, Paper: paper, Outcome: outcome, Duration: dur,
		}); err != nil {
			s.log.Warn("recording journal entry", "tool", name, "error", err)
		}
	}
}

// isErrorResult reports whether a tool's text result is a normalized error
// or a validation rejection rather than a success rendering.
func isErrorResult(result string) bool {
	return strings.HasPrefix(result, "Error ") || strings.HasPrefix(result, "Invalid order side:")
}

// requestLog logs one line per request at debug level.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
