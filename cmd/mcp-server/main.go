// mcp-server exposes the Alpaca tool dispatch table over HTTP, with a gRPC
// health endpoint for orchestrators.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/hgaddipati1118/alpaca-mcp-server/internal/broker"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/config"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/domain"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/httpapi"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/journal"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/tools"
	"github.com/hgaddipati1118/alpaca-mcp-server/internal/util"
)

func main() {
	cfgPath := "config/server.yaml"
	if p := os.Getenv("MCP_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	defaultCreds := domain.Credentials{
		APIKey:    cfg.Alpaca.APIKey,
		APISecret: cfg.Alpaca.APISecret,
	}
	if defaultCreds.APIKey == "" || defaultCreds.APISecret == "" {
		logger.Warn("no default Alpaca credentials configured; every tool request must carry its own")
	}

	factory := &broker.AlpacaFactory{
		TradingBaseURL: cfg.Alpaca.BaseURL,
		DataBaseURL:    cfg.Alpaca.DataURL,
	}

	// One-shot connectivity check with the default credentials. The result is
	// logged and discarded; tool calls always build fresh clients.
	if defaultCreds.APIKey != "" && defaultCreds.APISecret != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		acct, err := factory.Trading(defaultCreds, cfg.Alpaca.Paper).GetAccount(ctx)
		cancel()
		if err != nil {
			logger.Warn("startup account check failed", "error", err)
		} else {
			logger.Info("startup account check ok", "status", acct.Status, "paper", cfg.Alpaca.Paper)
		}
	}

	var jnl *journal.Store
	if cfg.Journal.SQLitePath != "" {
		jnl, err = journal.Open(cfg.Journal.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open journal: %v", err)
		}
		defer jnl.Close()
		logger.Info("call journal enabled", "path", cfg.Journal.SQLitePath)
	}

	svc := tools.NewService(factory, logger)
	api := httpapi.NewServer(svc, defaultCreds, cfg.Alpaca.Paper, jnl, logger)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: api.Router(),
	}

	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			errCh <- fmt.Errorf("grpc listen: %w", err)
			return
		}
		logger.Info("grpc health server listening", "addr", addr)
		if err := grpcSrv.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server failed", "error", err)
	}

	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	grpcSrv.GracefulStop()
	logger.Info("shutdown complete")
}
