package main

import (
	"context"
	"fmt"
	"os"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/app/service"
	"wallet_inspector/internal/cli"
	httpclient "wallet_inspector/internal/client"
	"wallet_inspector/internal/infrastructure/configloader"
	"wallet_inspector/internal/infrastructure/export"
	nodeclient "wallet_inspector/internal/infrastructure/network/client"
	"wallet_inspector/internal/infrastructure/walletloader"
	"wallet_inspector/internal/pkg/logger"
	"wallet_inspector/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := cli.Run(context.Background(), build, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// build wires the clients and services from cfg.
func build(ctx context.Context, cfg *configloader.Config) (*cli.App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	zapLogger, err := logger.Init(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	appLogger := logger.NewSlogAdapter()
	logger.Debug("Configuration loaded", "node", cfg.Node.RPCURL, "explorer", cfg.Explorer.BaseURL, "chain_id", cfg.Explorer.ChainID)

	m := metrics.New()
	timeout := cfg.RequestTimeout()

	node, err := nodeclient.NewEVMClient(ctx, cfg.Node.RPCURL, timeout, m)
	if err != nil {
		_ = zapLogger.Sync()
		return nil, nil, err
	}

	explorer := httpclient.NewExplorerClient(httpclient.ExplorerOptions{
		BaseURL: cfg.Explorer.BaseURL,
		ChainID: cfg.Explorer.ChainID,
		APIKey:  cfg.Explorer.APIKey,
		Timeout: timeout,
	}, zapLogger, m)
	rates := httpclient.NewExchangeRateClient(cfg.ExchangeRate.BaseURL, cfg.ExchangeRate.Currency, timeout, zapLogger, m)
	stats := httpclient.NewAddressStatsClient(cfg.AddressStats.URLTemplate, timeout, zapLogger, m)

	query := service.NewWalletQueryService(node, rates, explorer, stats, appLogger, cfg.Explorer.MaxOffset)
	aggregation := service.NewAggregationService(query, appLogger, cfg.Aggregation.StrictCount)
	exporter := export.NewCSVExporter(cfg.Export.Directory, appLogger)

	app := &cli.App{
		Config: cfg,
		Query:  query,
		Stats:  aggregation,
		NewExporter: func(dir string) port.Exporter {
			return exporter.WithDir(dir)
		},
		NewWallets: func(path string) port.WalletProvider {
			return walletloader.NewWalletFileLoader(path, appLogger)
		},
		Metrics: m,
		Logger:  appLogger,
	}

	cleanup := func() {
		node.Close()
		_ = zapLogger.Sync()
	}
	return app, cleanup, nil
}
