package cli

import (
	"context"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/infrastructure/configloader"
	"wallet_inspector/internal/pkg/metrics"
)

// App holds the wired services a command needs.
type App struct {
	Config      *configloader.Config
	Query       port.WalletQueryService
	Stats       port.StatisticsService
	NewExporter func(dir string) port.Exporter
	NewWallets  func(path string) port.WalletProvider
	Metrics     *metrics.Metrics
	Logger      port.Logger
}

// Builder wires an App from a loaded configuration. The returned cleanup
// releases whatever the App holds open and must be safe to call once.
type Builder func(ctx context.Context, cfg *configloader.Config) (*App, func(), error)
