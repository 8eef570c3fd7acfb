package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/signal"
	"syscall"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/infrastructure/configloader"
	"wallet_inspector/internal/infrastructure/restapi"

	"github.com/spf13/cobra"
)

type runner struct {
	build      Builder
	in         io.Reader
	out        io.Writer
	configPath string
	app        *App
	cleanup    func()
}

// Run executes the inspector command line with args and releases the wired App afterwards.
func Run(ctx context.Context, build Builder, args []string, in io.Reader, out io.Writer) error {
	r := &runner{build: build, in: in, out: out}
	defer r.close()

	cmd := r.rootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd.ExecuteContext(ctx)
}

func (r *runner) close() {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
}

func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := configloader.Load(r.configPath)
	if err != nil {
		return err
	}
	app, cleanup, err := r.build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	r.app, r.cleanup = app, cleanup
	return nil
}

func (r *runner) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "inspector",
		Short: "Inspect an Ethereum wallet",
		Long: `inspector queries a public node, an Etherscan-compatible explorer and a
rate provider to show balance, transactions and statistics of an Ethereum wallet.
Without a subcommand it starts an interactive menu.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewMenu(r.app, r.in, r.out).Run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&r.configPath, "config", configloader.DefaultConfigPath, "path to the YAML config file")

	root.AddCommand(
		r.balanceCommand(),
		r.fiatCommand(),
		r.transactionsCommand(),
		r.gasCommand(),
		r.statsCommand(),
		r.exportCommand(),
		r.serveCommand(),
	)
	return root
}

func (r *runner) balanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Show the pending ether balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.app.showBalance(cmd.Context(), r.out, args[0])
		},
	}
}

func (r *runner) fiatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fiat <address>",
		Short: "Show the balance in USD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.app.showFiat(cmd.Context(), r.out, args[0])
		},
	}
}

func (r *runner) transactionsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "transactions <address>",
		Short: "List the oldest transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.app.showTransactions(cmd.Context(), r.out, args[0], limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of transactions")
	return cmd
}

func (r *runner) gasCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "gas <address>",
		Short: "Show the average gas used by the oldest transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.app.showAverageGas(cmd.Context(), r.out, args[0], limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of transactions")
	return cmd
}

func (r *runner) statsCommand() *cobra.Command {
	var walletsFile string
	cmd := &cobra.Command{
		Use:   "stats [address]",
		Short: "Show wallet statistics",
		Long:  "Show statistics for one address, or with --wallets for every address listed in a file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 1 && walletsFile == "":
				return r.app.showStatistics(cmd.Context(), r.out, args[0])
			case len(args) == 0 && walletsFile != "":
				return r.batchStatistics(cmd.Context(), walletsFile)
			default:
				return &entity.WalletError{Kind: entity.KindInvalidArgument, Detail: "pass either an address or --wallets"}
			}
		},
	}
	cmd.Flags().StringVar(&walletsFile, "wallets", "", "file with one address per line")
	return cmd
}

// batchStatistics prints statistics for every listed wallet, continuing past failures.
func (r *runner) batchStatistics(ctx context.Context, path string) error {
	wallets, err := r.app.NewWallets(path).GetWallets()
	if err != nil {
		return err
	}

	failed := 0
	for _, w := range wallets {
		if err := r.app.showStatistics(ctx, r.out, w.Address); err != nil {
			failed++
			r.app.Logger.Warn("Statistics failed", "address", w.Address, "error", err)
			fmt.Fprintf(r.out, "Wallet address: %s\n", w.Address)
			printError(r.out, err)
			continue
		}
		fmt.Fprintln(r.out)
	}
	if failed > 0 {
		return fmt.Errorf("statistics failed for %d of %d wallets", failed, len(wallets))
	}
	return nil
}

func (r *runner) exportCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export <address>",
		Short: "Write statistics.csv and transactions.csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = r.app.Config.Export.Directory
			}
			return r.app.export(cmd.Context(), r.out, args[0], dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config)")
	return cmd
}

func (r *runner) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the wallet queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := r.app.Config
			handler := restapi.NewWalletHandler(r.app.Query, r.app.Stats, r.app.Logger)
			router := restapi.SetupRouter(handler, r.app.Metrics, cfg.Server.AllowedOrigins)
			srv := restapi.NewServer(
				net.JoinHostPort("", cfg.Server.Port),
				router,
				time.Duration(cfg.Server.ShutdownTimeoutSecs)*time.Second,
				r.app.Logger,
			)
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
