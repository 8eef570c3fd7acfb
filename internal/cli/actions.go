package cli

import (
	"context"
	"io"
)

// Each action runs one query and prints its result to w.

func (a *App) showBalance(ctx context.Context, w io.Writer, address string) error {
	balance, err := a.Query.FetchBalance(ctx, address)
	if err != nil {
		return err
	}
	printBalance(w, balance)
	return nil
}

func (a *App) showFiat(ctx context.Context, w io.Writer, address string) error {
	usd, err := a.Query.FetchFiatBalance(ctx, address)
	if err != nil {
		return err
	}
	printFiat(w, usd)
	return nil
}

func (a *App) showTransactions(ctx context.Context, w io.Writer, address string, limit int) error {
	txs, err := a.Query.FetchTransactions(ctx, address, limit)
	if err != nil {
		return err
	}
	printTransactions(w, txs)
	return nil
}

func (a *App) showAverageGas(ctx context.Context, w io.Writer, address string, limit int) error {
	avg, err := a.Stats.AverageGasForLimit(ctx, address, limit)
	if err != nil {
		return err
	}
	printAverageGas(w, avg)
	return nil
}

func (a *App) showStatistics(ctx context.Context, w io.Writer, address string) error {
	stats, err := a.Stats.GenerateStatistics(ctx, address)
	if err != nil {
		return err
	}
	printStatistics(w, stats)
	return nil
}

func (a *App) export(ctx context.Context, w io.Writer, address, dir string) error {
	stats, txs, err := a.Stats.GenerateReport(ctx, address)
	if err != nil {
		return err
	}
	paths, err := a.NewExporter(dir).Export(stats, txs)
	if err != nil {
		return err
	}
	printExported(w, address, paths)
	return nil
}
