package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/utils"
)

const (
	StatisticsFileName   = "statistics.csv"
	TransactionsFileName = "transactions.csv"
)

var (
	statisticsHeader   = []string{"Address", "Total Transactions", "Average Gas", "Average ETH", "First Transaction"}
	transactionsHeader = []string{"From", "To", "Gas", "Quantity", "Date"}
)

// CSVExporter writes statistics.csv and transactions.csv into a directory.
type CSVExporter struct {
	dir    string
	logger port.Logger
}

var _ port.Exporter = (*CSVExporter)(nil)

// NewCSVExporter creates an exporter writing into dir.
func NewCSVExporter(dir string, l port.Logger) *CSVExporter {
	return &CSVExporter{dir: dir, logger: l}
}

// WithDir returns a copy of the exporter targeting another directory.
func (e *CSVExporter) WithDir(dir string) *CSVExporter {
	return &CSVExporter{dir: dir, logger: e.logger}
}

// Export writes both files and returns their paths, statistics first.
func (e *CSVExporter) Export(stats entity.Statistics, txs []entity.Transaction) ([]string, error) {
	statsPath, err := e.writeFile(StatisticsFileName, func(w io.Writer) error {
		return WriteStatistics(w, stats)
	})
	if err != nil {
		return nil, err
	}
	txsPath, err := e.writeFile(TransactionsFileName, func(w io.Writer) error {
		return WriteTransactions(w, txs)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("Exported wallet report", "address", stats.Address, "transactions", len(txs), "dir", e.dir)
	return []string{statsPath, txsPath}, nil
}

func (e *CSVExporter) writeFile(name string, write func(io.Writer) error) (string, error) {
	f, path, err := utils.CreateInDir(e.dir, name)
	if err != nil {
		return "", err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// WriteStatistics writes the header and a single statistics row.
func WriteStatistics(w io.Writer, stats entity.Statistics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statisticsHeader); err != nil {
		return err
	}
	row := []string{
		stats.Address,
		strconv.FormatInt(stats.TotalTransactions, 10),
		utils.FormatFloat(stats.AverageGas),
		utils.FormatFloat(stats.AverageEther),
		stats.FirstTransactionDate,
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactions writes the header and one row per transaction in the given order.
func WriteTransactions(w io.Writer, txs []entity.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionsHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		row := []string{tx.From, tx.To, tx.GasUsed, utils.FormatFloat(tx.ValueEther), tx.Timestamp}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
