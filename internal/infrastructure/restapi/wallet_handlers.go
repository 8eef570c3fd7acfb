package restapi

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/infrastructure/export"

	"github.com/gin-gonic/gin"
)

// DefaultTransactionLimit is used when the limit query parameter is omitted.
const DefaultTransactionLimit = 10

// APIErrorResponse is the body of every non-2xx response.
type APIErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// BalanceResponse is returned by the balance and fiat endpoints.
type BalanceResponse struct {
	Address  string  `json:"address"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// TransactionsResponse is returned by the transactions endpoint.
type TransactionsResponse struct {
	Address      string               `json:"address"`
	Limit        int                  `json:"limit"`
	Transactions []entity.Transaction `json:"transactions"`
}

// AverageGasResponse is returned by the gas endpoint.
type AverageGasResponse struct {
	Address    string  `json:"address"`
	Limit      int     `json:"limit"`
	AverageGas float64 `json:"averageGas"`
}

// WalletHandler serves read-only wallet queries over HTTP.
type WalletHandler struct {
	query  port.WalletQueryService
	stats  port.StatisticsService
	logger port.Logger
}

// NewWalletHandler creates a new instance of WalletHandler.
func NewWalletHandler(query port.WalletQueryService, stats port.StatisticsService, l port.Logger) *WalletHandler {
	return &WalletHandler{query: query, stats: stats, logger: l}
}

// StatusFor maps a pipeline error to the HTTP status reported to clients.
func StatusFor(err error) int {
	switch entity.KindOf(err) {
	case entity.KindInvalidAddress, entity.KindInvalidArgument:
		return http.StatusBadRequest
	case entity.KindEmptySet, entity.KindNoTransactions:
		return http.StatusNotFound
	case entity.KindMissingField, entity.KindMalformedResponse, entity.KindNumericParse:
		return http.StatusBadGateway
	case entity.KindNetwork:
		return http.StatusServiceUnavailable
	case entity.KindCountMismatch:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *WalletHandler) abort(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.FullPath(), "address", c.Param("address"), "status", status, "error", err)
	} else {
		h.logger.Debug("Request rejected", "path", c.FullPath(), "address", c.Param("address"), "status", status, "error", err)
	}
	resp := APIErrorResponse{Error: err.Error()}
	if kind := entity.KindOf(err); kind != 0 {
		resp.Kind = kind.String()
	}
	c.AbortWithStatusJSON(status, resp)
}

func limitParam(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return DefaultTransactionLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &entity.WalletError{Kind: entity.KindInvalidArgument, Detail: fmt.Sprintf("limit %q is not an integer", raw)}
	}
	return limit, nil
}

// GetBalanceHandler returns the pending ether balance of the address.
func (h *WalletHandler) GetBalanceHandler(c *gin.Context) {
	address := c.Param("address")
	balance, err := h.query.FetchBalance(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Address: address, Balance: balance, Currency: "ETH"})
}

// GetFiatHandler returns the balance converted to USD.
func (h *WalletHandler) GetFiatHandler(c *gin.Context) {
	address := c.Param("address")
	balance, err := h.query.FetchFiatBalance(c.Request.Context(), address)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Address: address, Balance: balance, Currency: "USD"})
}

// GetTransactionsHandler returns the oldest ?limit= transactions of the address.
func (h *WalletHandler) GetTransactionsHandler(c *gin.Context) {
	address := c.Param("address")
	limit, err := limitParam(c)
	if err != nil {
		h.abort(c, err)
		return
	}
	txs, err := h.query.FetchTransactions(c.Request.Context(), address, limit)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, TransactionsResponse{Address: address, Limit: limit, Transactions: txs})
}

// GetAverageGasHandler returns the mean gasUsed over the oldest ?limit= transactions.
func (h *WalletHandler) GetAverageGasHandler(c *gin.Context) {
	address := c.Param("address")
	limit, err := limitParam(c)
	if err != nil {
		h.abort(c, err)
		return
	}
	avg, err := h.stats.AverageGasForLimit(c.Request.Context(), address, limit)
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, AverageGasResponse{Address: address, Limit: limit, AverageGas: avg})
}

// GetStatisticsHandler returns the wallet statistics as JSON.
func (h *WalletHandler) GetStatisticsHandler(c *gin.Context) {
	stats, err := h.stats.GenerateStatistics(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetStatisticsCSVHandler streams statistics.csv.
func (h *WalletHandler) GetStatisticsCSVHandler(c *gin.Context) {
	stats, err := h.stats.GenerateStatistics(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.abort(c, err)
		return
	}
	h.sendCSV(c, export.StatisticsFileName, func(w io.Writer) error {
		return export.WriteStatistics(w, stats)
	})
}

// GetTransactionsCSVHandler streams transactions.csv for the full history.
func (h *WalletHandler) GetTransactionsCSVHandler(c *gin.Context) {
	_, txs, err := h.stats.GenerateReport(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.abort(c, err)
		return
	}
	h.sendCSV(c, export.TransactionsFileName, func(w io.Writer) error {
		return export.WriteTransactions(w, txs)
	})
}

func (h *WalletHandler) sendCSV(c *gin.Context, fileName string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.abort(c, fmt.Errorf("render %s: %w", fileName, err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
