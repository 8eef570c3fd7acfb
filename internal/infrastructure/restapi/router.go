package restapi

import (
	"net/http"
	"slices"

	"wallet_inspector/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures and returns the gin engine.
// An empty origin list, or one containing "*", allows every origin.
func SetupRouter(walletHandler *WalletHandler, m *metrics.Metrics, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Accept", "Content-Type"},
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	router.Use(cors.New(corsConfig))

	if m != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		wallets := v1.Group("/wallets/:address")
		wallets.GET("/balance", walletHandler.GetBalanceHandler)
		wallets.GET("/fiat", walletHandler.GetFiatHandler)
		wallets.GET("/transactions", walletHandler.GetTransactionsHandler)
		wallets.GET("/gas", walletHandler.GetAverageGasHandler)
		wallets.GET("/statistics", walletHandler.GetStatisticsHandler)
		wallets.GET("/statistics.csv", walletHandler.GetStatisticsCSVHandler)
		wallets.GET("/transactions.csv", walletHandler.GetTransactionsCSVHandler)
	}

	return router
}
