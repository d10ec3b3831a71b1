package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valorant-tools/skin-price-tracker/internal/api/handlers"
	"github.com/valorant-tools/skin-price-tracker/internal/history"
	"github.com/valorant-tools/skin-price-tracker/internal/metrics"
	"github.com/valorant-tools/skin-price-tracker/internal/pipeline"
)

// SetupRouter wires the local API the GUI front-end talks to
func SetupRouter(p *pipeline.Pipeline, historyService *history.Service, corsOrigins string) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	if corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(config))
	router.Use(requestMetrics())

	priceHandler := handlers.NewPriceHandler(p)
	historyHandler := handlers.NewHistoryHandler(historyService)

	api := router.Group("/api")
	{
		api.GET("/price", priceHandler.GetPrice)
		api.POST("/refresh", priceHandler.Refresh)
		api.GET("/currencies", priceHandler.GetCurrencies)

		catalog := api.Group("/catalog")
		{
			catalog.GET("/stats", priceHandler.GetCatalogStats)
		}

		hist := api.Group("/history")
		{
			hist.GET("", historyHandler.GetHistory)
			hist.GET("/latest", historyHandler.GetLatest)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// requestMetrics counts requests by method, route, and status
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
