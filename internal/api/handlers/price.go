package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valorant-tools/skin-price-tracker/internal/convert"
	"github.com/valorant-tools/skin-price-tracker/internal/models"
	"github.com/valorant-tools/skin-price-tracker/internal/pipeline"
)

type PriceHandler struct {
	pipeline *pipeline.Pipeline
}

func NewPriceHandler(p *pipeline.Pipeline) *PriceHandler {
	return &PriceHandler{pipeline: p}
}

// GetPrice returns the catalog total converted into the requested currency
func (h *PriceHandler) GetPrice(c *gin.Context) {
	currency := c.DefaultQuery("currency", "USD")

	price, err := h.pipeline.GetDisplayPrice(c.Request.Context(), currency)
	if err != nil {
		status := statusForPipelineError(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, price)
}

// Refresh forces a new scrape and returns the run outcome
func (h *PriceHandler) Refresh(c *gin.Context) {
	result, err := h.pipeline.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(statusForPipelineError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCurrencies lists the supported currency codes and display info
func (h *PriceHandler) GetCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": models.SupportedCurrencies()})
}

// GetCatalogStats returns statistics over the current catalog snapshot
func (h *PriceHandler) GetCatalogStats(c *gin.Context) {
	stats, err := h.pipeline.CatalogStats(c.Request.Context())
	if err != nil {
		c.JSON(statusForPipelineError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func statusForPipelineError(err error) int {
	var missingRate *convert.MissingRateError
	switch {
	case errors.Is(err, convert.ErrUnsupportedCurrency):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNoDataAvailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &missingRate):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
