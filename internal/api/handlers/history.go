package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valorant-tools/skin-price-tracker/internal/history"
)

type HistoryHandler struct {
	history *history.Service
}

func NewHistoryHandler(h *history.Service) *HistoryHandler {
	return &HistoryHandler{history: h}
}

// GetHistory returns refresh records for a period (week, month, all)
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	records, err := h.history.History(period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":  period,
		"records": records,
	})
}

// GetLatest returns the most recent refresh record
func (h *HistoryHandler) GetLatest(c *gin.Context) {
	record, err := h.history.Latest()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no refresh recorded yet"})
		return
	}

	c.JSON(http.StatusOK, record)
}
