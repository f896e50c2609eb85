package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"focusband/companion/internal/middleware"
	"focusband/companion/internal/replicate"
	"focusband/companion/internal/service"
)

type SummaryHandler struct {
	summaryService *service.SummaryService
}

func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// Ingest accepts a dailySummary message pushed by the paired device.
func (h *SummaryHandler) Ingest(c *gin.Context) {
	deviceID := middleware.DeviceID(c)
	if deviceID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "unauthorized", "message": "unauthorized"},
		})
		return
	}

	var msg replicate.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	entry, apiErr := h.summaryService.Apply(c.Request.Context(), msg)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (h *SummaryHandler) History(c *gin.Context) {
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil {
			limit = parsed
		}
	}

	entries, apiErr := h.summaryService.History(c.Request.Context(), limit)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *SummaryHandler) Day(c *gin.Context) {
	entry, apiErr := h.summaryService.Day(c.Request.Context(), c.Param("ymd"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}
