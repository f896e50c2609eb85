package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusband/companion/internal/service"
)

type DeviceHandler struct {
	pairingService *service.PairingService
}

type registerRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type pairRequest struct {
	DeviceID string `json:"deviceId"`
	Secret   string `json:"secret"`
}

func NewDeviceHandler(pairingService *service.PairingService) *DeviceHandler {
	return &DeviceHandler{pairingService: pairingService}
}

func (h *DeviceHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	device, apiErr := h.pairingService.Register(c.Request.Context(), req.Name, req.Secret)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"device": device})
}

func (h *DeviceHandler) Pair(c *gin.Context) {
	var req pairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	result, apiErr := h.pairingService.Pair(c.Request.Context(), req.DeviceID, req.Secret)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, result)
}
