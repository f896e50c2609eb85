package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusband/companion/internal/handler"
	"focusband/companion/internal/middleware"
	"focusband/companion/internal/service"
)

func New(
	pairingService *service.PairingService,
	deviceHandler *handler.DeviceHandler,
	summaryHandler *handler.SummaryHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	devices := api.Group("/devices")
	devices.POST("/register", deviceHandler.Register)
	devices.POST("/pair", deviceHandler.Pair)

	summary := api.Group("/summary")
	summary.Use(middleware.Auth(pairingService))
	summary.POST("", summaryHandler.Ingest)
	summary.GET("/history", summaryHandler.History)
	summary.GET("/day/:ymd", summaryHandler.Day)

	return engine
}
