package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-arena/internal/transport/http/middleware"
)

// NewRouter wires the websocket endpoint and the read-only status API.
func NewRouter(ws http.HandlerFunc, status *StatusHandler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())

	api := router.Group("/api")
	api.Use(middleware.CORSMiddleware(allowedOrigins))
	{
		api.GET("/sessions", status.GetLiveSessions)
		api.GET("/stats", status.GetStats)
		api.OPTIONS("/*path", func(c *gin.Context) {})
	}

	router.GET("/healthz", status.Health)

	// origin checks for the upgrade happen inside the websocket handler
	router.GET("/ws", gin.WrapF(ws))

	return router
}
