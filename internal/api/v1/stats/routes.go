package stats

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	stats := router.Group("/stats")
	stats.GET("", h.Dashboard)
	stats.GET("/usage", h.Usage)
	stats.GET("/prompts/trending", h.Trending)
}
