package prompt

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the prompt endpoints. limit guards the generation
// endpoint.
func RegisterRoutes(router *gin.RouterGroup, h *Handler, limit gin.HandlerFunc) {
	prompts := router.Group("/prompts")
	prompts.GET("", h.List)
	prompts.POST("", h.Create)
	prompts.GET("/search", h.Search)
	prompts.GET("/most-used", h.MostUsed)
	prompts.GET("/recent", h.Recent)
	prompts.POST("/generate", limit, h.Generate)
	prompts.GET("/:id", h.Get)
	prompts.PUT("/:id", h.Update)
	prompts.DELETE("/:id", h.Delete)
	prompts.POST("/:id/use", h.Use)
}
