package category

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	categories := router.Group("/categories")
	categories.GET("", h.List)
	categories.POST("", h.Create)
	categories.GET("/:id", h.Get)
	categories.PUT("/:id", h.Update)
	categories.DELETE("/:id", h.Delete)
	categories.GET("/:id/prompts", h.ListPrompts)
}
