package promptgen

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler, limit gin.HandlerFunc) {
	router.POST("/generate-prompt", limit, h.Generate)
}
