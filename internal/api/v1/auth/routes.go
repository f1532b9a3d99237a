package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the account endpoints. requireSession guards the
// endpoints that need a logged-in user.
func RegisterRoutes(router *gin.RouterGroup, h *Handler, requireSession gin.HandlerFunc) {
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	router.GET("/me", requireSession, h.Me)
	router.GET("/users", requireSession, h.Users)
}
