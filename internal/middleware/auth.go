package middleware

import (
	"context"
	"net/http"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/internal/models"
	"promptbuilder-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "session_token"
)

// SessionValidator resolves a session token to a user id.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (uint, error)
}

// UserFinder loads the user a session belongs to.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware rejects requests without a live session and stores the
// session's user and token in the context.
func AuthMiddleware(sessions SessionValidator, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			c.Abort()
			return
		}

		userID, err := sessions.Validate(c.Request.Context(), tokenString)
		if err != nil {
			if apperr.Is(err, apperr.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
			} else {
				_ = c.Error(err)
				c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to check session status"))
			}
			c.Abort()
			return
		}

		user, err := users.FindUserByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "User not found"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, tokenString)
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
