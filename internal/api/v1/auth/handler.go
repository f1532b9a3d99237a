package auth

import (
	"net/http"
	"promptbuilder-backend/internal/middleware"
	"promptbuilder-backend/internal/services"
	"promptbuilder-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth          *services.AuthService
	sessions      *services.SessionService
	secureCookies bool
}

func NewHandler(auth *services.AuthService, sessions *services.SessionService, secureCookies bool) *Handler {
	return &Handler{auth: auth, sessions: sessions, secureCookies: secureCookies}
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input body SignupInput true "Signup Input"
// @Success 201 {object} utils.Response{data=auth.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var input SignupInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := h.auth.Signup(c.Request.Context(), input.Email, input.Password, input.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "User created", newUserResponse(u)))
}

// Login godoc
// @Summary Log in
// @Description Check the credentials and start a session stored in an HttpOnly cookie
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input body LoginInput true "Login Input"
// @Success 200 {object} utils.Response{data=auth.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	token, err := h.sessions.Issue(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not create session"))
		return
	}
	utils.SetSessionCookie(c, token, h.sessions.TTL(), h.secureCookies)

	resp := newUserResponse(u)
	resp.Token = token
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in", resp))
}

// Logout godoc
// @Summary Log out
// @Description Revoke the current session, if any, and clear the session cookie
// @Tags auth
// @Produce  json
// @Success 200 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /api/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if tokenString, err := utils.ExtractToken(c); err == nil {
		if err := h.sessions.Revoke(c.Request.Context(), tokenString); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revoke session"))
			return
		}
	}

	utils.ClearSessionCookie(c, h.secureCookies)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out", nil))
}

// Me godoc
// @Summary Get current user
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=auth.UserResponse}
// @Failure 401 {object} utils.Response
// @Router /api/me [get]
func (h *Handler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", newUserResponse(u)))
}

// Users godoc
// @Summary List users
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]auth.UserResponse}
// @Failure 401 {object} utils.Response
// @Router /api/users [get]
func (h *Handler) Users(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", resp))
}
