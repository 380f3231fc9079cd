package handler

import (
	"net/http"
	"time"

	"invoicedesk/internal/middleware"
	"invoicedesk/internal/service"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	auth        *middleware.Authenticator
}

// NewUserHandler serves account and session endpoints under /api/auth
func NewUserHandler(userService service.UserService, auth *middleware.Authenticator) *UserHandler {
	return &UserHandler{userService: userService, auth: auth}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/auth")
	{
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
		group.POST("/logout", h.Logout)
		group.GET("/me", h.auth.RequireAuth(), h.GetMe)
	}
}

// Register creates an account and signs it in
// @Summary      Register
// @Description  Creates a user with a bcrypt-hashed password and returns an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Account"
// @Success      201      {object}  response.Response{data=service.TokenResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokenRes, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	h.auth.SetTokenCookie(c, tokenRes.Token, time.Duration(tokenRes.ExpiresIn)*time.Second)
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tokenRes))
}

// Login authenticates by email and password
// @Summary      Login
// @Description  Verifies credentials and returns an access token, also set as the access_token cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  response.Response{data=service.TokenResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	tokenRes, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	h.auth.SetTokenCookie(c, tokenRes.Token, time.Duration(tokenRes.ExpiresIn)*time.Second)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, tokenRes))
}

// Logout clears the access_token cookie
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	h.auth.ClearTokenCookie(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Logged out"))
}

// GetMe returns the signed-in user
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.Me(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}
