package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/nexbasket/backend/internal/application/identity"
)

// AuthService is the slice of the identity service the auth endpoints need
type AuthService interface {
	Register(ctx context.Context, req identityapp.RegisterRequest) (*identityapp.AuthResponse, error)
	Login(ctx context.Context, req identityapp.LoginRequest) (*identityapp.AuthResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*identityapp.UserResponse, error)
}

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	BaseHandler
	identity AuthService
	authMW   gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identity AuthService, authMW gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{identity: identity, authMW: authMW}
}

// RegisterRoutes registers auth routes on the API group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/me", h.authMW, h.Me)
}

// Register creates a customer account
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.identity.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login verifies credentials and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.identity.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.identity.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
