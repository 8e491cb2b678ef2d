package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/nexbasket/backend/internal/application/identity"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// UserAdminService is the slice of the identity service the user admin
// endpoints need
type UserAdminService interface {
	Get(ctx context.Context, id uuid.UUID) (*identityapp.UserResponse, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[identityapp.UserResponse], error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// UserHandler handles account administration. All routes are admin
// only.
type UserHandler struct {
	BaseHandler
	users   UserAdminService
	adminMW []gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users UserAdminService, adminMW ...gin.HandlerFunc) *UserHandler {
	return &UserHandler{users: users, adminMW: adminMW}
}

// RegisterRoutes registers user admin routes on the API group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", h.adminMW...)
	users.GET("", h.List)
	users.GET("/:id", h.Get)
	users.DELETE("/:id", h.Deactivate)
}

// List returns user accounts
func (h *UserHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Get returns one user account
func (h *UserHandler) Get(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Deactivate blocks an account from logging in
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.users.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
