package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"academy_portal/internal/model"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's profile and admin account management
type UserHandler struct {
	service service.UserService
	log     *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{service: s, log: log}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	user, err := h.service.GetProfile(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.UpdateProfile(c.Request.Context(), p.UserID, req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- Admin Routes ---

func (h *UserHandler) ListUsers(c *gin.Context) {
	var filters model.UserFilters
	if roleParam := c.Query("role"); roleParam != "" {
		role := model.Role(roleParam)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role filter"})
			return
		}
		filters.Role = &role
	}
	if activeParam := c.Query("is_active"); activeParam != "" {
		active, err := strconv.ParseBool(activeParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_active filter, use true or false"})
			return
		}
		filters.IsActive = &active
	}

	users, err := h.service.ListUsers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) SetRole(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req model.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.SetRole(c.Request.Context(), p, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, h.log, err, "Failed to update role")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SetActive(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req model.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.service.SetActive(c.Request.Context(), p, c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, h.log, err, "Failed to update account status")
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterUserRoutes registers profile and admin user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	me := rg.Group("/users/me")
	me.Use(authMW)
	{
		me.GET("", h.GetMe)
		me.PUT("", h.UpdateMe)
	}

	adminRoutes := rg.Group("/admin/users")
	adminRoutes.Use(authMW, adminMW)
	{
		adminRoutes.GET("", h.ListUsers)
		adminRoutes.PUT("/:id/role", h.SetRole)
		adminRoutes.PUT("/:id/active", h.SetActive)
	}
}
