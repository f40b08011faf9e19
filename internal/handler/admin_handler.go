package handler

import (
	"log/slog"
	"net/http"

	"academy_portal/internal/model"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler manages admin records
type AdminHandler struct {
	service service.AdminService
	log     *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.AdminService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{service: s, log: log}
}

func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve admins")
		return
	}
	c.JSON(http.StatusOK, admins)
}

func (h *AdminHandler) Promote(c *gin.Context) {
	var req model.PromoteAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	admin, err := h.service.Promote(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to promote user")
		return
	}
	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) UpdatePermissions(c *gin.Context) {
	var req model.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	admin, err := h.service.UpdatePermissions(c.Request.Context(), c.Param("id"), req.Permissions)
	if err != nil {
		respondError(c, h.log, err, "Failed to update permissions")
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) Revoke(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	if err := h.service.Revoke(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to revoke admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin access revoked"})
}

// RegisterAdminRoutes registers admin management routes
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	adminRoutes := rg.Group("/admin/admins")
	adminRoutes.Use(authMW, adminMW)
	{
		adminRoutes.GET("", h.List)
		adminRoutes.POST("", h.Promote)
		adminRoutes.PUT("/:id/permissions", h.UpdatePermissions)
		adminRoutes.DELETE("/:id", h.Revoke)
	}
}
