package handler

import (
	"log/slog"
	"net/http"

	"academy_portal/internal/model"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// OfferingHandler serves the bookable services catalog under /services
type OfferingHandler struct {
	service service.OfferingService
	log     *slog.Logger
}

// NewOfferingHandler creates a new OfferingHandler
func NewOfferingHandler(s service.OfferingService, log *slog.Logger) *OfferingHandler {
	return &OfferingHandler{service: s, log: log}
}

func (h *OfferingHandler) List(c *gin.Context) {
	services, err := h.service.List(c.Request.Context(), isStaffRequest(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *OfferingHandler) Get(c *gin.Context) {
	svc, err := h.service.Get(c.Request.Context(), c.Param("slug"), isStaffRequest(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve service")
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *OfferingHandler) Create(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *OfferingHandler) Update(c *gin.Context) {
	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *OfferingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// RegisterOfferingRoutes registers service catalog routes
func (h *OfferingHandler) RegisterOfferingRoutes(rg *gin.RouterGroup, optionalAuthMW, authMW, staffMW gin.HandlerFunc) {
	public := rg.Group("/services")
	public.Use(optionalAuthMW)
	{
		public.GET("", h.List)
		public.GET("/:slug", h.Get)
	}

	staffRoutes := rg.Group("/services")
	staffRoutes.Use(authMW, staffMW)
	{
		staffRoutes.POST("", h.Create)
		staffRoutes.PUT("/:id", h.Update)
		staffRoutes.DELETE("/:id", h.Delete)
	}
}
