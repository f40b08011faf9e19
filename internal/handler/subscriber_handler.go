package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"academy_portal/internal/model"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscriberHandler handles newsletter sign-ups
type SubscriberHandler struct {
	service service.SubscriberService
	log     *slog.Logger
}

// NewSubscriberHandler creates a new SubscriberHandler
func NewSubscriberHandler(s service.SubscriberService, log *slog.Logger) *SubscriberHandler {
	return &SubscriberHandler{service: s, log: log}
}

func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to subscribe")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriberHandler) Confirm(c *gin.Context) {
	var req model.SubscriberEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.service.Confirm(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err, "Failed to confirm subscription")
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var req model.SubscriberEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.service.Unsubscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err, "Failed to unsubscribe")
		return
	}
	c.JSON(http.StatusOK, sub)
}

// --- Admin Routes ---

func (h *SubscriberHandler) List(c *gin.Context) {
	var filters model.SubscriberFilters
	if confirmedParam := c.Query("confirmed"); confirmedParam != "" {
		confirmed, err := strconv.ParseBool(confirmedParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confirmed filter, use true or false"})
			return
		}
		filters.IsConfirmed = &confirmed
	}
	if activeParam := c.Query("active"); activeParam != "" {
		active, err := strconv.ParseBool(activeParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active filter, use true or false"})
			return
		}
		filters.Active = &active
	}
	if sourceParam := c.Query("source"); sourceParam != "" {
		source := model.SubscriberSource(sourceParam)
		if !source.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid source filter"})
			return
		}
		filters.Source = &source
	}
	if tagParam := c.Query("tag"); tagParam != "" {
		filters.Tag = &tagParam
	}

	subs, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve subscribers")
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubscriberHandler) SetTags(c *gin.Context) {
	var req model.SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.service.SetTags(c.Request.Context(), c.Param("id"), req.Tags)
	if err != nil {
		respondError(c, h.log, err, "Failed to update tags")
		return
	}
	c.JSON(http.StatusOK, sub)
}

// RegisterSubscriberRoutes registers subscriber routes. limitMW guards the
// public sign-up endpoint.
func (h *SubscriberHandler) RegisterSubscriberRoutes(rg *gin.RouterGroup, limitMW, authMW, adminMW gin.HandlerFunc) {
	public := rg.Group("/subscribers")
	{
		public.POST("", limitMW, h.Subscribe)
		public.POST("/confirm", h.Confirm)
		public.POST("/unsubscribe", h.Unsubscribe)
	}

	adminRoutes := rg.Group("/admin/subscribers")
	adminRoutes.Use(authMW, adminMW)
	{
		adminRoutes.GET("", h.List)
		adminRoutes.PUT("/:id/tags", h.SetTags)
	}
}
