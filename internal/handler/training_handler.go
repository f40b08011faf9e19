package handler

import (
	"log/slog"
	"net/http"

	"academy_portal/internal/model"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainingHandler serves the training catalog
type TrainingHandler struct {
	service service.TrainingService
	log     *slog.Logger
}

// NewTrainingHandler creates a new TrainingHandler
func NewTrainingHandler(s service.TrainingService, log *slog.Logger) *TrainingHandler {
	return &TrainingHandler{service: s, log: log}
}

// List returns published trainings to the public. Staff may filter by any status.
func (h *TrainingHandler) List(c *gin.Context) {
	var filters model.TrainingFilters
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.TrainingStatus(statusParam)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		filters.Status = &status
	}
	if modeParam := c.Query("mode"); modeParam != "" {
		mode := model.DeliveryMode(modeParam)
		if !mode.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode filter"})
			return
		}
		filters.Mode = &mode
	}

	trainings, err := h.service.List(c.Request.Context(), filters, isStaffRequest(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve trainings")
		return
	}
	c.JSON(http.StatusOK, trainings)
}

func (h *TrainingHandler) Get(c *gin.Context) {
	training, err := h.service.Get(c.Request.Context(), c.Param("slug"), isStaffRequest(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve training")
		return
	}
	c.JSON(http.StatusOK, training)
}

func (h *TrainingHandler) Create(c *gin.Context) {
	var req model.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	training, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to create training")
		return
	}
	c.JSON(http.StatusCreated, training)
}

func (h *TrainingHandler) Update(c *gin.Context) {
	var req model.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	training, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err, "Failed to update training")
		return
	}
	c.JSON(http.StatusOK, training)
}

func (h *TrainingHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	training, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.log, err, "Failed to update training status")
		return
	}
	c.JSON(http.StatusOK, training)
}

func (h *TrainingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete training")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training deleted successfully"})
}

// RegisterTrainingRoutes registers training routes. Reads use optionalAuthMW
// so staff see unpublished entries.
func (h *TrainingHandler) RegisterTrainingRoutes(rg *gin.RouterGroup, optionalAuthMW, authMW, staffMW gin.HandlerFunc) {
	public := rg.Group("/trainings")
	public.Use(optionalAuthMW)
	{
		public.GET("", h.List)
		public.GET("/:slug", h.Get)
	}

	staffRoutes := rg.Group("/trainings")
	staffRoutes.Use(authMW, staffMW)
	{
		staffRoutes.POST("", h.Create)
		staffRoutes.PUT("/:id", h.Update)
		staffRoutes.PUT("/:id/status", h.UpdateStatus)
		staffRoutes.DELETE("/:id", h.Delete)
	}
}
