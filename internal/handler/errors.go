package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"academy_portal/internal/auth"
	"academy_portal/internal/lib/sl"
	"academy_portal/internal/middleware"
	"academy_portal/internal/service"

	"github.com/gin-gonic/gin"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrUseAdminGrant, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrUserInactive, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrSelfManagement, http.StatusForbidden},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrAdminNotFound, http.StatusNotFound},
	{service.ErrTrainingNotFound, http.StatusNotFound},
	{service.ErrServiceNotFound, http.StatusNotFound},
	{service.ErrSubscriberNotFound, http.StatusNotFound},
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrUserAlreadyExists, http.StatusConflict},
	{service.ErrPhoneInUse, http.StatusConflict},
	{service.ErrAlreadyAdmin, http.StatusConflict},
	{service.ErrPromoteInactive, http.StatusConflict},
	{service.ErrRevokeFirst, http.StatusConflict},
	{service.ErrSlugTaken, http.StatusConflict},
	{service.ErrInvalidTransition, http.StatusConflict},
	{service.ErrAlreadySubscribed, http.StatusConflict},
}

// respondError answers known service errors with their status and message.
// Anything else is logged and hidden behind fallback.
func respondError(c *gin.Context, log *slog.Logger, err error, fallback string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}
	log.Error(fallback,
		slog.String("path", c.Request.URL.Path),
		slog.String("request_id", middleware.GetRequestID(c)),
		sl.Err(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// mustPrincipal returns the caller set by the auth middleware. It answers 401
// and returns false when none is present.
func mustPrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
	}
	return p, ok
}

// isStaffRequest reports whether an optional-auth request comes from staff.
func isStaffRequest(c *gin.Context) bool {
	p, ok := auth.FromContext(c.Request.Context())
	return ok && p.IsStaff()
}
