package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"academy_portal/internal/auth"
	"academy_portal/internal/lib/sl"
	"academy_portal/internal/model"
	"academy_portal/internal/repository"

	"github.com/gin-gonic/gin"
)

// UserLookup loads the stored state of an authenticated user
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// RoleMiddleware creates a middleware to check for specific user roles
func RoleMiddleware(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.FromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		if !slices.Contains(allowedRoles, principal.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// CurrentRoleMiddleware checks allowedRoles against the stored user instead
// of the token claims, so deactivation and role changes take effect before
// the token expires. The principal's role is refreshed for later handlers.
func CurrentRoleMiddleware(users UserLookup, log *slog.Logger, allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		principal, ok := auth.FromContext(ctx)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		user, err := users.FindByID(ctx, principal.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
				return
			}
			log.Error("failed to load current user", slog.String("user_id", principal.UserID), sl.Err(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			return
		}

		principal.Role = user.Role
		c.Request = c.Request.WithContext(auth.WithPrincipal(ctx, principal))

		if !slices.Contains(allowedRoles, principal.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks that the caller is currently an active admin
func AdminMiddleware(users UserLookup, log *slog.Logger) gin.HandlerFunc {
	return CurrentRoleMiddleware(users, log, model.RoleAdmin)
}

// StaffMiddleware allows active staff and admins, the roles that manage the catalog
func StaffMiddleware(users UserLookup, log *slog.Logger) gin.HandlerFunc {
	return CurrentRoleMiddleware(users, log, model.RoleStaff, model.RoleAdmin)
}
