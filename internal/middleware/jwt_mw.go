package middleware

import (
	"net/http"
	"strings"

	"academy_portal/internal/auth"
	"academy_portal/internal/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. present is false when the header is absent; errMsg describes a
// malformed one.
func bearerToken(c *gin.Context) (token string, present bool, errMsg string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", true, "Invalid authorization header format"
	}
	return parts[1], true, ""
}

func setPrincipal(c *gin.Context, claims *utils.JWTClaims) {
	ctx := auth.WithPrincipal(c.Request.Context(), auth.Principal{UserID: claims.UserID, Role: claims.Role})
	c.Request = c.Request.WithContext(ctx)
}

// JWTAuthMiddleware creates a middleware for JWT authentication. The caller
// is stored in the request context as an auth.Principal.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, present, errMsg := bearerToken(c)
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		if errMsg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the principal when a valid token is sent
// and lets anonymous requests through untouched. A token that is sent but
// invalid is still rejected.
func OptionalAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, present, errMsg := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		if errMsg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		setPrincipal(c, claims)
		c.Next()
	}
}
