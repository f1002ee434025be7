// Package middleware provides HTTP middleware for the benefits backend.
package middleware

import (
	"net/http"
	"strings"

	"github.com/benefits/backend/internal/infrastructure/persistence/scope"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScopeContextKey is the gin context key under which the installed scope
// context is mirrored for handlers
const ScopeContextKey = "scope_context"

// ScopeMiddlewareConfig holds configuration for the scope middleware
type ScopeMiddlewareConfig struct {
	// SkipPaths are paths that run without a scope context
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that run without a scope context
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultScopeConfig returns default scope middleware configuration. The
// skip list mirrors the authentication skip list: whatever runs without a
// token also runs without a scope context.
func DefaultScopeConfig() ScopeMiddlewareConfig {
	return ScopeMiddlewareConfig{
		SkipPaths: []string{
			"/health",
			"/ready",
		},
		SkipPathPrefixes: []string{
			"/api/v1/auth",
		},
	}
}

// ScopeMiddleware builds the caller's scope context from the JWT claims and
// installs it on the request context. It must run after JWTAuthMiddleware.
// Every store operation downstream reads the installed context; a request
// that passes this middleware can no longer reach data outside its scope.
func ScopeMiddleware() gin.HandlerFunc {
	return ScopeMiddlewareWithConfig(DefaultScopeConfig())
}

// ScopeMiddlewareWithConfig creates scope middleware with custom config
func ScopeMiddlewareWithConfig(cfg ScopeMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		callerID, err := claims.GetUserUUID()
		if err != nil {
			rejectScope(c, cfg, "invalid caller id", err)
			return
		}

		unitID, err := claims.GetUnitUUID()
		if err != nil {
			rejectScope(c, cfg, "invalid unit id", err)
			return
		}

		sc, err := scope.New(scope.Mode(claims.ScopeMode), callerID, unitID)
		if err != nil {
			rejectScope(c, cfg, "scope context construction failed", err)
			return
		}

		c.Set(ScopeContextKey, sc)
		c.Request = c.Request.WithContext(scope.Install(c.Request.Context(), sc))

		if cfg.Logger != nil {
			cfg.Logger.Debug("Scope context installed",
				zap.String("mode", string(sc.Mode)),
				zap.String("caller_id", sc.CallerID.String()),
			)
		}

		c.Next()
	}
}

// rejectScope aborts the request. A token whose claims cannot produce a
// valid scope context is an authorization failure, not a server error.
func rejectScope(c *gin.Context, cfg ScopeMiddlewareConfig, message string, err error) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Scope context rejected",
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INVALID_SCOPE",
			"message": "Token does not grant a valid data access scope",
		},
	})
}

// GetScopeContext retrieves the scope context from gin.Context
func GetScopeContext(c *gin.Context) (scope.Context, bool) {
	if value, exists := c.Get(ScopeContextKey); exists {
		if sc, ok := value.(scope.Context); ok {
			return sc, true
		}
	}
	return scope.Context{}, false
}

// GetCallerID returns the authenticated caller's id, or uuid.Nil outside an
// installed scope
func GetCallerID(c *gin.Context) uuid.UUID {
	if sc, ok := GetScopeContext(c); ok {
		return sc.CallerID
	}
	return uuid.Nil
}
