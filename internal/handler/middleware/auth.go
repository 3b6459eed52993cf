package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"testdrive-hub/internal/domain/user"
	"testdrive-hub/internal/handler/httperr"
	"testdrive-hub/internal/pkg/cookie"
	"testdrive-hub/internal/pkg/errs"
	"testdrive-hub/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxIdentityKey = "identity"
	ctxClaimsKey   = "jwt_claims"
)

var (
	errMissingToken     = errs.New("access token required")
	errInsufficientRole = errs.New("insufficient role")
)

var roleHierarchy = map[user.Role]int{
	user.RoleBuyer:  1,
	user.RoleSeller: 2,
	user.RoleAdmin:  3,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		id, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
// Anonymous buyers fill in the form and keep drafts this way.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		id, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Debug("Ignoring invalid optional token", "error", err.Error())
			c.Next()
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			// should be used after RequireAuth()
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		if !hasMinimumRole(id.Role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) RequireSeller() gin.HandlerFunc {
	return m.RequireRoleAtLeast(user.RoleSeller)
}

func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	id, ok := v.(user.Identity)
	return id, ok
}

// SetIdentity is used by handler tests that bypass token validation.
func SetIdentity(c *gin.Context, id user.Identity) {
	setIdentity(c, id)
}

func setIdentity(c *gin.Context, id user.Identity) {
	c.Set(ctxIdentityKey, id)
	c.Set(ctxClaimsKey, map[string]any{
		"user_id": id.UserID,
		"role":    string(id.Role),
	})
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
