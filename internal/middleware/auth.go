package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkstream/core/internal/models"
	"github.com/inkstream/core/internal/pkg/jwt"
	"github.com/inkstream/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
)

// Auth returns a middleware that enforces bearer JWT authentication and
// resolves the caller's role from the users table.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, role, err := resolveIdentity(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, id)
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

// OptionalAuth sets the caller identity if a valid token is present, but
// never blocks the request. Anonymous readers pass through untouched.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, role, err := resolveIdentity(db, extractToken(c)); err == nil {
			c.Set(ContextKeyUserID, id)
			c.Set(ContextKeyRole, role)
		}
		c.Next()
	}
}

// RequireAdmin layers a role check over Auth: 401 without a credential,
// 403 when the credential belongs to a plain user.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, func(r models.Role) bool { return r.IsAdmin() })
}

// RequireSuperAdmin passes only the superadmin role.
func RequireSuperAdmin(db *gorm.DB) gin.HandlerFunc {
	return requireRole(db, func(r models.Role) bool { return r == models.RoleSuperAdmin })
}

func requireRole(db *gorm.DB, allowed func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, role, err := resolveIdentity(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		if !allowed(role) {
			response.Forbidden(c)
			return
		}
		c.Set(ContextKeyUserID, id)
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

// resolveIdentity validates the token and loads the caller's role.
func resolveIdentity(db *gorm.DB, rawToken string) (string, models.Role, error) {
	token := NormalizeToken(rawToken)
	if token == "" {
		return "", "", errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return "", "", err
	}

	var u models.UserModel
	if err := db.Select("id, role").First(&u, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", errors.New("user no longer exists")
		}
		return "", "", err
	}
	return u.ID, u.Role, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentRole extracts the authenticated role from context.
func CurrentRole(c *gin.Context) models.Role {
	v, _ := c.Get(ContextKeyRole)
	role, _ := v.(models.Role)
	return role
}

// IsAuthenticated returns true if the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

// IsAdmin returns true if the request's role grants admin access.
func IsAdmin(c *gin.Context) bool {
	return CurrentRole(c).IsAdmin()
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
