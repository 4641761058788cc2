package middleware

import (
	"net/http"
	"strings"

	"bayka/models"
	"bayka/utils"

	"github.com/gin-gonic/gin"
)

const (
	CtxKeyUserID    = "user_id"
	CtxKeyUserEmail = "user_email"
	CtxKeyUserRole  = "user_role"
)

// AuthUser is the identity carried by a verified bearer token.
type AuthUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func abortWith(c *gin.Context, status int, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// AuthMiddleware requires an "Authorization: Bearer <jwt>" header signed with
// secret and stores the claims on the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, http.StatusUnauthorized, "Authorization header required", nil)
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" || strings.Contains(token, " ") {
			abortWith(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			return
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "Invalid or expired token", err)
			return
		}

		c.Set(CtxKeyUserID, claims.UserID)
		c.Set(CtxKeyUserEmail, claims.Email)
		c.Set(CtxKeyUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxKeyUserRole)
		if role == "" {
			abortWith(c, http.StatusForbidden, "User role not found", nil)
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abortWith(c, http.StatusForbidden, "Access denied. "+strings.Join(roles, " or ")+" role required", nil)
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// GetAuthUser returns the authenticated user, if any.
func GetAuthUser(c *gin.Context) (AuthUser, bool) {
	if _, ok := c.Get(CtxKeyUserID); !ok {
		return AuthUser{}, false
	}
	return AuthUser{
		ID:    c.GetInt(CtxKeyUserID),
		Email: c.GetString(CtxKeyUserEmail),
		Role:  c.GetString(CtxKeyUserRole),
	}, true
}
