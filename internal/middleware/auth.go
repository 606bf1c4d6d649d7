package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hsaito/project-tracking-api/internal/auth"
	"github.com/hsaito/project-tracking-api/internal/database"
	apierrors "github.com/hsaito/project-tracking-api/internal/errors"
	"github.com/hsaito/project-tracking-api/internal/models"
)

// ContextKeyUserID is the gin context key under which the authenticated
// user's ID is stored.
const ContextKeyUserID = "user_id"

// RequireAuth authenticates the request from the access token cookie,
// falling back to an Authorization bearer header. The referenced user must
// still exist and be active.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(auth.AccessTokenCookie)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(tokenString, auth.TokenTypeAccess)
		if err != nil {
			apierrors.Unauthorized(c, "Access token is invalid or expired")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
