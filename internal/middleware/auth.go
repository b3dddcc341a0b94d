package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/nexttalent/nexttalent/internal/auth"
	"github.com/nexttalent/nexttalent/internal/models"
	"github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/response"
)

const (
	CtxClaimsKey = "authClaims"
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
)

// Auth enforces JWT authentication using the supplied JWT service.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, string(claims.Role))

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated actor holds one of the
// allowed roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := models.Role(c.GetString(CtxRoleKey))
		for _, role := range roles {
			if actor == role {
				c.Next()
				return
			}
		}
		response.Error(c, errors.ErrForbidden)
		c.Abort()
	}
}
