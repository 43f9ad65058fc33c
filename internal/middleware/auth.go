package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/response"
	"github.com/quizcraft/quizcraft-backend/internal/service"
)

const (
	// ContextKeyUser is the Gin context key for the authenticated user.
	ContextKeyUser = "user"
)

// RequireAuth validates the bearer token, resolves the account and, for
// routes carrying a :user_id parameter, enforces that the token's user
// is the one named in the path.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			response.AbortDetail(c, http.StatusUnauthorized, "Token is missing")
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortDetail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := authService.ResolveUser(c.Request.Context(), claims)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		if raw := c.Param("user_id"); raw != "" {
			pathID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || pathID != user.ID {
				response.AbortDetail(c, http.StatusForbidden, "Unauthorized access")
				return
			}
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireRole restricts a route group to one role. Must run after
// RequireAuth.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := Principal(c)
		if user == nil || user.Role != role {
			response.AbortDetail(c, http.StatusForbidden, "Unauthorized access")
			return
		}
		c.Next()
	}
}

// Principal retrieves the authenticated user from the Gin context.
func Principal(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
