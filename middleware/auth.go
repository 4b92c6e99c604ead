package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Arylite/nephtys/utils"
)

const (
	// ContextSubjectKey stores the token subject inside Gin context.
	ContextSubjectKey = "subject"
	// ContextRoleKey stores the caller role inside Gin context.
	ContextRoleKey = "role"
)

// Roles allowed on the dashboard endpoints.
var dashboardRoles = map[string]bool{"admin": true, "user": true}

// AdminRequired ensures the request carries a valid bearer token with a dashboard role.
// An empty secret disables the check in gin debug mode only; in any other mode
// every request is refused.
func AdminRequired(secret string) gin.HandlerFunc {
	if secret == "" {
		if gin.Mode() == gin.DebugMode {
			utils.Logger.Warn("AUTH_JWT_SECRET is empty, admin routes are not protected (debug mode)")
			return func(ctx *gin.Context) { ctx.Next() }
		}
		utils.Logger.Error("AUTH_JWT_SECRET is empty, admin routes are disabled")
		return func(ctx *gin.Context) {
			utils.Error(ctx, http.StatusServiceUnavailable, 50301, "admin authentication is not configured")
			ctx.Abort()
		}
	}
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString, secret)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			ctx.Abort()
			return
		}

		if !dashboardRoles[claims.Role] {
			utils.Error(ctx, http.StatusForbidden, 40301, "insufficient role")
			ctx.Abort()
			return
		}

		ctx.Set(ContextSubjectKey, claims.Subject)
		ctx.Set(ContextRoleKey, claims.Role)
		ctx.Next()
	}
}
