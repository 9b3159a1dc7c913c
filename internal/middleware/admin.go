package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(access *services.Access, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
			c.Abort()
			return
		}

		admin, err := access.IsAdmin(c.Request.Context(), user.ID)
		if err != nil {
			log.Error("admin check failed", zap.String("user_id", user.ID.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to check permissions"})
			c.Abort()
			return
		}
		if !admin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "admin access required"})
			c.Abort()
			return
		}

		user.Role = services.RoleAdmin
		c.Set(UserKey, user)
		c.Next()
	}
}
