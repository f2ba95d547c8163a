package delivery

import (
	"net/http"
	"strings"

	authdomain "taskbot/internal/auth/domain"
	"taskbot/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts either a Bearer token from /api/auth/login or HTTP
// Basic credentials, so the dashboard opens directly in a browser.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if strings.HasPrefix(authHeader, "Bearer ") {
			admin, err := authUsecase.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				c.Abort()
				return
			}
			c.Set("admin", admin)
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok || !authUsecase.CheckCredentials(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="taskbot", charset="UTF-8"`)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверные учетные данные"})
			c.Abort()
			return
		}

		c.Set("admin", &authdomain.Admin{Username: username})
		c.Next()
	}
}
