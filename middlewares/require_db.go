package middlewares

import (
	"net/http"

	"github.com/moom-ugrd-24f/poke-n-pump-server/config"

	"github.com/gin-gonic/gin"
)

// RequireDB rejects requests while the startup database connection has not
// succeeded. Startup itself never terminates on a failed connect.
func RequireDB() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.DB == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Database unavailable"})
			return
		}
		c.Next()
	}
}
