package handler

import (
	"ModelHub/internal/repo"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const homePage = "<h2>API de Modelos 3D</h2><p>Catálogo de modelos 3D con calificaciones</p>"

func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}

// Healthz pings the database and, when configured, Redis.
func Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := repo.Db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	if repo.Redis != nil {
		if err := repo.Redis.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
