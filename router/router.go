package router

import (
	"ModelHub/config"
	"ModelHub/internal/handler"
	"ModelHub/utils"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), utils.RequestLogger(), utils.CORSMiddleware(config.AppConfig.CORSOrigins))
	r.MaxMultipartMemory = 32 << 20

	r.GET("/", handler.Home)
	r.GET("/healthz", handler.Healthz)
	if dir := config.AppConfig.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Static("/static", dir)
		} else {
			slog.Debug("static dir not mounted", "dir", dir)
		}
	}

	r.POST("/login", handler.Login)
	r.GET("/me", utils.AuthMiddleware(), handler.Me)

	users := r.Group("/usuarios")
	{
		users.POST("/", handler.CreateUser)
		users.GET("/", handler.ListUsers)
		users.GET("/:id/modelos", handler.ListUserModels)
	}

	categories := r.Group("/categorias")
	{
		categories.GET("/", handler.ListCategories)
		categories.GET("/:id/modelos", handler.ListCategoryModels)
	}

	r.POST("/subir_modelo/", handler.UploadModel)
	r.GET("/modelos/", handler.ListModels)
	r.GET("/archivos/:name", handler.ServeFile)
	r.DELETE("/eliminar_modelo/:id", handler.DeleteModel)

	r.POST("/calificaciones/", handler.SubmitRating)
	r.GET("/calificaciones/:modelo_id", handler.GetModelRatings)
	r.GET("/ranking/", handler.Ranking)
	return r
}
