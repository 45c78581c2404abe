package handler

import (
	"ModelHub/internal/service"
	"ModelHub/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCategories lists the fixed categories.
func ListCategories(c *gin.Context) {
	categories, err := service.ListCategories(c.Request.Context())
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListCategoryModels lists the models filed under a category.
func ListCategoryModels(c *gin.Context) {
	categoryID, ok := idParam(c, "id")
	if !ok {
		return
	}
	models, err := service.ListModelsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}
