package handler

import (
	"ModelHub/internal/dto"
	"ModelHub/internal/service"
	"ModelHub/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubmitRating creates or replaces the caller's rating of a model.
func SubmitRating(c *gin.Context) {
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "solicitud inválida: "+err.Error())
		return
	}
	rating, created, err := service.UpsertRating(c.Request.Context(), &req)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RatingResponse{
		Message: "Calificación registrada correctamente",
		Created: created,
		Rating:  rating,
	})
}

// GetModelRatings returns the average, count and itemized ratings of a model.
func GetModelRatings(c *gin.Context) {
	modelID, ok := idParam(c, "modelo_id")
	if !ok {
		return
	}
	resp, err := service.GetModelRatings(c.Request.Context(), modelID)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func Ranking(c *gin.Context) {
	entries, err := service.BuildRanking(c.Request.Context())
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
