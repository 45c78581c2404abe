package handler

import (
	"ModelHub/internal/dto"
	"ModelHub/internal/service"
	"ModelHub/model"
	"ModelHub/utils"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateUser registers a user.
func CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "solicitud inválida: "+err.Error())
		return
	}
	user := model.User{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := service.CreateUser(c.Request.Context(), &user); err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers lists every user.
func ListUsers(c *gin.Context) {
	users, err := service.ListUsers(c.Request.Context())
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListUserModels lists the models owned by a user.
func ListUserModels(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	models, err := service.ListModelsByUser(c.Request.Context(), userID)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models)
}

// Login resolves a user by email, creating it on first login, and returns a token.
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "solicitud inválida: "+err.Error())
		return
	}
	user, created, err := service.Login(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	if created {
		slog.Info("user created on login", "user_id", user.ID)
		if err := utils.SendWelcomeMail(user.Email, user.Name); err != nil && !errors.Is(err, utils.ErrMailDisabled) {
			slog.Warn("send welcome mail", "user_id", user.ID, "error", err)
		}
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		New:   created,
		Token: token,
	})
}

// Me returns the user behind the bearer token.
func Me(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	user, err := service.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.FailWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
