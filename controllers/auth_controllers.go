package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// Register
func (ac *AuthController) Register(c *gin.Context) {
	var body services.RegisterInput
	if !bindJSON(c, &body) {
		return
	}
	user, err := ac.Auth.Register(c.Request.Context(), body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Registration successful", user)
}

// Login
func (ac *AuthController) Login(c *gin.Context) {
	var body services.LoginInput
	if !bindJSON(c, &body) {
		return
	}
	result, err := ac.Auth.Login(c.Request.Context(), body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", result)
}

// Me returns the caller's account as currently stored.
func (ac *AuthController) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	user, err := ac.Auth.Me(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current user", user)
}
