package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// CreateUser
func (uc *UserController) CreateUser(c *gin.Context) {
	var body services.CreateUserInput
	if !bindJSON(c, &body) {
		return
	}
	user, err := uc.Users.Create(c.Request.Context(), body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "User created", user)
}

// GetAllUsers
func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// GetUserByID
func (uc *UserController) GetUserByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := uc.Users.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User detail", user)
}

// UpdateUser
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body services.UpdateUserInput
	if !bindJSON(c, &body) {
		return
	}
	user, err := uc.Users.Update(c.Request.Context(), id, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

// DeleteUser
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := uc.Users.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
