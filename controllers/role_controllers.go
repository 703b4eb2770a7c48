package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type RoleController struct {
	Roles *services.RoleService
}

func NewRoleController(roles *services.RoleService) *RoleController {
	return &RoleController{Roles: roles}
}

// CreateRole
func (rc *RoleController) CreateRole(c *gin.Context) {
	var body services.RoleInput
	if !bindJSON(c, &body) {
		return
	}
	role, err := rc.Roles.Create(c.Request.Context(), body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Role created", role)
}

// GetAllRoles
func (rc *RoleController) GetAllRoles(c *gin.Context) {
	roles, err := rc.Roles.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All roles", roles)
}

// GetRoleByID
func (rc *RoleController) GetRoleByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	role, err := rc.Roles.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role detail", role)
}

// ReplaceRole overwrites the whole role document. Tokens issued before the
// change keep the old permissions until they expire.
func (rc *RoleController) ReplaceRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body services.RoleInput
	if !bindJSON(c, &body) {
		return
	}
	role, err := rc.Roles.Replace(c.Request.Context(), id, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role replaced", role)
}

// PatchRole
func (rc *RoleController) PatchRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body services.RolePatch
	if !bindJSON(c, &body) {
		return
	}
	role, err := rc.Roles.Patch(c.Request.Context(), id, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role updated", role)
}

// DeleteRole
func (rc *RoleController) DeleteRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := rc.Roles.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
