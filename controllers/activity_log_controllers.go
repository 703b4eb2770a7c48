package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type ActivityLogController struct {
	Logs *services.ActivityLogService
}

func NewActivityLogController(logs *services.ActivityLogService) *ActivityLogController {
	return &ActivityLogController{Logs: logs}
}

// GetMyActivity
func (lc *ActivityLogController) GetMyActivity(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	page, err := utils.ParsePage(c, 20, 100)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	result, err := lc.Logs.ListMine(c.Request.Context(), actor, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My activity", result)
}
