package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type ApplicationController struct {
	Applications *services.ApplicationService
}

func NewApplicationController(applications *services.ApplicationService) *ApplicationController {
	return &ApplicationController{Applications: applications}
}

// CreateApplication
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.CreateApplicationInput
	if !bindJSON(c, &body) {
		return
	}
	application, err := ac.Applications.Create(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Application submitted", application)
}

// GetMyApplications
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	applications, err := ac.Applications.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My applications", applications)
}

// GetApplicationsByJob
func (ac *ApplicationController) GetApplicationsByJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	applications, err := ac.Applications.ListByJob(c.Request.Context(), actor, jobID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Job applications", applications)
}

// GetApplicationByID
func (ac *ApplicationController) GetApplicationByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	application, err := ac.Applications.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Application detail", application)
}

// UpdateApplicationStatus
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	application, err := ac.Applications.UpdateStatus(c.Request.Context(), actor, id, body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Application status updated", application)
}

// DeleteApplication
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ac.Applications.Delete(c.Request.Context(), actor, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
