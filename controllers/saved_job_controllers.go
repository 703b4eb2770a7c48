package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type SavedJobController struct {
	SavedJobs *services.SavedJobService
}

func NewSavedJobController(savedJobs *services.SavedJobService) *SavedJobController {
	return &SavedJobController{SavedJobs: savedJobs}
}

// SaveJob
func (sc *SavedJobController) SaveJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	saved, err := sc.SavedJobs.Save(c.Request.Context(), actor, jobID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Job saved", saved)
}

// GetSavedJobs
func (sc *SavedJobController) GetSavedJobs(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	saved, err := sc.SavedJobs.List(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Saved jobs", saved)
}

// CheckSavedJob
func (sc *SavedJobController) CheckSavedJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	saved, err := sc.SavedJobs.IsSaved(c.Request.Context(), actor, jobID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Saved job status", gin.H{"saved": saved})
}

// RemoveSavedJob
func (sc *SavedJobController) RemoveSavedJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "jobId")
	if !ok {
		return
	}
	if err := sc.SavedJobs.Remove(c.Request.Context(), actor, jobID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
