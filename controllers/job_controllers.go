package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

const (
	jobsDefaultLimit = 10
	jobsMaxLimit     = 100
)

type JobController struct {
	Jobs *services.JobService
}

func NewJobController(jobs *services.JobService) *JobController {
	return &JobController{Jobs: jobs}
}

type expandedJobPage struct {
	Jobs  []services.JobView `json:"jobs"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// CreateJob
func (jc *JobController) CreateJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.CreateJobInput
	if !bindJSON(c, &body) {
		return
	}
	job, err := jc.Jobs.Create(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Job created", job)
}

// SearchJobs lists publicly visible jobs.
func (jc *JobController) SearchJobs(c *gin.Context) {
	page, err := utils.ParsePage(c, jobsDefaultLimit, jobsMaxLimit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	salaryMin, err := queryFloat(c, "salaryMin")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	salaryMax, err := queryFloat(c, "salaryMax")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := jc.Jobs.Search(c.Request.Context(), services.SearchJobsInput{
		Skills:          queryList(c, "skills"),
		Location:        c.Query("location"),
		SalaryMin:       salaryMin,
		SalaryMax:       salaryMax,
		ExperienceLevel: c.Query("experienceLevel"),
		EmploymentType:  models.EmploymentType(c.Query("employmentType")),
		Search:          c.Query("search"),
		Page:            page,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if !queryBool(c, "expand") {
		utils.RespondJSON(c, http.StatusOK, "Jobs", result)
		return
	}
	views, err := jc.Jobs.Expand(c.Request.Context(), result.Jobs)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Jobs", expandedJobPage{
		Jobs: views, Total: result.Total, Page: result.Page, Limit: result.Limit,
	})
}

// GetMyJobs
func (jc *JobController) GetMyJobs(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	jobs, err := jc.Jobs.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !queryBool(c, "expand") {
		utils.RespondJSON(c, http.StatusOK, "My jobs", jobs)
		return
	}
	views, err := jc.Jobs.Expand(c.Request.Context(), jobs)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My jobs", views)
}

// GetJobByID
func (jc *JobController) GetJobByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	job, err := jc.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !queryBool(c, "expand") {
		utils.RespondJSON(c, http.StatusOK, "Job detail", job)
		return
	}
	views, err := jc.Jobs.Expand(c.Request.Context(), []models.Job{*job})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Job detail", views[0])
}

// UpdateJob
func (jc *JobController) UpdateJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body services.UpdateJobInput
	if !bindJSON(c, &body) {
		return
	}
	job, err := jc.Jobs.Update(c.Request.Context(), actor, id, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Job updated", job)
}

// UpdateJobStatus
func (jc *JobController) UpdateJobStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status models.JobStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}
	job, err := jc.Jobs.UpdateStatus(c.Request.Context(), actor, id, body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Job status updated", job)
}

// DeleteJob
func (jc *JobController) DeleteJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := jc.Jobs.Delete(c.Request.Context(), actor, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
