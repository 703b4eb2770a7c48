package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

// AdminController serves moderation endpoints. Access is gated on the admin
// module of the permission matrix, not on resource ownership.
type AdminController struct {
	Jobs      *services.JobService
	Companies *services.CompanyService
	Users     *services.UserService
}

func NewAdminController(jobs *services.JobService, companies *services.CompanyService, users *services.UserService) *AdminController {
	return &AdminController{Jobs: jobs, Companies: companies, Users: users}
}

// GetPendingJobs
func (ac *AdminController) GetPendingJobs(c *gin.Context) {
	jobs, err := ac.Jobs.ListPendingModeration(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Jobs pending approval", jobs)
}

// GetPendingCompanies
func (ac *AdminController) GetPendingCompanies(c *gin.Context) {
	companies, err := ac.Companies.ListPendingVerification(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Companies pending verification", companies)
}

// ModerateJob sets the moderation status; an empty body approves.
func (ac *AdminController) ModerateJob(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status models.ModerationStatus `json:"status"`
	}
	if !bindOptionalJSON(c, &body) {
		return
	}
	job, err := ac.Jobs.Moderate(c.Request.Context(), actor, id, body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Job moderated", job)
}

// VerifyCompany
func (ac *AdminController) VerifyCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !bindOptionalJSON(c, &body) {
		return
	}
	company, err := ac.Companies.Verify(c.Request.Context(), actor, id, body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Company verification updated", company)
}

// BanUser bans a user, or unbans with {"banned": false}.
func (ac *AdminController) BanUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body := struct {
		Banned *bool `json:"banned"`
	}{}
	if !bindOptionalJSON(c, &body) {
		return
	}
	banned := true
	if body.Banned != nil {
		banned = *body.Banned
	}
	user, err := ac.Users.SetBanned(c.Request.Context(), actor, id, banned)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User ban status updated", user)
}
