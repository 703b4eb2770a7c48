package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type EmployerProfileController struct {
	Profiles *services.EmployerProfileService
}

func NewEmployerProfileController(profiles *services.EmployerProfileService) *EmployerProfileController {
	return &EmployerProfileController{Profiles: profiles}
}

// CreateProfile
func (pc *EmployerProfileController) CreateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.EmployerProfileInput
	if !bindOptionalJSON(c, &body) {
		return
	}
	profile, err := pc.Profiles.Create(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Employer profile created", profile)
}

// GetMyProfile
func (pc *EmployerProfileController) GetMyProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	profile, err := pc.Profiles.Mine(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My employer profile", profile)
}

// GetProfileByID
func (pc *EmployerProfileController) GetProfileByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := pc.Profiles.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employer profile", profile)
}

// UpdateMyProfile creates the profile when the caller has none.
func (pc *EmployerProfileController) UpdateMyProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.EmployerProfileInput
	if !bindJSON(c, &body) {
		return
	}
	profile, err := pc.Profiles.UpdateMine(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employer profile updated", profile)
}

// UpdateProfile
func (pc *EmployerProfileController) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body services.EmployerProfileInput
	if !bindJSON(c, &body) {
		return
	}
	profile, err := pc.Profiles.Update(c.Request.Context(), actor, id, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employer profile updated", profile)
}

// DeleteProfile
func (pc *EmployerProfileController) DeleteProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := pc.Profiles.Delete(c.Request.Context(), actor, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type SeekerProfileController struct {
	Profiles *services.SeekerProfileService
}

func NewSeekerProfileController(profiles *services.SeekerProfileService) *SeekerProfileController {
	return &SeekerProfileController{Profiles: profiles}
}

// CreateProfile
func (pc *SeekerProfileController) CreateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.SeekerProfileInput
	if !bindOptionalJSON(c, &body) {
		return
	}
	profile, err := pc.Profiles.Create(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Seeker profile created", profile)
}

// GetMyProfile
func (pc *SeekerProfileController) GetMyProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	profile, err := pc.Profiles.Mine(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My seeker profile", profile)
}

// GetProfileByID
func (pc *SeekerProfileController) GetProfileByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := pc.Profiles.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Seeker profile", profile)
}

// UpdateMyProfile creates the profile when the caller has none.
func (pc *SeekerProfileController) UpdateMyProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.SeekerProfileInput
	if !bindJSON(c, &body) {
		return
	}
	profile, err := pc.Profiles.UpdateMine(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Seeker profile updated", profile)
}

// UpdateProfile
func (pc *SeekerProfileController) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body services.SeekerProfileInput
	if !bindJSON(c, &body) {
		return
	}
	profile, err := pc.Profiles.Update(c.Request.Context(), actor, id, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Seeker profile updated", profile)
}

// DeleteProfile
func (pc *SeekerProfileController) DeleteProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := pc.Profiles.Delete(c.Request.Context(), actor, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
