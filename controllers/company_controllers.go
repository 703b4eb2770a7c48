package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type CompanyController struct {
	Companies *services.CompanyService
}

func NewCompanyController(companies *services.CompanyService) *CompanyController {
	return &CompanyController{Companies: companies}
}

// CreateCompany
func (cc *CompanyController) CreateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var body services.CompanyInput
	if !bindJSON(c, &body) {
		return
	}
	company, err := cc.Companies.Create(c.Request.Context(), actor, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Company created", company)
}

// GetAllCompanies
func (cc *CompanyController) GetAllCompanies(c *gin.Context) {
	companies, err := cc.Companies.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All companies", companies)
}

// GetMyCompanies
func (cc *CompanyController) GetMyCompanies(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	companies, err := cc.Companies.ListMine(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My companies", companies)
}

// GetCompanyByID
func (cc *CompanyController) GetCompanyByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	company, err := cc.Companies.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Company detail", company)
}

// UpdateCompany
func (cc *CompanyController) UpdateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body services.CompanyPatch
	if !bindJSON(c, &body) {
		return
	}
	company, err := cc.Companies.Update(c.Request.Context(), actor, id, body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Company updated", company)
}

// DeleteCompany
func (cc *CompanyController) DeleteCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := cc.Companies.Delete(c.Request.Context(), actor, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
