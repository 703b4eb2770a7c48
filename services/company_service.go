package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

type CompanyService struct {
	db         *gorm.DB
	dispatcher *Dispatcher
}

func NewCompanyService(db *gorm.DB, dispatcher *Dispatcher) *CompanyService {
	return &CompanyService{db: db, dispatcher: dispatcher}
}

type CompanyInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Location    string `json:"location"`
	Logo        string `json:"logo"`
}

type CompanyPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Industry    *string `json:"industry"`
	CompanySize *string `json:"company_size"`
	Location    *string `json:"location"`
	Logo        *string `json:"logo"`
}

func (s *CompanyService) Create(ctx context.Context, actor authz.Identity, in CompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.BadRequest("company name is required")
	}
	company := models.Company{
		Name:               name,
		Description:        in.Description,
		Website:            in.Website,
		Industry:           in.Industry,
		CompanySize:        in.CompanySize,
		Location:           in.Location,
		Logo:               in.Logo,
		CreatedBy:          actor.UserID,
		VerificationStatus: models.CompanyVerificationPending,
	}
	if err := s.db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, utils.Internal("failed to create company", err)
	}
	return &company, nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, utils.Internal("failed to list companies", err)
	}
	return companies, nil
}

func (s *CompanyService) ListMine(ctx context.Context, actor authz.Identity) ([]models.Company, error) {
	companies := []models.Company{}
	err := s.db.WithContext(ctx).Where("created_by = ?", actor.UserID).Order("created_at DESC").Find(&companies).Error
	if err != nil {
		return nil, utils.Internal("failed to list companies", err)
	}
	return companies, nil
}

func (s *CompanyService) Get(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := s.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, lookupError(err, "company not found")
	}
	return &company, nil
}

func (s *CompanyService) Update(ctx context.Context, actor authz.Identity, id uint, in CompanyPatch) (*models.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actor, company.CreatedBy, "update", "companies"); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, utils.BadRequest("company name must not be empty")
		}
		updates["name"] = name
	}
	setIfPresent(updates, "description", in.Description)
	setIfPresent(updates, "website", in.Website)
	setIfPresent(updates, "industry", in.Industry)
	setIfPresent(updates, "company_size", in.CompanySize)
	setIfPresent(updates, "location", in.Location)
	setIfPresent(updates, "logo", in.Logo)
	if len(updates) == 0 {
		return company, nil
	}

	if err := s.db.WithContext(ctx).Model(company).Updates(updates).Error; err != nil {
		return nil, utils.Internal("failed to update company", err)
	}
	return s.Get(ctx, id)
}

func setIfPresent(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

// Delete removes a company the actor owns. Companies that still have jobs
// are kept.
func (s *CompanyService) Delete(ctx context.Context, actor authz.Identity, id uint) error {
	company, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(actor, company.CreatedBy, "delete", "companies"); err != nil {
		return err
	}
	var jobs int64
	if err := s.db.WithContext(ctx).Model(&models.Job{}).Where("company_id = ?", company.ID).Count(&jobs).Error; err != nil {
		return utils.Internal("failed to check company jobs", err)
	}
	if jobs > 0 {
		return utils.Conflict("company still has %d jobs", jobs)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Company{}, company.ID).Error; err != nil {
		return utils.Internal("failed to delete company", err)
	}
	return nil
}

func (s *CompanyService) ListPendingVerification(ctx context.Context) ([]models.Company, error) {
	companies := []models.Company{}
	err := s.db.WithContext(ctx).Where("verification_status = ?", models.CompanyVerificationPending).
		Order("created_at ASC").Find(&companies).Error
	if err != nil {
		return nil, utils.Internal("failed to list pending companies", err)
	}
	return companies, nil
}

// Verify records a moderator's verification decision. An empty status means
// verified.
func (s *CompanyService) Verify(ctx context.Context, actor authz.Identity, id uint, status string) (*models.Company, error) {
	switch status {
	case "":
		status = models.CompanyVerificationVerified
	case models.CompanyVerificationPending, models.CompanyVerificationVerified, models.CompanyVerificationRejected:
	default:
		return nil, utils.BadRequest("invalid verification status %q", status)
	}
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(company).Update("verification_status", status).Error; err != nil {
		return nil, utils.Internal("failed to verify company", err)
	}
	company.VerificationStatus = status

	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   AuditVerify,
		Resource: ResourceCompany,
		Metadata: map[string]interface{}{"company_id": company.ID, "verification_status": status},
	})
	return company, nil
}
