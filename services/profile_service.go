package services

import (
	"context"
	"strings"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmployerProfileService manages employer profiles. Each user owns at most
// one; only the owner may change or remove it.
type EmployerProfileService struct {
	db *gorm.DB
}

func NewEmployerProfileService(db *gorm.DB) *EmployerProfileService {
	return &EmployerProfileService{db: db}
}

type EmployerProfileInput struct {
	Designation *string `json:"designation"`
	CompanyID   *uint   `json:"company_id"`
}

// requireOwnCompany checks that a profile links only to a company the actor
// owns.
func requireOwnCompany(ctx context.Context, db *gorm.DB, actor authz.Identity, companyID uint) error {
	var company models.Company
	if err := db.WithContext(ctx).Select("id", "created_by").First(&company, companyID).Error; err != nil {
		return lookupError(err, "company not found")
	}
	return authz.RequireOwner(actor, company.CreatedBy, "link", "companies")
}

func (s *EmployerProfileService) Create(ctx context.Context, actor authz.Identity, in EmployerProfileInput) (*models.EmployerProfile, error) {
	profile := models.EmployerProfile{
		UserID:             actor.UserID,
		VerificationStatus: models.CompanyVerificationPending,
	}
	if in.Designation != nil {
		profile.Designation = strings.TrimSpace(*in.Designation)
	}
	if in.CompanyID != nil {
		if err := requireOwnCompany(ctx, s.db, actor, *in.CompanyID); err != nil {
			return nil, err
		}
		profile.CompanyID = in.CompanyID
	}

	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("profile already exists for this user")
		}
		return nil, utils.Internal("failed to create employer profile", err)
	}
	return &profile, nil
}

func (s *EmployerProfileService) Get(ctx context.Context, id uint) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	if err := s.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, lookupError(err, "employer profile not found")
	}
	return &profile, nil
}

func (s *EmployerProfileService) Mine(ctx context.Context, actor authz.Identity) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", actor.UserID).First(&profile).Error; err != nil {
		return nil, lookupError(err, "you have no employer profile yet")
	}
	return &profile, nil
}

// UpdateMine updates the actor's profile, creating it when missing.
func (s *EmployerProfileService) UpdateMine(ctx context.Context, actor authz.Identity, in EmployerProfileInput) (*models.EmployerProfile, error) {
	profile, err := s.Mine(ctx, actor)
	if utils.IsKind(err, utils.KindNotFound) {
		return s.Create(ctx, actor, in)
	}
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, profile, in)
}

func (s *EmployerProfileService) Update(ctx context.Context, actor authz.Identity, id uint, in EmployerProfileInput) (*models.EmployerProfile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actor, profile.UserID, "update", "profile"); err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, profile, in)
}

func (s *EmployerProfileService) apply(ctx context.Context, actor authz.Identity, profile *models.EmployerProfile, in EmployerProfileInput) (*models.EmployerProfile, error) {
	updates := map[string]interface{}{}
	if in.Designation != nil {
		updates["designation"] = strings.TrimSpace(*in.Designation)
	}
	if in.CompanyID != nil {
		if err := requireOwnCompany(ctx, s.db, actor, *in.CompanyID); err != nil {
			return nil, err
		}
		updates["company_id"] = *in.CompanyID
	}
	if len(updates) == 0 {
		return profile, nil
	}
	if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
		return nil, utils.Internal("failed to update employer profile", err)
	}
	return s.Get(ctx, profile.ID)
}

func (s *EmployerProfileService) Delete(ctx context.Context, actor authz.Identity, id uint) error {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(actor, profile.UserID, "delete", "profile"); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.EmployerProfile{}, profile.ID).Error; err != nil {
		return utils.Internal("failed to delete employer profile", err)
	}
	return nil
}

// SeekerProfileService manages job seeker profiles with the same ownership
// rules as employer profiles.
type SeekerProfileService struct {
	db *gorm.DB
}

func NewSeekerProfileService(db *gorm.DB) *SeekerProfileService {
	return &SeekerProfileService{db: db}
}

type SeekerProfileInput struct {
	Education         *[]models.EducationItem  `json:"education"`
	Skills            *[]string                `json:"skills"`
	Experience        *[]models.ExperienceItem `json:"experience"`
	Resume            *string                  `json:"resume"`
	ExpectedSalary    *float64                 `json:"expected_salary"`
	PreferredLocation *string                  `json:"preferred_location"`
	PortfolioLinks    *[]string                `json:"portfolio_links"`
}

func (in SeekerProfileInput) validate() error {
	if in.ExpectedSalary != nil && *in.ExpectedSalary < 0 {
		return utils.BadRequest("expected_salary must not be negative")
	}
	if in.Education != nil {
		for i, item := range *in.Education {
			if strings.TrimSpace(item.Institution) == "" || strings.TrimSpace(item.Degree) == "" {
				return utils.BadRequest("education[%d] needs institution and degree", i)
			}
		}
	}
	if in.Experience != nil {
		for i, item := range *in.Experience {
			if strings.TrimSpace(item.Company) == "" || strings.TrimSpace(item.Title) == "" {
				return utils.BadRequest("experience[%d] needs company and title", i)
			}
		}
	}
	return nil
}

// columns maps the fields that are present to their columns.
func (in SeekerProfileInput) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if in.Education != nil {
		updates["education"] = datatypes.NewJSONSlice(*in.Education)
	}
	if in.Skills != nil {
		updates["skills"] = datatypes.NewJSONSlice(normalizeSkills(*in.Skills))
	}
	if in.Experience != nil {
		updates["experience"] = datatypes.NewJSONSlice(*in.Experience)
	}
	if in.Resume != nil {
		updates["resume"] = strings.TrimSpace(*in.Resume)
	}
	if in.ExpectedSalary != nil {
		updates["expected_salary"] = *in.ExpectedSalary
	}
	if in.PreferredLocation != nil {
		updates["preferred_location"] = strings.TrimSpace(*in.PreferredLocation)
	}
	if in.PortfolioLinks != nil {
		updates["portfolio_links"] = datatypes.NewJSONSlice(*in.PortfolioLinks)
	}
	return updates
}

func (s *SeekerProfileService) Create(ctx context.Context, actor authz.Identity, in SeekerProfileInput) (*models.SeekerProfile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	profile := models.SeekerProfile{UserID: actor.UserID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		if updates := in.columns(); len(updates) > 0 {
			return tx.Model(&profile).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("profile already exists for this user")
		}
		return nil, utils.Internal("failed to create seeker profile", err)
	}
	return s.Get(ctx, profile.ID)
}

func (s *SeekerProfileService) Get(ctx context.Context, id uint) (*models.SeekerProfile, error) {
	var profile models.SeekerProfile
	if err := s.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, lookupError(err, "seeker profile not found")
	}
	return &profile, nil
}

func (s *SeekerProfileService) Mine(ctx context.Context, actor authz.Identity) (*models.SeekerProfile, error) {
	var profile models.SeekerProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", actor.UserID).First(&profile).Error; err != nil {
		return nil, lookupError(err, "you have no seeker profile yet")
	}
	return &profile, nil
}

// UpdateMine updates the actor's profile, creating it when missing.
func (s *SeekerProfileService) UpdateMine(ctx context.Context, actor authz.Identity, in SeekerProfileInput) (*models.SeekerProfile, error) {
	profile, err := s.Mine(ctx, actor)
	if utils.IsKind(err, utils.KindNotFound) {
		return s.Create(ctx, actor, in)
	}
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, profile, in)
}

func (s *SeekerProfileService) Update(ctx context.Context, actor authz.Identity, id uint, in SeekerProfileInput) (*models.SeekerProfile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actor, profile.UserID, "update", "profile"); err != nil {
		return nil, err
	}
	return s.apply(ctx, profile, in)
}

func (s *SeekerProfileService) apply(ctx context.Context, profile *models.SeekerProfile, in SeekerProfileInput) (*models.SeekerProfile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	updates := in.columns()
	if len(updates) == 0 {
		return profile, nil
	}
	if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
		return nil, utils.Internal("failed to update seeker profile", err)
	}
	return s.Get(ctx, profile.ID)
}

func (s *SeekerProfileService) Delete(ctx context.Context, actor authz.Identity, id uint) error {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(actor, profile.UserID, "delete", "profile"); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.SeekerProfile{}, profile.ID).Error; err != nil {
		return utils.Internal("failed to delete seeker profile", err)
	}
	return nil
}
