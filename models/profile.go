package models

import (
	"time"

	"gorm.io/datatypes"
)

// EmployerProfile is the recruiter-facing profile of an employer account.
// A user has at most one.
type EmployerProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Designation        string    `gorm:"type:varchar(255)" json:"designation"`
	CompanyID          *uint     `gorm:"index" json:"company_id,omitempty"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:'pending'" json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type EducationItem struct {
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type ExperienceItem struct {
	Company     string     `json:"company"`
	Title       string     `json:"title"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
}

// SeekerProfile is a job seeker's CV. A user has at most one.
type SeekerProfile struct {
	ID                uint                                `gorm:"primaryKey" json:"id"`
	UserID            uint                                `gorm:"not null;uniqueIndex" json:"user_id"`
	Education         datatypes.JSONSlice[EducationItem]  `json:"education"`
	Skills            datatypes.JSONSlice[string]         `json:"skills"`
	Experience        datatypes.JSONSlice[ExperienceItem] `json:"experience"`
	Resume            string                              `gorm:"type:varchar(500)" json:"resume"`
	ExpectedSalary    *float64                            `json:"expected_salary,omitempty"`
	PreferredLocation string                              `gorm:"type:varchar(255)" json:"preferred_location"`
	PortfolioLinks    datatypes.JSONSlice[string]         `json:"portfolio_links"`
	CreatedAt         time.Time                           `json:"created_at"`
	UpdatedAt         time.Time                           `json:"updated_at"`
}
