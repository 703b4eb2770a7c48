package models

import "time"

// Company verification states
const (
	CompanyVerificationPending  = "pending"
	CompanyVerificationVerified = "verified"
	CompanyVerificationRejected = "rejected"
)

type Company struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255);not null" json:"name"`
	Description        string    `gorm:"type:text" json:"description"`
	Website            string    `gorm:"type:varchar(255)" json:"website"`
	Industry           string    `gorm:"type:varchar(100)" json:"industry"`
	CompanySize        string    `gorm:"type:varchar(50)" json:"company_size"`
	Location           string    `gorm:"type:varchar(255)" json:"location"`
	Logo               string    `gorm:"type:varchar(255)" json:"logo"`
	CreatedBy          uint      `gorm:"not null;index" json:"created_by"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:'pending'" json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
