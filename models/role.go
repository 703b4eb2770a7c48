package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Default role names seeded at startup.
const (
	RoleAdmin     = "admin"
	RoleEmployer  = "employer"
	RoleJobSeeker = "job_seeker"
)

type Role struct {
	ID          uint                                 `gorm:"primaryKey" json:"id"`
	Name        string                               `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Permissions datatypes.JSONType[PermissionMatrix] `gorm:"not null" json:"permissions"`
	CreatedAt   time.Time                            `json:"created_at"`
	UpdatedAt   time.Time                            `json:"updated_at"`
}

// Matrix returns the role's permissions, never nil.
func (r Role) Matrix() PermissionMatrix {
	m := r.Permissions.Data()
	if m == nil {
		return PermissionMatrix{}
	}
	return m
}

func NewRole(name string, matrix PermissionMatrix) Role {
	return Role{
		Name:        NormalizeRoleName(name),
		Permissions: datatypes.NewJSONType(matrix),
	}
}

// NormalizeRoleName trims and lowercases a role name; names are unique in
// this form.
func NormalizeRoleName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
