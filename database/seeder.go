package database

import (
	"context"
	"errors"

	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

func all(view, create, edit, del bool) models.ModulePermissions {
	return models.ModulePermissions{View: view, Create: create, Edit: edit, Delete: del}
}

// DefaultRoles returns the roles every installation starts with.
func DefaultRoles() []models.Role {
	none := all(false, false, false, false)
	return []models.Role{
		models.NewRole(models.RoleAdmin, models.FullAccess()),
		models.NewRole(models.RoleJobSeeker, models.PermissionMatrix{
			models.ModuleUsers:        none,
			models.ModuleRoles:        none,
			models.ModuleJobs:         all(true, false, false, false),
			models.ModuleApplications: all(true, true, false, true),
			models.ModuleCompanies:    all(true, false, false, false),
			models.ModuleProfiles:     all(true, true, true, false),
			models.ModuleAdmin:        none,
		}),
		models.NewRole(models.RoleEmployer, models.PermissionMatrix{
			models.ModuleUsers:        none,
			models.ModuleRoles:        none,
			models.ModuleJobs:         all(true, true, true, true),
			models.ModuleApplications: all(true, false, true, true),
			models.ModuleCompanies:    all(true, true, true, true),
			models.ModuleProfiles:     all(true, true, true, false),
			models.ModuleAdmin:        none,
		}),
	}
}

// SeedRoles creates the default roles that don't exist yet. Existing roles
// are left as they are, so edits made by administrators survive restarts.
func SeedRoles(ctx context.Context, db *gorm.DB) (int, error) {
	created := 0
	for _, role := range DefaultRoles() {
		var existing models.Role
		err := db.WithContext(ctx).Where("name = ?", role.Name).First(&existing).Error
		if err == nil {
			utils.InfoLogger.Printf("Role %q already exists, skipping", role.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		if err := db.WithContext(ctx).Create(&role).Error; err != nil {
			return created, err
		}
		created++
		utils.InfoLogger.Printf("Role %q created", role.Name)
	}
	return created, nil
}
