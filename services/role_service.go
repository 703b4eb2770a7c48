package services

import (
	"context"
	"sort"
	"strings"

	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleService manages roles and their permission matrices. Changing a role
// does not touch tokens that were already issued.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

type RoleInput struct {
	Name        string                  `json:"name"`
	Permissions models.PermissionMatrix `json:"permissions"`
}

type RolePatch struct {
	Name        *string                 `json:"name"`
	Permissions models.PermissionMatrix `json:"permissions"`
}

func validateMatrix(m models.PermissionMatrix) error {
	if unknown := m.UnknownModules(); len(unknown) > 0 {
		sort.Strings(unknown)
		return utils.BadRequest("unknown permission modules: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (s *RoleService) Create(ctx context.Context, in RoleInput) (*models.Role, error) {
	name := models.NormalizeRoleName(in.Name)
	if name == "" {
		return nil, utils.BadRequest("role name is required")
	}
	if err := validateMatrix(in.Permissions); err != nil {
		return nil, err
	}
	if in.Permissions == nil {
		in.Permissions = models.PermissionMatrix{}
	}

	if _, err := s.GetByName(ctx, name); err == nil {
		return nil, utils.Conflict("role %q already exists", name)
	} else if !utils.IsKind(err, utils.KindNotFound) {
		return nil, err
	}

	role := models.NewRole(name, in.Permissions)
	if err := s.db.WithContext(ctx).Create(&role).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("role %q already exists", name)
		}
		return nil, utils.Internal("failed to create role", err)
	}
	return &role, nil
}

func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	roles := []models.Role{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, utils.Internal("failed to list roles", err)
	}
	return roles, nil
}

func (s *RoleService) Get(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, lookupError(err, "role not found")
	}
	return &role, nil
}

func (s *RoleService) GetByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.db.WithContext(ctx).Where("name = ?", models.NormalizeRoleName(name)).First(&role).Error
	if err != nil {
		return nil, lookupError(err, "role %q not found", name)
	}
	return &role, nil
}

// Replace overwrites both the name and the whole permission matrix.
func (s *RoleService) Replace(ctx context.Context, id uint, in RoleInput) (*models.Role, error) {
	name := models.NormalizeRoleName(in.Name)
	if name == "" {
		return nil, utils.BadRequest("role name is required")
	}
	if in.Permissions == nil {
		return nil, utils.BadRequest("permissions are required")
	}
	return s.save(ctx, id, &name, in.Permissions)
}

// Patch changes only the fields that are present.
func (s *RoleService) Patch(ctx context.Context, id uint, in RolePatch) (*models.Role, error) {
	var name *string
	if in.Name != nil {
		normalized := models.NormalizeRoleName(*in.Name)
		if normalized == "" {
			return nil, utils.BadRequest("role name must not be empty")
		}
		name = &normalized
	}
	return s.save(ctx, id, name, in.Permissions)
}

func (s *RoleService) save(ctx context.Context, id uint, name *string, matrix models.PermissionMatrix) (*models.Role, error) {
	if err := validateMatrix(matrix); err != nil {
		return nil, err
	}
	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil && *name != role.Name {
		if other, err := s.GetByName(ctx, *name); err == nil && other.ID != role.ID {
			return nil, utils.Conflict("role %q already exists", *name)
		}
		updates["name"] = *name
	}
	if matrix != nil {
		updates["permissions"] = datatypes.NewJSONType(matrix)
	}
	if len(updates) == 0 {
		return role, nil
	}

	if err := s.db.WithContext(ctx).Model(role).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("role %q already exists", *name)
		}
		return nil, utils.Internal("failed to update role", err)
	}
	return s.Get(ctx, id)
}

// Delete refuses to remove a role that is still assigned to users.
func (s *RoleService) Delete(ctx context.Context, id uint) error {
	role, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	var assigned int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role_id = ?", role.ID).Count(&assigned).Error; err != nil {
		return utils.Internal("failed to check role usage", err)
	}
	if assigned > 0 {
		return utils.Conflict("role %q is assigned to %d users", role.Name, assigned)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Role{}, role.ID).Error; err != nil {
		return utils.Internal("failed to delete role", err)
	}
	return nil
}
