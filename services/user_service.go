package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// UserService manages accounts. It is also the ban checker used by the
// authorization pipeline.
type UserService struct {
	db         *gorm.DB
	roles      *RoleService
	dispatcher *Dispatcher
}

func NewUserService(db *gorm.DB, roles *RoleService, dispatcher *Dispatcher) *UserService {
	return &UserService{db: db, roles: roles, dispatcher: dispatcher}
}

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	RoleID   uint   `json:"role_id"`
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RoleID   *uint   `json:"role_id"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil || !strings.Contains(email, "@") {
		return utils.BadRequest("invalid email address")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", utils.BadRequest("password must be at least %d characters", minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.Internal("failed to hash password", err)
	}
	return string(hash), nil
}

func (s *UserService) resolveRole(ctx context.Context, name string, id uint) (*models.Role, error) {
	if id != 0 {
		role, err := s.roles.Get(ctx, id)
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.BadRequest("role %d does not exist", id)
		}
		return role, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, utils.BadRequest("role is required")
	}
	role, err := s.roles.GetByName(ctx, name)
	if utils.IsKind(err, utils.KindNotFound) {
		return nil, utils.BadRequest("role %q does not exist", name)
	}
	return role, err
}

// Create registers a user with the given role.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" {
		return nil, utils.BadRequest("username is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role, err := s.resolveRole(ctx, in.Role, in.RoleID)
	if err != nil {
		return nil, err
	}

	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).Count(&taken).Error; err != nil {
		return nil, utils.Internal("failed to check existing users", err)
	}
	if taken > 0 {
		return nil, utils.Conflict("username or email already in use")
	}

	user := models.User{Username: username, Email: email, Password: hash, RoleID: role.ID}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("username or email already in use")
		}
		return nil, utils.Internal("failed to create user", err)
	}
	user.Role = role
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Preload("Role").Order("id ASC").Find(&users).Error; err != nil {
		return nil, utils.Internal("failed to list users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Role").First(&user, id).Error; err != nil {
		return nil, lookupError(err, "user not found")
	}
	return &user, nil
}

// FindByLogin looks a user up by username or email.
func (s *UserService) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	login = strings.TrimSpace(login)
	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").
		Where("username = ? OR email = ?", login, normalizeEmail(login)).
		First(&user).Error
	if err != nil {
		return nil, lookupError(err, "user not found")
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, utils.BadRequest("username must not be empty")
		}
		updates["username"] = username
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		updates["email"] = email
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}
	if in.RoleID != nil {
		role, err := s.resolveRole(ctx, "", *in.RoleID)
		if err != nil {
			return nil, err
		}
		updates["role_id"] = role.ID
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.User{ID: user.ID}).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("username or email already in use")
		}
		return nil, utils.Internal("failed to update user", err)
	}
	return s.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return utils.Internal("failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound("user not found")
	}
	return nil
}

// SetBanned bans or unbans a user. Banned users are refused on every
// authenticated request while ban enforcement is on.
func (s *UserService) SetBanned(ctx context.Context, actor authz.Identity, id uint, banned bool) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.UserID == user.ID && banned {
		return nil, utils.BadRequest("you cannot ban yourself")
	}
	if err := s.db.WithContext(ctx).Model(&models.User{ID: user.ID}).Update("is_banned", banned).Error; err != nil {
		return nil, utils.Internal("failed to update user", err)
	}
	user.IsBanned = banned

	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   AuditBan,
		Resource: ResourceUser,
		Metadata: map[string]interface{}{"user_id": user.ID, "banned": banned},
	})
	return user, nil
}

// IsBanned reports the live ban flag. A user that no longer exists counts as
// banned.
func (s *UserService) IsBanned(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "is_banned").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return user.IsBanned, nil
}

// CheckPassword returns the user when password matches.
func (s *UserService) CheckPassword(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.FindByLogin(ctx, login)
	if err != nil {
		if utils.IsKind(err, utils.KindNotFound) {
			return nil, utils.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.Unauthorized("invalid credentials")
	}
	return user, nil
}

var _ authz.BanChecker = (*UserService)(nil)
