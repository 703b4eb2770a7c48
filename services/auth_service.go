package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
)

// Roles a visitor may pick when registering.
var selfServiceRoles = map[string]bool{
	models.RoleJobSeeker: true,
	models.RoleEmployer:  true,
}

type AuthService struct {
	users  *UserService
	tokens *utils.TokenIssuer
}

func NewAuthService(users *UserService, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginInput struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a job seeker or employer account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role := models.NormalizeRoleName(in.Role)
	if role == "" {
		role = models.RoleJobSeeker
	}
	if !selfServiceRoles[role] {
		return nil, utils.BadRequest("role must be %s or %s", models.RoleJobSeeker, models.RoleEmployer)
	}
	return s.users.Create(ctx, CreateUserInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
	})
}

// Login checks the credentials and issues a token carrying the role's
// current permissions.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	login := strings.TrimSpace(in.Login)
	if login == "" {
		login = strings.TrimSpace(in.Username)
	}
	if login == "" {
		login = strings.TrimSpace(in.Email)
	}
	if login == "" || in.Password == "" {
		return nil, utils.BadRequest("login and password are required")
	}

	user, err := s.users.CheckPassword(ctx, login, in.Password)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, utils.Forbidden(utils.DenialBanned, "account is banned")
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role.Name}).Info("user logged in")
	return &LoginResult{Token: token, User: user}, nil
}

// IssueFor issues a token for an existing user without a password check.
func (s *AuthService) IssueFor(ctx context.Context, userID uint) (string, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (string, error) {
	if user.Role == nil {
		return "", utils.Internal("user has no role loaded", nil)
	}
	token, err := s.tokens.Issue(*user, *user.Role)
	if err != nil {
		return "", utils.Internal("failed to sign token", err)
	}
	return token, nil
}

// Me returns the live account of the actor.
func (s *AuthService) Me(ctx context.Context, actor authz.Identity) (*models.User, error) {
	return s.users.Get(ctx, actor.UserID)
}
