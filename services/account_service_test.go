package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

func newAccountServices(db *gorm.DB) (*RoleService, *UserService, *AuthService) {
	roles := NewRoleService(db)
	users := NewUserService(db, roles, inlineDispatcher(db))
	return roles, users, NewAuthService(users, utils.NewTokenIssuer("test-secret", time.Hour))
}

func TestRoleLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	roles, _, _ := newAccountServices(db)

	role, err := roles.Create(ctx, RoleInput{
		Name:        " Recruiter ",
		Permissions: models.PermissionMatrix{models.ModuleJobs: {View: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "recruiter", role.Name)

	_, err = roles.Create(ctx, RoleInput{Name: "RECRUITER"})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	_, err = roles.Create(ctx, RoleInput{Name: "odd", Permissions: models.PermissionMatrix{"payroll": {View: true}}})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	patched, err := roles.Patch(ctx, role.ID, RolePatch{
		Permissions: models.PermissionMatrix{models.ModuleJobs: {View: true, Create: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "recruiter", patched.Name)
	assert.True(t, patched.Matrix().Allows(models.ModuleJobs, models.ActionCreate))

	_, err = roles.Replace(ctx, role.ID, RoleInput{Name: "recruiter"})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest), "replace needs a full matrix")

	_, err = roles.Patch(ctx, role.ID, RolePatch{Name: ptr(models.RoleAdmin)})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	replaced, err := roles.Replace(ctx, role.ID, RoleInput{Name: "talent", Permissions: models.PermissionMatrix{}})
	require.NoError(t, err)
	assert.Equal(t, "talent", replaced.Name)
	assert.False(t, replaced.Matrix().Allows(models.ModuleJobs, models.ActionView))

	require.NoError(t, roles.Delete(ctx, role.ID))
	_, err = roles.Get(ctx, role.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestRoleInUseCannotBeDeleted(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	roles, _, _ := newAccountServices(db)
	createUser(t, db, "alice", models.RoleJobSeeker)

	seekerRole, err := roles.GetByName(ctx, models.RoleJobSeeker)
	require.NoError(t, err)
	assert.True(t, utils.IsKind(roles.Delete(ctx, seekerRole.ID), utils.KindConflict))
}

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, users, _ := newAccountServices(db)

	user, err := users.Create(ctx, CreateUserInput{
		Username: "alice",
		Email:    " Alice@Example.COM ",
		Password: "secret123",
		Role:     models.RoleJobSeeker,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)
	require.NotNil(t, user.Role)
	assert.Equal(t, models.RoleJobSeeker, user.Role.Name)

	cases := map[string]CreateUserInput{
		"duplicate username": {Username: "alice", Email: "other@example.com", Password: "secret123", Role: models.RoleJobSeeker},
		"duplicate email":    {Username: "other", Email: "ALICE@example.com", Password: "secret123", Role: models.RoleJobSeeker},
	}
	for name, in := range cases {
		_, err := users.Create(ctx, in)
		assert.True(t, utils.IsKind(err, utils.KindConflict), name)
	}

	invalid := map[string]CreateUserInput{
		"short password": {Username: "bob", Email: "bob@example.com", Password: "123", Role: models.RoleJobSeeker},
		"bad email":      {Username: "bob", Email: "bob", Password: "secret123", Role: models.RoleJobSeeker},
		"unknown role":   {Username: "bob", Email: "bob@example.com", Password: "secret123", Role: "wizard"},
		"no username":    {Email: "bob@example.com", Password: "secret123", Role: models.RoleJobSeeker},
	}
	for name, in := range invalid {
		_, err := users.Create(ctx, in)
		assert.True(t, utils.IsKind(err, utils.KindBadRequest), name)
	}
}

func TestUpdateAndDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	roles, users, _ := newAccountServices(db)
	alice := createUser(t, db, "alice", models.RoleJobSeeker)
	createUser(t, db, "bob", models.RoleJobSeeker)

	employer, err := roles.GetByName(ctx, models.RoleEmployer)
	require.NoError(t, err)

	updated, err := users.Update(ctx, alice.UserID, UpdateUserInput{RoleID: &employer.ID})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, updated.Role.Name)

	_, err = users.Update(ctx, alice.UserID, UpdateUserInput{Username: ptr("bob")})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	_, err = users.Update(ctx, alice.UserID, UpdateUserInput{RoleID: ptr(uint(999))})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	require.NoError(t, users.Delete(ctx, alice.UserID))
	assert.True(t, utils.IsKind(users.Delete(ctx, alice.UserID), utils.KindNotFound))
}

func TestBanning(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, users, _ := newAccountServices(db)
	admin := createUser(t, db, "root", models.RoleAdmin)
	alice := createUser(t, db, "alice", models.RoleJobSeeker)

	banned, err := users.IsBanned(ctx, alice.UserID)
	require.NoError(t, err)
	assert.False(t, banned)

	_, err = users.SetBanned(ctx, admin, alice.UserID, true)
	require.NoError(t, err)
	banned, err = users.IsBanned(ctx, alice.UserID)
	require.NoError(t, err)
	assert.True(t, banned)

	_, err = users.SetBanned(ctx, admin, admin.UserID, true)
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	banned, err = users.IsBanned(ctx, 9999)
	require.NoError(t, err)
	assert.True(t, banned, "a deleted account counts as banned")

	audit := auditFor(t, db, admin.UserID)
	require.Len(t, audit, 1)
	assert.Equal(t, AuditBan, audit[0].Action)
	assert.Equal(t, ResourceUser, audit[0].Resource)
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, users, auth := newAccountServices(db)

	user, err := auth.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleJobSeeker, user.Role.Name)

	_, err = auth.Register(ctx, RegisterInput{Username: "mallory", Email: "m@example.com", Password: "secret123", Role: models.RoleAdmin})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	result, err := auth.Login(ctx, LoginInput{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	claims, err := utils.NewTokenIssuer("test-secret", time.Hour).Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.Permissions.Allows(models.ModuleApplications, models.ActionCreate))
	assert.False(t, claims.Permissions.Allows(models.ModuleJobs, models.ActionCreate))

	_, err = auth.Login(ctx, LoginInput{Username: "alice", Password: "wrong-password"})
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
	_, err = auth.Login(ctx, LoginInput{Username: "nobody", Password: "secret123"})
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
	_, err = auth.Login(ctx, LoginInput{Password: "secret123"})
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))

	admin := createUser(t, db, "root", models.RoleAdmin)
	_, err = users.SetBanned(ctx, admin, user.ID, true)
	require.NoError(t, err)
	_, err = auth.Login(ctx, LoginInput{Login: "alice", Password: "secret123"})
	assert.Equal(t, utils.DenialBanned, utils.ReasonOf(err))

	token, err := auth.IssueFor(ctx, admin.UserID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	me, err := auth.Me(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "root", me.Username)
}
