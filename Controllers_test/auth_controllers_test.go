package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/config"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/services"
)

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret123")

	w = s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice", "email": "alice2@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "mallory", "email": "m@example.com", "password": "secret123", "role": models.RoleAdmin,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login services.LoginResult
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)

	w = s.do(http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	decode(t, w, &me)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, models.RoleJobSeeker, me.Role.Name)

	w = s.do(http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t, nil)

	codes := []int{}
	for i := 0; i < 6; i++ {
		w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "ghost", "password": "whatever"})
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{401, 401, 401, 401, 401, 429}, codes)
}

func TestBannedUserIsRefused(t *testing.T) {
	s := newTestServer(t, nil)
	adminToken, _ := s.account("root", models.RoleAdmin)
	seekerToken, seekerID := s.account("alice", models.RoleJobSeeker)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/applications/my", seekerToken, nil).Code)

	w := s.do(http.MethodPatch, "/admin/users/"+itoa(seekerID)+"/ban", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the token is still valid but the live ban flag wins
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/applications/my", seekerToken, nil).Code)
	// public routes stay reachable
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/ping", seekerToken, nil).Code)

	w = s.do(http.MethodPatch, "/admin/users/"+itoa(seekerID)+"/ban", adminToken, map[string]bool{"banned": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/applications/my", seekerToken, nil).Code)
}

func TestBanNotEnforcedWhenDisabled(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) { cfg.EnforceBan = false })
	adminToken, _ := s.account("root", models.RoleAdmin)
	seekerToken, seekerID := s.account("alice", models.RoleJobSeeker)

	require.Equal(t, http.StatusOK, s.do(http.MethodPatch, "/admin/users/"+itoa(seekerID)+"/ban", adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/applications/my", seekerToken, nil).Code)
}
