package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/services"
)

func TestApplicationFlow(t *testing.T) {
	s := newTestServer(t, nil)
	ownerToken, ownerID := s.account("acme", models.RoleEmployer)
	rivalToken, _ := s.account("globex", models.RoleEmployer)
	seekerToken, _ := s.account("alice", models.RoleJobSeeker)
	_, jobID := s.companyAndJob(ownerToken)

	apply := map[string]interface{}{"job_id": jobID, "cover_letter": "Hi"}
	w := s.do(http.MethodPost, "/applications", seekerToken, apply)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var application models.Application
	decode(t, w, &application)
	assert.Equal(t, models.ApplicationApplied, application.Status)

	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/applications", seekerToken, apply).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/applications", ownerToken, apply).Code, "employers can't apply")

	var inbox services.NotificationPage
	w = s.do(http.MethodGet, "/notifications", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &inbox)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, models.NotificationApplicationSubmitted, inbox.Items[0].Type)
	assert.Equal(t, ownerID, inbox.Items[0].UserID)

	appPath := "/applications/" + itoa(application.ID)
	shortlist := map[string]string{"status": "SHORTLISTED"}
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, appPath+"/status", rivalToken, shortlist).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, appPath+"/status", seekerToken, shortlist).Code, "matrix denies seekers")
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/applications/job/"+itoa(jobID), rivalToken, nil).Code)

	w = s.do(http.MethodPatch, appPath+"/status", ownerToken, shortlist)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/notifications/count/unread", seekerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unread struct {
		Count int `json:"count"`
	}
	decode(t, w, &unread)
	assert.Equal(t, 1, unread.Count)

	var listed []models.Application
	w = s.do(http.MethodGet, "/applications/job/"+itoa(jobID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, models.ApplicationShortlisted, listed[0].Status)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, appPath, rivalToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, appPath, seekerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, appPath, seekerToken, nil).Code)
}

func TestApplyToClosedJob(t *testing.T) {
	s := newTestServer(t, nil)
	ownerToken, _ := s.account("acme", models.RoleEmployer)
	seekerToken, _ := s.account("alice", models.RoleJobSeeker)
	_, jobID := s.companyAndJob(ownerToken)

	require.Equal(t, http.StatusOK, s.do(http.MethodPatch, "/jobs/"+itoa(jobID)+"/status", ownerToken, map[string]string{"status": "CLOSED"}).Code)

	w := s.do(http.MethodPost, "/applications", seekerToken, map[string]interface{}{"job_id": jobID})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, "/applications", seekerToken, map[string]interface{}{"job_id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	ownerToken, _ := s.account("acme", models.RoleEmployer)
	otherToken, _ := s.account("globex", models.RoleEmployer)
	seekerToken, _ := s.account("alice", models.RoleJobSeeker)
	_, jobID := s.companyAndJob(ownerToken)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/applications", seekerToken, map[string]interface{}{"job_id": jobID}).Code)

	var inbox services.NotificationPage
	decode(t, s.do(http.MethodGet, "/notifications?unread=true", ownerToken, nil), &inbox)
	require.Len(t, inbox.Items, 1)
	path := "/notifications/" + itoa(inbox.Items[0].ID)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, otherToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPatch, path+"/read", otherToken, nil).Code)

	w := s.do(http.MethodPatch, path+"/read", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var n models.Notification
	decode(t, w, &n)
	assert.True(t, n.Read)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPatch, "/notifications/read-all", ownerToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/notifications?limit=51", ownerToken, nil).Code)
}

func TestSavedJobEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	ownerToken, _ := s.account("acme", models.RoleEmployer)
	seekerToken, _ := s.account("alice", models.RoleJobSeeker)
	_, jobID := s.companyAndJob(ownerToken)
	path := "/saved-jobs/" + itoa(jobID)

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, path, seekerToken, nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, path, seekerToken, nil).Code)

	var check struct {
		Saved bool `json:"saved"`
	}
	decode(t, s.do(http.MethodGet, path+"/check", seekerToken, nil), &check)
	assert.True(t, check.Saved)

	var saved []services.SavedJobView
	decode(t, s.do(http.MethodGet, "/saved-jobs", seekerToken, nil), &saved)
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].Job)
	assert.Equal(t, jobID, saved[0].Job.ID)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, path, seekerToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, path, seekerToken, nil).Code)
}
