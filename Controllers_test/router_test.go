package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/router"
)

func TestEveryRouteIsDeclared(t *testing.T) {
	s := newTestServer(t, nil)

	registered := map[string]bool{}
	for _, route := range s.engine.Routes() {
		op := authz.OperationID(route.Method, route.Path)
		registered[op] = true
		_, ok := s.app.Registry.Lookup(op)
		assert.True(t, ok, "route %s has no permission declaration", op)
	}
	for _, op := range s.app.Registry.Operations() {
		assert.True(t, registered[op], "declaration %s has no route", op)
	}
}

func TestUndeclaredRouteIsAConfigurationError(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.account("acme", models.RoleEmployer)

	decls := make(map[string]authz.Declaration, len(router.Permissions))
	for op, decl := range router.Permissions {
		if op != authz.OperationID(http.MethodGet, "/jobs/my") {
			decls[op] = decl
		}
	}
	registry, err := router.NewRegistry(decls)
	require.NoError(t, err)
	s.app.Registry = registry
	s.engine = router.SetupRouter(s.app)

	assert.Equal(t, http.StatusInternalServerError, s.do(http.MethodGet, "/jobs/my", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/jobs/my", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/jobs", token, nil).Code)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/nowhere", "", nil).Code)
}

func TestNotificationSocketReceivesPush(t *testing.T) {
	s := newTestServer(t, nil)
	ownerToken, ownerID := s.account("acme", models.RoleEmployer)
	seekerToken, _ := s.account("alice", models.RoleJobSeeker)
	_, jobID := s.companyAndJob(ownerToken)

	srv := httptest.NewServer(s.engine)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/notifications"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token="+ownerToken, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.app.Hub.Connected(ownerID) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/applications", seekerToken, map[string]interface{}{"job_id": jobID}).Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg struct {
		Event string              `json:"event"`
		Data  models.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "notification", msg.Event)
	assert.Equal(t, models.NotificationApplicationSubmitted, msg.Data.Type)
	assert.Equal(t, ownerID, msg.Data.UserID)
}
