package Controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/config"
	"github.com/yeremiapane/jobportal-app/database"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/router"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger("panic")
	os.Exit(m.Run())
}

// setupTestDB opens a private in-memory database with the schema and the
// default roles.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.AutoMigrate(db))
	_, err = database.SeedRoles(context.Background(), db)
	require.NoError(t, err)
	return db
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:               "test-secret",
		TokenTTL:                time.Hour,
		JobAutoApprove:          true,
		ApplicationStatusPolicy: services.PolicyPermissive,
		EnforceBan:              true,
		DispatchQueueSize:       16,
		CORSOrigins:             []string{"*"},
	}
}

type testServer struct {
	t      *testing.T
	app    *router.App
	engine *gin.Engine
}

// newTestServer builds the full router. mutate adjusts the configuration
// before the app is wired.
func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := router.NewApp(setupTestDB(t), cfg)
	require.NoError(t, err)
	return &testServer{t: t, app: app, engine: router.SetupRouter(app)}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// account creates a user with the given role and returns a fresh token.
func (s *testServer) account(username, role string) (string, uint) {
	s.t.Helper()
	ctx := context.Background()
	user, err := s.app.Users.Create(ctx, services.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Role:     role,
	})
	require.NoError(s.t, err)
	token, err := s.app.Auth.IssueFor(ctx, user.ID)
	require.NoError(s.t, err)
	return token, user.ID
}

// companyAndJob creates a company and an OPEN job owned by token's user.
func (s *testServer) companyAndJob(token string) (companyID, jobID uint) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/companies", token, map[string]interface{}{"name": "Acme"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var company models.Company
	decode(s.t, w, &company)

	w = s.do(http.MethodPost, "/jobs", token, map[string]interface{}{
		"title":       "Backend Engineer",
		"description": "Build services",
		"company_id":  company.ID,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var job models.Job
	decode(s.t, w, &job)
	return company.ID, job.ID
}

// decode unwraps the response envelope into v.
func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Status  bool            `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, v), w.Body.String())
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
