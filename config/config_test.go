package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger("panic")
	os.Exit(m.Run())
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "TOKEN_TTL", "JOB_AUTO_APPROVE", "CORS_ORIGINS", "DISPATCH_WORKERS"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.JobAutoApprove)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 2, cfg.DispatchWorkers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("JOB_AUTO_APPROVE", "false")
	t.Setenv("LISTING_REQUIRES_APPROVAL", "1")
	t.Setenv("APPLICATION_STATUS_POLICY", "Forward")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DISPATCH_WORKERS", "many")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.JobAutoApprove)
	assert.True(t, cfg.ListingRequiresApproval)
	assert.Equal(t, "forward", cfg.ApplicationStatusPolicy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2, cfg.DispatchWorkers, "unparsable values fall back")
}

func TestValidate(t *testing.T) {
	valid := Config{JWTSecret: "s", DBDriver: "mysql", DispatchWorkers: 1, DispatchQueueSize: 8}
	require.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badDriver := valid
	badDriver.DBDriver = "oracle"
	assert.Error(t, badDriver.Validate())

	noQueue := valid
	noQueue.DispatchQueueSize = 0
	assert.Error(t, noQueue.Validate())
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(Config{DBDriver: "oracle", DatabaseDSN: "x"})
	assert.Error(t, err)
}

func TestInitDBSqliteMigrates(t *testing.T) {
	db, err := InitDB(Config{DBDriver: "sqlite", DatabaseDSN: "file:config_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable("jobs"))
	assert.True(t, db.Migrator().HasTable("applications"))
}
