package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/config"
	"github.com/yeremiapane/jobportal-app/database"
	"github.com/yeremiapane/jobportal-app/router"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

func main() {
	cfg := config.Load()

	utils.InitLogger(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		utils.UseJSONFormatter()
	}

	if err := cfg.Validate(); err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if cfg.SeedRoles {
		if _, err := database.SeedRoles(context.Background(), db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed roles: %v", err)
		}
	}

	app, err := router.NewApp(db, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to wire application: %v", err)
	}

	app.Dispatcher.Start(cfg.DispatchWorkers)

	scheduler := services.NewScheduler()
	if _, err := services.RegisterExpirySweep(scheduler, app.Sweeper, cfg.ExpiryCron); err != nil {
		utils.ErrorLogger.Fatalf("Failed to schedule expiry sweep: %v", err)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("HTTP shutdown: %v", err)
	}
	if err := scheduler.Stop(ctx); err != nil {
		utils.ErrorLogger.Printf("Scheduler shutdown: %v", err)
	}
	app.Dispatcher.Stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
