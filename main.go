package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yeremiapane/littlelemon/config"
	"github.com/yeremiapane/littlelemon/database"
	"github.com/yeremiapane/littlelemon/floor"
	"github.com/yeremiapane/littlelemon/metrics"
	"github.com/yeremiapane/littlelemon/router"
	"github.com/yeremiapane/littlelemon/services"
	"github.com/yeremiapane/littlelemon/utils"
	"gorm.io/gorm"
)

func main() {
	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	utils.InitLoggerWithLevel(cfg.App.LogLevel)
	if cfg.App.IsProd() {
		utils.UseJSONFormat()
	}
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	if cfg.App.GinMode == gin.ReleaseMode || cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	if cfg.App.SeedData {
		if err := database.Seed(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed data: %v", err)
		}
	}

	r, monitor, err := buildApp(db, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to build application: %v", err)
	}
	monitor.Start()
	defer monitor.Stop()

	addr := ":" + cfg.App.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.InfoLogger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.ErrorLogger.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Info("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
	}
	utils.InfoLogger.Info("Server stopped gracefully")
}

// buildApp wires the ledger, floor hub, metrics and reconciler into the router.
func buildApp(db *gorm.DB, cfg *config.Config) (*gin.Engine, *services.AvailabilityMonitor, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hub := floor.NewHub()
	validator := services.NewReservationValidator(services.SystemClock, loc, services.OpeningHours{
		Open:  cfg.Booking.OpenHour,
		Close: cfg.Booking.CloseHour,
	})
	ledger := services.NewReservationLedger(db, validator, hub, metrics.NewReservationMetrics(reg))
	monitor := services.NewAvailabilityMonitor(ledger, cfg.Booking.ReconcileInterval)

	r := router.SetupRouter(db, router.Options{
		Config:   cfg,
		Ledger:   ledger,
		Hub:      hub,
		Gatherer: reg,
	})
	return r, monitor, nil
}
