package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"team_status_bot/internal/app"
	"team_status_bot/internal/infra/config"
	idb "team_status_bot/internal/infra/database"
	"team_status_bot/internal/infra/logger"
	"team_status_bot/internal/infra/web"

	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.For("dashboard")

	db, err := idb.NewPostgresConnection(context.Background(), cfg.DatabaseURL, idb.Pool{
		MaxOpen: cfg.DBMaxOpenConns,
		MaxIdle: cfg.DBMaxIdleConns,
	})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()

	statusService := app.NewStatusService(
		idb.NewPostgresUserRepository(db),
		idb.NewPostgresStatusRepository(db),
		clockwork.NewRealClock(),
		cfg.Location,
		logger.For("status_service"),
	)
	dashboard := web.NewDashboard(statusService, db, app.DefaultWindowDays, logger.For("web"))

	srv := &http.Server{
		Addr:              cfg.DashboardAddr,
		Handler:           dashboard.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		mainLogger.WithField("addr", cfg.DashboardAddr).Info("Dashboard listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mainLogger.WithError(err).Fatal("Dashboard server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		mainLogger.WithError(err).Error("Dashboard shutdown failed")
	}
	mainLogger.Info("Dashboard stopped.")
}
