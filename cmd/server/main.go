package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yourname/timetracker/internal"
	"github.com/yourname/timetracker/internal/api"
	"github.com/yourname/timetracker/internal/auth"
	"github.com/yourname/timetracker/internal/config"
	"github.com/yourname/timetracker/internal/storage"
)

type serverApp struct {
	logger       internal.Logger
	entryRepo    storage.EntryRepository
	settingsRepo storage.SettingsRepository
}

func (a *serverApp) Logger() internal.Logger                  { return a.logger }
func (a *serverApp) EntryRepo() storage.EntryRepository       { return a.entryRepo }
func (a *serverApp) SettingsRepo() storage.SettingsRepository { return a.settingsRepo }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	defaults := internal.Settings{
		DailyGoal:       cfg.DailyGoal,
		WarnThreshold:   cfg.WarnThreshold,
		DefaultCategory: cfg.DefaultCategory,
		Schedule:        internal.WorkSchedule{StartDay: 1},
	}

	var (
		entryRepo    storage.EntryRepository
		settingsRepo storage.SettingsRepository
		closer       interface{ Close() error }
	)
	switch cfg.DBType {
	case "postgres":
		entryRepo, settingsRepo, err = storage.NewPostgresRepositories(cfg.DBDSN, logger)
	default:
		if _, statErr := os.Stat("data"); os.IsNotExist(statErr) {
			_ = os.Mkdir("data", 0755)
		}
		entryRepo, settingsRepo, err = storage.NewFileRepositories(cfg.EntriesFile, cfg.SettingsFile, defaults, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	if c, ok := entryRepo.(interface{ Close() error }); ok {
		closer = c
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthService, logger)
	}

	app := &serverApp{logger: logger, entryRepo: entryRepo, settingsRepo: settingsRepo}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(provider, cfg))

	r.POST("/api/entries", api.PostEntry(app))
	r.GET("/api/entries", api.GetEntries(app))
	r.PUT("/api/entries/:id", api.PutEntry(app))
	r.DELETE("/api/entries/:id", api.DeleteEntry(app))

	r.GET("/api/stats/day", api.GetDayStats(app))
	r.GET("/api/stats/period", api.GetPeriodStats(app))
	r.GET("/api/stats/categories", api.GetCategoryStats(app))
	r.GET("/api/stats/calendar", api.GetCalendar(app))

	r.GET("/api/settings", api.GetSettings(app))
	r.PUT("/api/settings", api.PutSettings(app))

	go func() {
		logger.Infof("Server running on :%s", cfg.Port)
		if err := r.Run(":" + cfg.Port); err != nil {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	// Flush pending writes before exiting.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	if closer != nil {
		if err := closer.Close(); err != nil {
			logger.Errorf("failed to close storage: %v", err)
		}
	}
}
