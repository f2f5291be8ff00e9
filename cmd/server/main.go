package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-tracker/internal/cache"
	"project-tracker/internal/config"
	"project-tracker/internal/database"
	"project-tracker/internal/handlers"
	"project-tracker/internal/monitoring"
	"project-tracker/internal/notify"
	"project-tracker/internal/services"
	"project-tracker/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.SeedDefaultManager(db); err != nil {
		log.Fatalf("seed default manager: %v", err)
	}

	entityStore := store.NewGormStore(db)

	healthChecks := map[string]monitoring.HealthCheckFunc{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var cacheInstance *cache.Cache
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cache.RedisConfig{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		defer redisCache.Close()
		cacheInstance = cache.New(redisCache)
		healthChecks["redis"] = redisCache.Ping
	}

	dispatcher := notify.NewEmailDispatcher(&cfg.SMTP, logger)

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:          cfg,
		Store:           entityStore,
		RegisterService: services.NewRegisterService(entityStore),
		AuthService:     services.NewAuthService(entityStore, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL),
		ProjectService:  services.NewProjectService(entityStore, cacheInstance),
		TaskService:     services.NewTaskService(entityStore, dispatcher, cfg.Notify.Recipient, cacheInstance),
		ReportService:   services.NewReportService(entityStore, cacheInstance),
		HealthChecks:    healthChecks,
	})

	httpServer := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run failed", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", slog.String("error", err.Error()))
	}
}
