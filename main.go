package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/LovationAdmin/giftfinder-api/config"
	"github.com/LovationAdmin/giftfinder-api/handlers"
	"github.com/LovationAdmin/giftfinder-api/middleware"
	"github.com/LovationAdmin/giftfinder-api/routes"
	"github.com/LovationAdmin/giftfinder-api/services"
	"github.com/LovationAdmin/giftfinder-api/utils"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		utils.SafeInfo("No .env file found, using environment variables")
	}
	if utils.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules := services.DefaultRules()
	if cfg.RulesFile != "" {
		loaded, err := services.LoadRulesFromFile(cfg.RulesFile)
		if err != nil {
			utils.SafeWarn("Failed to load rules from %s, using defaults: %v", cfg.RulesFile, err)
		} else {
			rules = loaded
		}
	}

	opts := []services.Option{services.WithRules(rules)}

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var dialect config.Dialect
		var err error
		db, dialect, err = config.InitDB(cfg.DatabaseURL)
		if err != nil {
			utils.Logger().Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := config.RunMigrations(db, dialect); err != nil {
			utils.Logger().Fatal().Err(err).Msg("Failed to run migrations")
		}
		utils.SafeInfo("Database connected (%s)", dialect)
		opts = append(opts, services.WithStore(services.NewSQLSearchStore(db, dialect)))
	} else {
		utils.SafeInfo("DATABASE_URL not set, search history disabled")
	}

	if cfg.RedisAddr != "" {
		cache, err := services.NewRedisResultCache(cfg)
		if err != nil {
			utils.SafeWarn("[Cache] Redis unavailable, caching disabled: %v", err)
		} else {
			opts = append(opts, services.WithCache(cache))
		}
	}

	if cfg.KafkaBroker != "" {
		opts = append(opts, services.WithPublisher(services.NewKafkaSearchPublisher(cfg.KafkaBroker, cfg.KafkaTopic)))
	}

	if !cfg.SearchConfigured() {
		utils.SafeInfo("Custom Search credentials not set, serving the fallback catalog")
	}

	wsHandler := handlers.NewWSHandler()
	opts = append(opts, services.WithNotifier(wsHandler))

	svc := services.NewGiftSearchService(cfg, services.NewCustomSearchService(cfg), opts...)
	svc.StartRetentionCleanup(ctx, 24*time.Hour)

	auth := middleware.NewAuthenticator(cfg.JWTSecret)
	if !auth.Enabled() {
		utils.SafeWarn("JWT_SECRET not set, all requests are anonymous")
	}

	router := routes.NewRouter(ctx, routes.Deps{
		Config:  cfg,
		Service: svc,
		WS:      wsHandler,
		Auth:    auth,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogStartup("giftfinder-api", routes.Version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger().Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	utils.SafeInfo("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.SafeError("Server shutdown failed: %v", err)
	}
	if err := wsHandler.Close(); err != nil {
		utils.SafeWarn("[WS] Close failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		utils.SafeWarn("Service close failed: %v", err)
	}
}
