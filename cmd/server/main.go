// Command server runs the sports social network HTTP API.
//
// @title          Sports Social Network API
// @version        1.0
// @description    Groups, memberships, join requests and post interactions for a sports social network.
// @license.name   MIT
// @host           localhost:8080
// @BasePath       /api/v1
// @schemes        http
package main

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -g cmd/server/main.go -d ../.. -o ../../docs

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tbourn/go-sports-backend/docs"
	"github.com/tbourn/go-sports-backend/internal/config"
	httpapi "github.com/tbourn/go-sports-backend/internal/http"
	"github.com/tbourn/go-sports-backend/internal/observability"
	"github.com/tbourn/go-sports-backend/internal/repo"
	"github.com/tbourn/go-sports-backend/internal/services"
	"github.com/tbourn/go-sports-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = ""

const (
	shutdownTimeout       = 10 * time.Second
	idempotencyPurgeEvery = time.Hour
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	setupLogging(cfg)
	appVersion := sysutil.FirstNonEmpty(version, os.Getenv("APP_VERSION"), "dev")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if err := observability.InstrumentDB(db, cfg.OTEL.Enabled); err != nil {
		log.Fatal().Err(err).Msg("instrument database")
	}

	go services.RunIdempotencyJanitor(log.Logger.WithContext(ctx), db, idempotencyPurgeEvery)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		docs.SwaggerInfo.Version = appVersion
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", appVersion).
			Str("base_path", cfg.APIBasePath).
			Bool("swagger", cfg.SwaggerEnabled).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// setupLogging configures the global zerolog logger. Services fall back to
// it through zerolog.Ctx when a context carries no request logger.
func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	sysutil.SetLogLevel(cfg.LogLevel)

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    sysutil.IsTruthy(os.Getenv("NO_COLOR")),
		})
	}
	log.Logger = log.With().Str("service", cfg.OTEL.ServiceName).Logger()
	zerolog.DefaultContextLogger = &log.Logger
}
