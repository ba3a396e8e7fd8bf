package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/courseplatform/recommendation-service/internal/application/recommendation"
	"github.com/courseplatform/recommendation-service/internal/config"
	redisclient "github.com/courseplatform/recommendation-service/internal/infrastructure/caching/redis"
	"github.com/courseplatform/recommendation-service/internal/infrastructure/courseclient"
	"github.com/courseplatform/recommendation-service/internal/infrastructure/db/postgres"
	"github.com/courseplatform/recommendation-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/courseplatform/recommendation-service/internal/logger"
	"github.com/courseplatform/recommendation-service/internal/transport/http/handlers"
	"github.com/courseplatform/recommendation-service/internal/transport/http/router"
	zlog "github.com/rs/zerolog/log"
)

// sysClock stamps recommendation sets with system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		zlog.Fatal().Err(err).Msg("schema migration failed")
	}

	var cache recommendation.Cache
	if cfg.RedisURL != "" {
		rc, err := redisclient.New(cfg.RedisURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("redis init failed")
		}
		defer rc.Close()
		cache = rc
		zlog.Info().Msg("recommendations cache ready")
	} else {
		zlog.Warn().Msg("REDIS_URL empty: recommendations served without cache")
	}

	catalog := courseclient.New(cfg.CourseServiceURL, cfg.CatalogTimeout)
	svc := recommendation.New(
		postgres.NewRatingRepo(db),
		postgres.NewRecommendationRepo(db),
		postgres.NewCategoryRepo(db),
		catalog,
		cache,
		sysClock{},
		cfg.CacheTTL,
	)

	if cfg.RabbitURL != "" {
		consumer := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, svc, cfg.ConsumerBackoff)
		go consumer.Run(ctx)
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: rating events will not be consumed")
	}

	// delayed initial catalog sync so the course service has a chance to come up
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(cfg.InitialSyncDelay):
			svc.SyncCoursesAndReport(ctx)
		}
	}()

	h := handlers.NewRecommendationsHandler(svc)
	z := handlers.NewHealthHandler()

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.New(h, z, cfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
	zlog.Info().Msg("recommendation service stopped")
}
