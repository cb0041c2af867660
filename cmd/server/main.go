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
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"admin_backend/internal/app/di"
	"admin_backend/internal/app/router"
	authadapters "admin_backend/internal/feature/auth/adapters"
	authhandler "admin_backend/internal/feature/auth/transport/handler"
	authusecase "admin_backend/internal/feature/auth/usecase"
	categoryentity "admin_backend/internal/feature/category/domain/entity"
	categoryhandler "admin_backend/internal/feature/category/transport/handler"
	categoryusecase "admin_backend/internal/feature/category/usecase"
	userentity "admin_backend/internal/feature/user/domain/entity"
	userhandler "admin_backend/internal/feature/user/transport/handler"
	userusecase "admin_backend/internal/feature/user/usecase"
	"admin_backend/internal/platform/config"
	infradb "admin_backend/internal/platform/db"
	platformhandler "admin_backend/internal/platform/http/handler"
	jwtmw "admin_backend/internal/platform/jwt"
	"admin_backend/internal/platform/metrics"
	"admin_backend/internal/platform/passhash"
	infraredis "admin_backend/internal/platform/redis"
	"admin_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(cfg.DB, logger, &userentity.User{}, &categoryentity.Category{}, &authadapters.RevokedToken{})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis, logger); err != nil {
		logger.Warn("redis unavailable, running without cache", zap.Error(err))
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close redis client", zap.Error(err))
			}
		}()
	}

	collector := metrics.NewCollector("admin")

	// Repository
	backend := di.NewCacheBackend(rdb, cfg, logger, collector)
	userRepo := di.NewUserRepository(db, passhash.NewBcrypt(0), cfg.Paginate.Limit, backend)
	categoryRepo := di.NewCategoryRepository(db, cfg.Paginate.Limit, backend)
	revoker := di.NewTokenRevoker(rdb, db)
	go di.SweepRevokedTokens(ctx, revoker, time.Hour, logger)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RememberMe)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, revoker)
	userUC := userusecase.NewUserUsecase(userRepo)
	categoryUC := categoryusecase.NewCategoryUsecase(categoryRepo)

	// Handler
	health := platformhandler.NewHealthHandler(logger).Require("db", sqlDB.PingContext)
	if rdb != nil {
		health.Optional("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	handlers := router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC, logger, !cfg.IsDevelopment()),
		Users:      userhandler.NewUserHandler(userUC, logger),
		Categories: categoryhandler.NewCategoryHandler(categoryUC, logger),
		Health:     health,
	}

	engine := router.NewRouter(handlers, router.Options{
		JWTSecret:      cfg.JWT.Secret,
		Revocations:    revoker,
		AuthLimiter:    ratelimiter.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateEvery),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        collector.Handler(),
		Observer:       collector,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
