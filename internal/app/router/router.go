// Package router assembles the gin engine and its routes.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "admin_backend/internal/feature/auth/transport/handler"
	categoryhandler "admin_backend/internal/feature/category/transport/handler"
	userhandler "admin_backend/internal/feature/user/transport/handler"
	platformhandler "admin_backend/internal/platform/http/handler"
	"admin_backend/internal/platform/http/middleware"
	jwtmw "admin_backend/internal/platform/jwt"
	"admin_backend/internal/shared/ratelimiter"
)

// Handlers are the feature handlers mounted by NewRouter.
type Handlers struct {
	Auth       *authhandler.AuthHandler
	Users      *userhandler.UserHandler
	Categories *categoryhandler.CategoryHandler
	Health     *platformhandler.HealthHandler
}

// Options carries the cross cutting pieces of the router.
type Options struct {
	JWTSecret      string
	Revocations    jwtmw.RevocationChecker
	AuthLimiter    ratelimiter.RateLimiterInterface
	AllowedOrigins []string
	Metrics        http.Handler
	Observer       middleware.HTTPObserver
	Logger         *zap.Logger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.Logger(logger, opts.Observer))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 認証不要
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	public := r.Group("/")
	if opts.AuthLimiter != nil {
		public.Use(ratelimiter.Middleware(opts.AuthLimiter, logger))
	}
	public.POST("/signup", h.Auth.Signup)
	public.POST("/login", h.Auth.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret, opts.Revocations, logger))
	{
		users := auth.Group("/users")
		users.DELETE("/logout", h.Auth.Logout)
		users.GET("/me", h.Auth.Me)
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Show)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)

		categories := auth.Group("/categories")
		categories.GET("", h.Categories.List)
		categories.GET("/parents", h.Categories.Parents)
		categories.POST("", h.Categories.Create)
		categories.GET("/:id", h.Categories.Show)
		categories.PUT("/:id", h.Categories.Update)
		categories.DELETE("/:id", h.Categories.Delete)
	}

	return r
}
