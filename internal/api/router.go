package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/dataprogramming/auth-service/docs"
	"github.com/dataprogramming/auth-service/internal/api/handler"
	"github.com/dataprogramming/auth-service/internal/api/middleware"
	"github.com/dataprogramming/auth-service/internal/core/domain"
	"github.com/dataprogramming/auth-service/internal/core/ports"
	"github.com/dataprogramming/auth-service/internal/core/service"
	"github.com/dataprogramming/auth-service/internal/infrastructure/config"
	mongostore "github.com/dataprogramming/auth-service/internal/infrastructure/db/mongo"
	redisstore "github.com/dataprogramming/auth-service/internal/infrastructure/db/redis"
	"github.com/dataprogramming/auth-service/internal/infrastructure/http/handlers"
	"github.com/dataprogramming/auth-service/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	tokens := token.NewService(token.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Lifetime: cfg.JWT.Expiration,
	})
	limiter := redisstore.NewLoginLimiter(rdb, cfg.Login.AttemptLimit, cfg.Login.AttemptWindow)
	userService := service.NewUserService(userRepo, tokens, limiter, audit, log)
	authHandler := handler.NewAuthHandler(userService, tokens, audit)

	// --- Auth routes ---
	// validate/refresh sit outside the Auth gate: they must answer a failed
	// verification with a message body, not the gate's bare 401.
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/validate", authHandler.Validate)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- User CRUD (behind the per-request authentication gate) ---
	users := e.Group("/auth/users", middleware.Auth(tokens))
	users.GET("", authHandler.ListUsers)
	users.GET("/:id", authHandler.GetUser)
	users.DELETE("/:id", authHandler.DeleteUser, middleware.RequireAuthority(domain.RolePrefix+domain.RoleAdmin))

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
