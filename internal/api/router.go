package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskforge/rewards-api/internal/api/handler"
	"github.com/taskforge/rewards-api/internal/api/middleware"
	"github.com/taskforge/rewards-api/internal/core/domain"
	"github.com/taskforge/rewards-api/internal/core/service"
	"github.com/taskforge/rewards-api/internal/infrastructure/config"
	mongodb "github.com/taskforge/rewards-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/rewards-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rewards"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	submissionRepo := mongodb.NewSubmissionRepository(db)
	shopRepo := mongodb.NewShopRepository(db)
	tokenStore := redisdb.NewSharedTokenStore(rdb)

	// --- Services ---
	ledgerService := service.NewLedgerService(userRepo, log)
	taskService := service.NewTaskService(taskRepo, submissionRepo, userRepo, log)
	submissionService := service.NewSubmissionService(submissionRepo, taskRepo, userRepo, log)
	shopService := service.NewShopService(shopRepo, userRepo, log)
	tokenService := service.NewSharedTokenService(tokenStore, userRepo, cfg.JWTSecret, cfg.LoginTokenTTL, log)

	// --- Handlers ---
	taskHandler := handler.NewTaskHandler(taskService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	shopHandler := handler.NewShopHandler(shopService)
	leaderboardHandler := handler.NewLeaderboardHandler(ledgerService)
	tokenHandler := handler.NewTokenHandler(tokenService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret, ledgerService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	memberOnly := middleware.RBAC(domain.RoleMember)

	// --- Public routes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.POST("/api/token/login", tokenHandler.Login)

	// --- Authenticated routes ---
	g := e.Group("/api", auth)

	g.GET("/tasks", taskHandler.List)
	g.POST("/tasks", taskHandler.Create, adminOnly)
	g.DELETE("/tasks/all", taskHandler.DeleteAll, adminOnly)
	g.DELETE("/tasks/:id", taskHandler.Delete, adminOnly)

	g.POST("/tasks/:id/submit", submissionHandler.Submit, memberOnly)
	g.GET("/tasks/submissions/pending", submissionHandler.ListPending, adminOnly)
	g.GET("/tasks/submissions/mine", submissionHandler.ListMine, memberOnly)
	g.POST("/tasks/submissions/:id/approve", submissionHandler.Approve, adminOnly)
	g.POST("/tasks/submissions/:id/reject", submissionHandler.Reject, adminOnly)

	g.GET("/shop", shopHandler.List)
	g.POST("/shop", shopHandler.Create, adminOnly)
	g.DELETE("/shop/:id", shopHandler.Delete, adminOnly)
	g.POST("/shop/redeem", shopHandler.Redeem, memberOnly)
	g.POST("/shop/redeem/confirm", shopHandler.Confirm)
	g.POST("/shop/redeem/cancel", shopHandler.Cancel)

	g.GET("/leaderboard", leaderboardHandler.List)

	g.POST("/token/generate", tokenHandler.Generate, adminOnly)

	return e
}
