package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/alertaclimatica/news-api/docs"
	"github.com/alertaclimatica/news-api/internal/api/handler"
	"github.com/alertaclimatica/news-api/internal/api/middleware"
	"github.com/alertaclimatica/news-api/internal/core/service"
	"github.com/alertaclimatica/news-api/internal/infrastructure/config"
	mongodb "github.com/alertaclimatica/news-api/internal/infrastructure/db/mongo"
	redisdb "github.com/alertaclimatica/news-api/internal/infrastructure/db/redis"
	"github.com/alertaclimatica/news-api/internal/infrastructure/http/handlers"
)

const (
	loginLimit  = 5
	loginWindow = 15 * time.Minute
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Env)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(corsMiddleware(cfg))
	e.Use(echoprometheus.NewMiddleware("alertaclimatica"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	noticiaRepo := mongodb.NewNoticiaRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpire)
	authService := service.NewAuthService(userRepo, tokenService, log)

	var statsCache service.StatsCache
	if rdb != nil {
		statsCache = redisdb.NewStatsCache(rdb, log)
	}
	noticiaService := service.NewNoticiaService(noticiaRepo, userRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	noticiaHandler := handler.NewNoticiaHandler(noticiaService)

	authMiddleware := middleware.Auth(tokenService, userRepo)
	adminOnly := middleware.RequireRoles("admin")

	apiLimiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, "api",
		"Demasiadas solicitudes desde esta IP. Por favor intenta más tarde.")
	loginLimiter := middleware.NewRateLimiter(loginLimit, loginWindow, "login",
		"Demasiados intentos de inicio de sesión. Por favor intenta de nuevo en 15 minutos.")

	// --- API routes ---
	apiGroup := e.Group("/api", apiLimiter.Middleware(), middleware.Sanitize())

	auth := apiGroup.Group("/auth")
	auth.POST("/registro", authHandler.Registro)
	auth.POST("/login", authHandler.Login, loginLimiter.Middleware())
	auth.GET("/perfil", authHandler.Perfil, authMiddleware)
	auth.GET("/verificar", authHandler.Verificar, authMiddleware)

	noticias := apiGroup.Group("/noticias")
	noticias.GET("", noticiaHandler.List)
	noticias.GET("/stats/general", noticiaHandler.Stats, authMiddleware)
	noticias.GET("/:id", noticiaHandler.Get)
	noticias.POST("", noticiaHandler.Create, authMiddleware)
	noticias.PUT("/:id", noticiaHandler.Update, authMiddleware)
	noticias.DELETE("/:id", noticiaHandler.Delete, authMiddleware, adminOnly)

	apiGroup.GET("/health", handlers.NewHealthHandler().Liveness)

	// --- Operational surface (no /api prefix, no rate limit) ---
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// corsMiddleware restricts browsers to the configured origins; development
// mode accepts any origin.
func corsMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	if cfg.Env == "development" || len(cfg.AllowedOrigins) == 0 {
		return echomiddleware.CORS()
	}
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	})
}
