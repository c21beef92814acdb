package http

import (
	"time"

	"expense_tracker/internal/config"
	"expense_tracker/internal/http/handlers"
	"expense_tracker/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rateLimiter picks the Redis-backed limiter when Redis is configured and
// the in-process one otherwise, so single-node deployments still get a
// working limit.
func rateLimiter(cfg *config.Config, max int, window time.Duration) gin.HandlerFunc {
	if cfg.RedisAddr != "" {
		return middleware.RedisRateLimit(max, window)
	}
	return middleware.SimpleRateLimit(max, window)
}

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, cfg.QueryTimeout)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRL := rateLimiter(cfg, cfg.APIRateLimit, cfg.APIRateWindow)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(apiRL)
	registerAPIRoutes(v1, h, cfg)

	// Legacy /api routes kept for older clients
	api := r.Group("/api")
	api.Use(apiRL)
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, cfg)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"success": false,
			"message": "Route " + c.Request.URL.Path + " not found",
		})
	})
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Login and signup get a tighter limiter than the rest of the API
	authRL := rateLimiter(cfg, cfg.AuthRateLimit, cfg.AuthRateWindow)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authRL, h.Register)
		auth.POST("/login", authRL, h.Login)
		auth.GET("/me", middleware.JWT(), h.Me)
		auth.PUT("/profile", middleware.JWT(), h.UpdateProfile)
	}

	txs := api.Group("/transactions")
	txs.Use(middleware.JWT())
	{
		// fixed paths before the :id wildcard
		txs.GET("/stats/dashboard", h.Dashboard)
		txs.GET("/categories", h.Categories)

		txs.GET("", h.ListTransactions)
		txs.POST("", h.CreateTransaction)
		txs.GET("/:id", h.GetTransaction)
		txs.PUT("/:id", h.UpdateTransaction)
		txs.DELETE("/:id", h.DeleteTransaction)
	}
}
