package api

import (
	"net/http"

	"petcare/api/health"
	"petcare/api/middleware"
	"petcare/api/response"
	"petcare/config"
	"petcare/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar 各业务控制器按需挂载鉴权中间件
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup, auth *middleware.Auth)
}

// Router Route configuration
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	auth             *middleware.Auth
	healthController *health.Controller
	controllers      []RouteRegistrar
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	auth *middleware.Auth,
	healthController *health.Controller,
	controllers ...RouteRegistrar,
) *Router {
	// Set Gin mode based on environment
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	// Add middleware (order is important)
	engine.Use(middleware.RequestIDMiddleware())                      // 1. Generate request ID first
	engine.Use(middleware.RecoveryMiddleware())                       // 2. Recovery middleware
	engine.Use(middleware.LoggingMiddleware())                        // 3. Logging middleware
	engine.Use(metrics.Handler())                                     // 4. Metrics
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))                  // 5. CORS
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 6. Rate limiting

	return &Router{
		engine:           engine,
		config:           cfg,
		auth:             auth,
		healthController: healthController,
		controllers:      controllers,
	}
}

// ServeUploads 本地存储时把上传目录挂到 urlPath 下
func (r *Router) ServeUploads(urlPath, dir string) {
	if urlPath == "" || dir == "" {
		return
	}
	r.engine.Static(urlPath, dir)
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		for _, c := range r.controllers {
			c.RegisterRoutes(apiGroup, r.auth)
		}
	}

	r.engine.GET("/metrics", metrics.Exposer())

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, &response.Response{
			Success:   false,
			Error:     "NOT_FOUND",
			Message:   "route not found",
			Code:      http.StatusNotFound,
			RequestID: response.GetRequestID(c),
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
