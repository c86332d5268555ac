package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/arogyavax/internal/handler"
	"github.com/jwalitptl/arogyavax/internal/handler/health"
	"github.com/jwalitptl/arogyavax/internal/middleware"
	"github.com/jwalitptl/arogyavax/internal/model"
)

// Handler is implemented by every API handler package.
type Handler interface {
	RegisterRoutes(handler.Groups)
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	RequestTimeout   time.Duration
	MaxBodyBytes     int64
	// StaticDir holds the browser frontend; empty disables static serving.
	StaticDir string
	// TracingService enables otelgin spans under this service name.
	TracingService string
	MetricsPrefix  string
	Registry       *prometheus.Registry
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	health      *health.Handler
	handlers    []Handler
	config      RouterConfig
	rateLimiter *middleware.RateLimiter
}

func NewRouter(auth *middleware.AuthMiddleware, healthH *health.Handler, config RouterConfig, handlers ...Handler) *Router {
	engine := gin.New()
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 1 << 20
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}

	r := &Router{
		engine:   engine,
		auth:     auth,
		health:   healthH,
		handlers: handlers,
		config:   config,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.NewHTTPMetrics(config.MetricsPrefix, config.Registry).Middleware(),
	)
	if config.TracingService != "" {
		engine.Use(otelgin.Middleware(config.TracingService))
	}
	engine.Use(
		middleware.CORS(config.CORSConfig),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.SizeLimit(config.MaxBodyBytes),
	)
	if config.RateLimitEnabled {
		r.rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(r.rateLimiter.RateLimit())
	}
	engine.Use(middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}))

	return r
}

// Setup registers every route. It fails only when validators cannot be installed.
func (r *Router) Setup() error {
	if err := middleware.RegisterValidators(); err != nil {
		return err
	}

	r.health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.config.Registry, promhttp.HandlerOpts{})))

	api := r.engine.Group("/api", middleware.NoStore(), middleware.Version(middleware.DefaultVersionConfig()))
	authenticated := api.Group("", r.auth.Authenticate())
	groups := handler.Groups{
		Public:        api,
		Authenticated: authenticated,
		Staff:         authenticated.Group("", r.auth.RequireRole(model.RoleNurse, model.RoleAdmin)),
		Admin:         authenticated.Group("", r.auth.RequireRole(model.RoleAdmin)),
	}
	for _, h := range r.handlers {
		h.RegisterRoutes(groups)
	}

	r.engine.NoRoute(
		r.resolveStatic,
		middleware.PublicCache(3600),
		middleware.Compress(middleware.DefaultCompressConfig()),
		r.serveStatic,
	)
	return nil
}

const contextStaticFile = "static_file"

// resolveStatic maps unmatched GET requests outside /api to a file in the
// static directory and answers everything else with a JSON 404.
func (r *Router) resolveStatic(c *gin.Context) {
	p := c.Request.URL.Path
	if r.config.StaticDir == "" || c.Request.Method != http.MethodGet || strings.HasPrefix(p, "/api/") {
		c.AbortWithStatusJSON(http.StatusNotFound, handler.NewErrorResponse("route not found"))
		return
	}

	if p == "/" {
		p = "/index.html"
	}
	file := filepath.Join(r.config.StaticDir, filepath.FromSlash(filepath.Clean("/"+p)))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		c.AbortWithStatusJSON(http.StatusNotFound, handler.NewErrorResponse("route not found"))
		return
	}

	c.Set(contextStaticFile, file)
	c.Next()
}

func (r *Router) serveStatic(c *gin.Context) {
	c.File(c.GetString(contextStaticFile))
}

// RateLimiter is nil when rate limiting is disabled.
func (r *Router) RateLimiter() *middleware.RateLimiter {
	return r.rateLimiter
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
