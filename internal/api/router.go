package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/dbpool"
	"github.com/enerlink/enerlink/internal/middleware"
	"github.com/enerlink/enerlink/internal/models"
	"github.com/enerlink/enerlink/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Hub         *ws.Hub
	Activity    ActivityRepository
	Clients     ClientRepository
	Points      PointRepository
	Contracts   ContractRepository
	Invoices    InvoiceRepository
	Auth        AuthRepository
	Geocode     GeocodeRepository
	Tokens      middleware.TokenValidator
	CORSOrigins []string
	Version     string
	GeocoderURL string
}

// Router-level limits.
const (
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version, deps.GeocoderURL)
	auth := NewAuthHandler(deps.Auth, log)
	activity := NewActivityHandler(deps.Activity, log)
	clients := NewClientHandler(deps.Clients, log)
	points := NewPointHandler(deps.Points, log)
	contracts := NewContractHandler(deps.Contracts, log)
	invoices := NewInvoiceHandler(deps.Invoices, log)
	geocode := NewGeocodeHandler(deps.Geocode, log)
	stats := NewStatsHandler(deps.Pool, log)

	// Health, readiness, and login are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)
	api.POST("/auth/login", auth.Login)

	// WebSocket endpoint for the live activity feed. Registered outside the
	// auth middleware because browsers cannot set the Authorization header on
	// WebSocket upgrades; the handler validates the token itself.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, deps.Tokens))

	// All other API routes require a valid token.
	api.Use(middleware.AuthMiddleware(deps.Tokens, log))

	api.GET("/me", auth.Me)

	// Activity log.
	api.POST("/activity/search", activity.Search)
	api.POST("/activity/notes", activity.CreateNote)
	api.POST("/activity/export", activity.Export)

	// Filter-control lookups.
	api.GET("/lookups/users", activity.LookupUsers)
	api.GET("/lookups/clients", activity.LookupClients)
	api.GET("/lookups/points", activity.LookupPoints)
	api.GET("/lookups/contracts", activity.LookupContracts)

	// Clients.
	api.GET("/clients", clients.List)
	api.POST("/clients", clients.Create)
	api.GET("/clients/:id", clients.Get)
	api.PATCH("/clients/:id", clients.Update)
	api.GET("/clients/:id/points", points.ListByClient)
	api.GET("/clients/:id/contracts", contracts.ListByClient)
	api.GET("/clients/:id/invoices", invoices.ListByClient)

	// Supply points.
	api.POST("/points", points.Create)
	api.GET("/points/:id", points.Get)
	api.PATCH("/points/:id", points.Update)

	// Contracts.
	api.POST("/contracts", contracts.Create)
	api.GET("/contracts/:id", contracts.Get)
	api.PATCH("/contracts/:id", contracts.Update)

	// Invoices.
	api.POST("/invoices", invoices.Create)
	api.GET("/invoices/:id", invoices.Get)
	api.POST("/invoices/:id/pay", invoices.MarkPaid)

	// Geocoding.
	api.GET("/geocode", geocode.Resolve)

	// Stats.
	api.GET("/stats", stats.GetStats)

	// Deletions require at least the manager role.
	managed := api.Group("", middleware.RequireRole(models.RoleManager))
	managed.DELETE("/clients/:id", clients.Delete)
	managed.DELETE("/points/:id", points.Delete)
	managed.DELETE("/contracts/:id", contracts.Delete)
	managed.DELETE("/invoices/:id", invoices.Delete)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
