package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"boxtribute/internal/caching"
	"boxtribute/internal/gateway"
	"boxtribute/internal/handlers"
	"boxtribute/internal/jobs/background"
	"boxtribute/internal/middleware"
	"boxtribute/internal/repositories"
	"boxtribute/internal/services"
)

const version = "1.0.0"

func main() {
	// Audit database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Remote GraphQL service
	graphqlURL := os.Getenv("GRAPHQL_URL")
	if graphqlURL == "" {
		log.Fatal("GRAPHQL_URL environment variable is required")
	}
	graphqlToken := os.Getenv("GRAPHQL_TOKEN")

	// JWKS for token validation
	jwksURL := os.Getenv("JWKS_URL")
	if jwksURL == "" {
		log.Fatal("JWKS_URL environment variable is required")
	}
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			log.Printf("Failed to refresh JWKS: %v", err)
		},
	})
	if err != nil {
		log.Fatalf("Failed to load JWKS: %v", err)
	}
	defer jwks.EndBackground()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Wiring
	gw := gateway.NewGraphQLClient(graphqlURL, graphqlToken)
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	auditRepo := repositories.NewBatchAuditRepo(pool)

	shipmentBoxSvc := services.NewShipmentBoxService(gw, cacheSvc, auditRepo)
	boxSvc := services.NewBoxService(gw, cacheSvc, auditRepo)
	tagSvc := services.NewTagService(gw, cacheSvc, auditRepo)

	shipmentHandlers := handlers.NewShipmentHandlers(shipmentBoxSvc)
	boxHandlers := handlers.NewBoxHandlers(boxSvc)
	tagHandlers := handlers.NewTagHandlers(tagSvc)
	auditHandlers := handlers.NewAuditHandlers(auditRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(gw, cacheSvc, auditRepo)
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(jwks))

	// Shipment box assignment
	protected.POST("/shipments/:id/boxes", shipmentHandlers.AssignBoxes,
		middleware.RequirePermission("shipment:write"))
	protected.POST("/shipments/:id/boxes/unassign", shipmentHandlers.UnassignBoxes,
		middleware.RequirePermission("shipment:write"))
	protected.POST("/shipments/:id/boxes/reassign", shipmentHandlers.ReassignBoxes,
		middleware.RequirePermission("shipment:write"))

	// Box operations
	protected.POST("/boxes/move", boxHandlers.MoveBoxes,
		middleware.RequirePermission("stock:write"))
	protected.POST("/boxes/delete", boxHandlers.DeleteBoxes,
		middleware.RequirePermission("stock:write"))

	// Tag operations
	protected.POST("/boxes/tags", tagHandlers.AssignTags,
		middleware.RequirePermission("stock:write"))
	protected.POST("/boxes/tags/unassign", tagHandlers.UnassignTags,
		middleware.RequirePermission("stock:write"))
	protected.POST("/tags/delete", tagHandlers.DeleteTags,
		middleware.RequirePermission("tag:write"))

	// Audit trail
	protected.GET("/batch-audit", auditHandlers.ListAuditLogs,
		middleware.RequirePermission("audit:read"))

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Batch operations service v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
