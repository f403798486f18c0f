// Package server wires services, handlers and middleware into the HTTP router.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"rentalog/internal/blob"
	"rentalog/internal/config"
	"rentalog/internal/handlers"
	"rentalog/internal/metrics"
	"rentalog/internal/middleware"
	"rentalog/internal/services"

	_ "rentalog/internal/docs" // Import swagger docs
)

// Deps are the long-lived resources the router is built from.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Store   blob.Store
	Metrics *metrics.Metrics
}

// NewRouter builds the gin engine with every route mounted. A nil Metrics
// gets a fresh registry.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	// Initialize services
	userService := services.NewUserService(d.DB)
	rentalService := services.NewRentalService(d.DB, d.Metrics)
	changeLogService := services.NewChangeLogService(d.DB, d.Metrics)
	unitService := services.NewUnitService(d.DB)
	reportService := services.NewReportService(d.DB)
	violationService := services.NewViolationService(d.DB, d.Store)

	// Initialize handlers
	sessions := middleware.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	authHandler := handlers.NewAuthHandler(userService, sessions, cfg.CookieSecure)
	rentalHandler := handlers.NewRentalHandler(rentalService, changeLogService)
	logHandler := handlers.NewLogHandler(rentalService)
	unitHandler := handlers.NewUnitHandler(unitService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	violationHandler := handlers.NewViolationHandler(violationService, cfg.MaxUploadBytes)

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(d.Metrics.Middleware())
	router.Use(cors)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	metrics.GetHandler(&router.RouterGroup, d.Metrics)

	// Photos stored on local disk are served by the API itself.
	if fs, ok := d.Store.(*blob.Filesystem); ok && strings.HasPrefix(fs.PublicURL(), "/") {
		router.Static(fs.PublicURL(), fs.Root())
	}

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(sessions.RequireSession())
	admin := protected.Group("/")
	admin.Use(middleware.RequireAdminRole())

	protected.GET("/auth/me", authHandler.Me)

	// Rental routes
	rentals := protected.Group("/rentals")
	rentals.POST("", rentalHandler.CreateRental)
	rentals.GET("", rentalHandler.ListRentals)
	rentals.GET("/export.csv", rentalHandler.ExportCSV)
	rentals.GET("/:id", rentalHandler.GetRental)
	rentals.PATCH("/:id", rentalHandler.UpdateRental)
	rentals.PUT("/:id/checkout-time", rentalHandler.SetCheckoutTime)
	rentals.PUT("/:id/comments", rentalHandler.ReplaceComments)
	rentals.POST("/:id/comments", rentalHandler.AppendComment)
	rentals.GET("/:id/logs", rentalHandler.ListRentalLogs)
	admin.GET("/rentals/duplicate-nik", dashboardHandler.DuplicateNIKs)

	// Log routes
	protected.GET("/logs", logHandler.ListLogs)
	protected.GET("/logs/export.csv", logHandler.ExportCSV)

	// Unit routes
	protected.GET("/units", unitHandler.ListUnits)
	protected.GET("/units/occupied", unitHandler.OccupiedUnits)
	admin.POST("/units", unitHandler.CreateUnit)
	admin.DELETE("/units/:id", unitHandler.DeleteUnit)
	admin.GET("/agents", unitHandler.ListAgents)

	// Dashboard routes
	protected.GET("/dashboard/summary", dashboardHandler.Summary)
	protected.GET("/dashboard/series", dashboardHandler.Series)
	protected.GET("/dashboard/top-units", dashboardHandler.TopUnits)
	admin.GET("/dashboard/agents", dashboardHandler.Agents)

	// Violation routes
	protected.GET("/violations", violationHandler.ListViolations)
	protected.GET("/violations/catalog", violationHandler.Catalog)
	admin.POST("/violations", violationHandler.CreateViolation)
	admin.PUT("/violations/:id", violationHandler.UpdateViolation)
	admin.DELETE("/violations/:id", violationHandler.DeleteViolation)

	return router
}

func cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	c.Next()
}
