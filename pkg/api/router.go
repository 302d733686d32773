package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/urmzd/homesim/pkg/api/handlers"
	"github.com/urmzd/homesim/pkg/config"
	"github.com/urmzd/homesim/pkg/home"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine *gin.Engine
	home   *home.Home
	auth   config.AuthConfig
}

// NewRouter creates a new API router
func NewRouter(h *home.Home, auth config.AuthConfig) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine: engine,
		home:   h,
		auth:   auth,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.home.Gatherer, promhttp.HandlerOpts{})))

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.home)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	v1.GET("/health", healthHandler.Health)

	secured := v1.Group("", BasicAuth(r.auth))
	{
		// Devices
		devicesHandler := handlers.NewDevicesHandler(r.home)
		devices := secured.Group("/devices")
		{
			devices.GET("", devicesHandler.ListDevices)
			devices.GET("/:name", devicesHandler.GetDevice)
			devices.PUT("/:name", devicesHandler.SetDevice)
			devices.POST("/:name/toggle", devicesHandler.ToggleDevice)
		}
		secured.PUT("/fan/speed", devicesHandler.SetFanSpeed)

		// Sensors
		sensorsHandler := handlers.NewSensorsHandler(r.home)
		secured.GET("/sensors", sensorsHandler.GetReadings)
		secured.GET("/sensors/doors", sensorsHandler.GetDoors)

		// Automation
		automationHandler := handlers.NewAutomationHandler(r.home)
		automation := secured.Group("/automation")
		{
			automation.POST("/run", automationHandler.Run)
			automation.GET("/thresholds", automationHandler.GetThresholds)
			automation.PUT("/thresholds", automationHandler.PutThresholds)
		}

		secured.GET("/emergency", handlers.NewEmergencyHandler(r.home).Poll)
		secured.POST("/commands", handlers.NewCommandsHandler(r.home).Apply)

		// Notifications
		notificationsHandler := handlers.NewNotificationsHandler(r.home)
		secured.GET("/notifications", notificationsHandler.List)
		secured.GET("/notifications/events", notificationsHandler.Events)
	}
}

// Handler exposes the engine for http.Server and tests.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
