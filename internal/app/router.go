package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/auth"
	"rideshare/internal/domain"
	"rideshare/internal/handler"
	"rideshare/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler       *handler.AuthHandler
	RideHandler       *handler.RideHandler
	RatingHandler     *handler.RatingHandler
	PaymentHandler    *handler.PaymentHandler
	DriverHandler     *handler.DriverHandler
	DirectionsHandler *handler.DirectionsHandler
	TokenManager      *auth.TokenManager
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(deps.TokenManager)
	riderOnly := middleware.RequireRole(domain.RoleRider)
	driverOnly := middleware.RequireRole(domain.RoleDriver)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Identity routes.
		v1.POST("/auth/signup", deps.AuthHandler.SignUp)
		v1.POST("/auth/login", deps.AuthHandler.Login)
		v1.GET("/profile", authRequired, deps.AuthHandler.Profile)

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", authRequired, riderOnly, deps.RideHandler.CreateRide)
			rides.GET("/available", authRequired, driverOnly, deps.RideHandler.AvailableRides)
			rides.GET("/:id/status", deps.RideHandler.RideStatus)
			rides.GET("/:id/fare", deps.RideHandler.Fare)
			rides.POST("/:id/accept", authRequired, driverOnly, deps.RideHandler.AcceptRide)
			rides.PATCH("/:id/status", deps.RideHandler.ProgressRide)
			rides.POST("/:id/rating", deps.RatingHandler.RateRide)
		}

		// Payment routes.
		payments := v1.Group("/payments")
		{
			payments.POST("", authRequired, riderOnly, deps.PaymentHandler.PayRide)
			payments.GET("/:id", deps.PaymentHandler.GetPayment)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.PATCH("/location", authRequired, driverOnly, deps.DriverHandler.UpdateLocation)
			drivers.GET("/nearby", deps.DriverHandler.Nearby)
			drivers.GET("/:id/location", deps.DriverHandler.GetLocation)
		}

		// Directions proxy.
		v1.POST("/directions", deps.DirectionsHandler.GetDirections)
	}

	return router
}
