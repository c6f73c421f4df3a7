package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/rentora_backend/controllers"
	"github.com/rentora/rentora_backend/middleware"
	"github.com/rentora/rentora_backend/models"
)

// RegisterPropertyRoutes sets up property and lease routes
func RegisterPropertyRoutes(e *echo.Echo, propertyController *controllers.PropertyController, leaseController *controllers.LeaseController) {
	properties := e.Group("/api/properties")
	properties.Use(middleware.JWTMiddleware())

	properties.POST("", propertyController.CreateProperty, middleware.RequireUserType(models.UserTypeLandlord))
	properties.GET("/mine", propertyController.ListMyProperties, middleware.RequireUserType(models.UserTypeLandlord))
	properties.GET("/:id", propertyController.GetProperty)
	properties.PUT("/:id/commission-policy", propertyController.UpdateCommissionPolicy, middleware.RequireUserType(models.UserTypeLandlord))

	leases := e.Group("/api/leases")
	leases.Use(middleware.JWTMiddleware())

	leases.POST("", leaseController.CreateLease, middleware.RequireUserType(models.UserTypeLandlord, models.UserTypeAgent, models.UserTypeAgency))
	leases.GET("/:id", leaseController.GetLease)
}
