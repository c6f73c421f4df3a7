package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/rentora_backend/controllers"
	"github.com/rentora/rentora_backend/middleware"
	"github.com/rentora/rentora_backend/models"
)

// RegisterPaymentRoutes sets up payment lifecycle routes. Status and amount
// mutations feed the commission engine synchronously.
func RegisterPaymentRoutes(e *echo.Echo, paymentController *controllers.PaymentController) {
	payments := e.Group("/api/payments")
	payments.Use(middleware.JWTMiddleware())

	collectors := middleware.RequireUserType(models.UserTypeLandlord, models.UserTypeAgent, models.UserTypeAgency)

	payments.POST("", paymentController.CreatePayment, collectors)
	payments.GET("/:id", paymentController.GetPayment)
	payments.PUT("/:id/amount", paymentController.UpdatePaymentAmount, collectors)
	payments.PUT("/:id/status", paymentController.UpdatePaymentStatus, collectors)

	leases := e.Group("/api/leases")
	leases.Use(middleware.JWTMiddleware())
	leases.GET("/:id/payments", paymentController.ListPaymentsByLease)
}
