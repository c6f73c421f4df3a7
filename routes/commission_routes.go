package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/rentora_backend/controllers"
	"github.com/rentora/rentora_backend/middleware"
	"github.com/rentora/rentora_backend/models"
)

// RegisterCommissionRoutes sets up commission ledger reporting and payout
// administration routes
func RegisterCommissionRoutes(e *echo.Echo, commissionController *controllers.CommissionController) {
	ledger := e.Group("/api/ledger")
	ledger.Use(middleware.JWTMiddleware())

	// Three symmetric lookup paths, all returning the same triad
	ledger.GET("/by-payment/:id", commissionController.GetLedgerByPayment)
	ledger.GET("/by-commission/:id", commissionController.GetLedgerByCommission)
	ledger.GET("/by-payout/:id", commissionController.GetLedgerByPayout)

	commissions := e.Group("/api/commissions")
	commissions.Use(middleware.JWTMiddleware())
	commissions.GET("/agent/:id", commissionController.ListAgentCommissions)
	commissions.GET("/agency/:id", commissionController.ListAgencyCommissions)

	payouts := e.Group("/api/payouts")
	payouts.Use(middleware.JWTMiddleware())
	payouts.POST("/:id/adjustments", commissionController.AddPayoutAdjustment, middleware.RequireUserType(models.UserTypeLandlord, models.UserTypeAdmin))
	payouts.PUT("/:id/process", commissionController.MarkPayoutProcessed, middleware.RequireUserType(models.UserTypeAdmin))
	payouts.PUT("/:id/pay", commissionController.MarkPayoutPaid, middleware.RequireUserType(models.UserTypeAdmin))
}
