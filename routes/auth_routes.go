package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rentora/rentora_backend/controllers"
	"github.com/rentora/rentora_backend/middleware"
)

// RegisterAuthRoutes sets up signup, login and logout routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	auth := e.Group("/api/auth")

	auth.POST("/signup", authController.Signup)
	auth.POST("/login", authController.Login)
	auth.POST("/logout", authController.Logout, middleware.JWTMiddleware())
}
