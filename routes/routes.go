package routes

import (
	"github.com/gofiber/fiber/v2"

	"gobank/controllers"
	"gobank/routes/middlewares"
)

// SetupRouter mounts the public and authenticated route groups on the app.
func SetupRouter(app *fiber.App, ctrl *controllers.Controllers) {
	apiV1 := app.Group("/api/v1")

	publicRoutes := apiV1.Group("/public")
	{
		publicRoutes.Post("/signup", ctrl.Signup)
		publicRoutes.Post("/login", ctrl.Login)
		publicRoutes.Get("/timestamp", controllers.GetTimestamp)
	}

	authRoutes := apiV1.Group("/auth", middlewares.Authenticate(ctrl.Clients))
	{
		authRoutes.Post("/logout", ctrl.Logout)
		authRoutes.Get("/profile", ctrl.GetProfile)
		authRoutes.Get("/accounts", ctrl.GetAccounts)
		authRoutes.Post("/accounts", ctrl.CreateAccount)
		authRoutes.Delete("/accounts/:number", ctrl.CloseAccount)
		authRoutes.Get("/accounts/:number/statement", ctrl.GetStatement)
		authRoutes.Post("/payments", ctrl.CreatePayment)
	}
}
