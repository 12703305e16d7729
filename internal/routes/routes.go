// Package routes defines the API routing configuration. It wires
// repositories into services and services into handlers, then groups
// routes by the permissions they need.
package routes

import (
	"bux/internal/handlers"
	"bux/internal/middleware"
	"bux/internal/models"
	"bux/internal/repositories"
	"bux/internal/services/account"
	"bux/internal/services/auth"
	"bux/internal/services/transfer"
	"bux/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	transferRepo := repositories.NewTransferRepository(db)
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)

	// Services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo)
	accountService := account.NewService(accountRepo, repositories.CacheService)
	transferService := transfer.NewService(transferRepo, accountRepo, repositories.CacheService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transferHandler := handlers.NewTransferHandler(transferService)

	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected endpoints
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/balance", middleware.HasPermission(models.PermissionBalanceRead), accountHandler.GetBalance)
	protected.Get("/users", middleware.HasPermission(models.PermissionUserRead), userHandler.ListUsers)

	transfers := protected.Group("/transfers")
	transfers.Get("/", middleware.HasPermission(models.PermissionTransferRead), transferHandler.History)
	transfers.Get("/pending", middleware.HasPermission(models.PermissionTransferRead), transferHandler.PendingIncoming)
	transfers.Get("/:id", middleware.HasPermission(models.PermissionTransferRead), transferHandler.Get)
	transfers.Post("/send", middleware.HasPermission(models.PermissionTransferWrite), transferHandler.Send)
	transfers.Post("/request", middleware.HasPermission(models.PermissionTransferWrite), transferHandler.Request)
	transfers.Put("/:id/approve", middleware.HasPermission(models.PermissionTransferWrite), transferHandler.Approve)
	transfers.Post("/:id/reject", middleware.HasPermission(models.PermissionTransferWrite), transferHandler.Reject)
}
