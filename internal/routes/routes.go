// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"medipay/internal/handlers"
	"medipay/internal/middleware"
	"medipay/internal/models"
	"medipay/internal/repositories"
	"medipay/internal/services/consultation"
	"medipay/internal/services/wallet"
	"medipay/internal/services/withdrawal"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, logger *zap.Logger) {
	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	doctorRepo := repositories.NewDoctorRepository(db)
	consultationRepo := repositories.NewConsultationRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	walletService := wallet.NewService(
		walletRepo,
		repositories.CacheService,
		logger.Named("wallet"),
		&wallet.NoopMetricsCollector{},
	)
	withdrawalService := withdrawal.NewService(
		withdrawalRepo,
		walletRepo,
		doctorRepo,
		repositories.CacheService,
		logger.Named("withdrawal"),
	)
	consultationService := consultation.NewService(
		consultationRepo,
		settingsRepo,
		doctorRepo,
		walletService,
		logger.Named("consultation"),
	)

	// Initialize handlers
	walletHandler := handlers.NewWalletHandler(walletService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)
	adminHandler := handlers.NewAdminHandler(doctorRepo, settingsRepo)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Get("/health", handlers.HealthCheck)

	authMiddleware := middleware.NewAuthMiddleware()

	// Protected routes with auth middleware
	protected := api.Use(authMiddleware.Handler)

	setupDoctorRoutes(protected, walletHandler, withdrawalHandler, consultationHandler)
	setupAdminRoutes(app, authMiddleware, walletHandler, withdrawalHandler, consultationHandler, adminHandler)
}

func setupDoctorRoutes(router fiber.Router, walletHandler *handlers.WalletHandler, withdrawalHandler *handlers.WithdrawalHandler, consultationHandler *handlers.ConsultationHandler) {
	// Wallet routes
	walletGroup := router.Group("/wallet")
	walletGroup.Get("/", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)
	walletGroup.Get("/balance", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetBalance)

	// Withdrawal routes
	withdrawals := router.Group("/withdrawals")
	withdrawals.Post("/", middleware.HasPermission(models.PermissionWithdrawalWrite), withdrawalHandler.RequestWithdrawal)
	withdrawals.Get("/", middleware.HasPermission(models.PermissionWithdrawalRead), withdrawalHandler.ListMyWithdrawals)
	withdrawals.Get("/:id", middleware.HasPermission(models.PermissionWithdrawalRead), withdrawalHandler.GetWithdrawal)

	// Consultation history
	router.Get("/consultations", consultationHandler.ListMyConsultations)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, walletHandler *handlers.WalletHandler, withdrawalHandler *handlers.WithdrawalHandler, consultationHandler *handlers.ConsultationHandler, adminHandler *handlers.AdminHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	// Withdrawal review
	admin.Get("/withdrawals", withdrawalHandler.ListAllWithdrawals)
	admin.Get("/withdrawals/:id", withdrawalHandler.GetWithdrawal)
	admin.Post("/withdrawals/:id/approve", withdrawalHandler.ApproveWithdrawal)
	admin.Post("/withdrawals/:id/credit", withdrawalHandler.CreditWithdrawal)
	admin.Post("/withdrawals/:id/decline", withdrawalHandler.DeclineWithdrawal)

	// Consultation intake, driven by the signalling subsystem
	admin.Post("/consultations", consultationHandler.CreateConsultation)
	admin.Post("/consultations/completed", consultationHandler.RecordCompletedConsultation)
	admin.Post("/consultations/:id/complete", consultationHandler.CompleteConsultation)

	// Wallet oversight
	admin.Get("/doctors/:doctorID", adminHandler.GetDoctor)
	admin.Get("/doctors/:doctorID/wallet", walletHandler.GetDoctorWallet)
	admin.Post("/doctors/:doctorID/wallet/reconcile", walletHandler.ReconcileWallet)
	admin.Get("/payouts", adminHandler.GetPayouts)

	// Commission settings
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings", adminHandler.UpdateSettings)
}
