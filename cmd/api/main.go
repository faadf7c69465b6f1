package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/notifier"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack is a personal finance tracker with accounts, transactions, budgets, loans, investments and Telegram-backed verification.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations and seed defaults
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	db := dbManager.DB()
	if err := database.Seed(db); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Background dispatcher and Telegram client
	dispatcher := notifier.NewAsync(64)
	defer dispatcher.Close()
	telegram := notifier.NewTelegram(appConfig.TelegramBotToken, appConfig.TelegramAPIBaseURL)

	// Initialize services
	userService := services.NewUserService(db)
	otpService := services.NewOTPService(db, telegram, appConfig.OTPExpiryMinutes, appConfig.MaxOTPRetries)
	activityService := services.NewActivityService(db, dispatcher)
	profileService := services.NewProfileService(db)
	accountService := services.NewAccountService(db, profileService)
	categoryService := services.NewCategoryService(db, profileService)
	transactionService := services.NewTransactionService(db, profileService, accountService)
	budgetService := services.NewBudgetService(db, profileService, categoryService)
	loanService := services.NewLoanService(db, profileService)
	investmentService := services.NewInvestmentService(db, profileService)
	currencyService := services.NewCurrencyService(db)
	reportService := services.NewReportService(db, profileService, currencyService)
	exportService := services.NewExportService(db, profileService, userService, telegram, dispatcher, appConfig.ExportDir)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, otpService, activityService)
	profileHandler := handlers.NewProfileHandler(profileService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	loanHandler := handlers.NewLoanHandler(loanService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService)
	reportHandler := handlers.NewReportHandler(reportService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/resend-otp", authHandler.ResendOTP)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/verify-reset-otp", authHandler.VerifyResetOTP)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.ActivityLogging(activityService))

	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/activity", authHandler.GetActivity)

	// Currency routes
	currencies := protected.Group("/currencies")
	currencies.GET("", currencyHandler.List)
	currencies.GET("/:code", currencyHandler.Get)
	currencies.PUT("/:code", currencyHandler.UpdateRate)

	// Profile routes
	profiles := protected.Group("/profiles")
	profiles.POST("", profileHandler.Create)
	profiles.GET("", profileHandler.List)
	profiles.GET("/:profileID", profileHandler.Get)
	profiles.PUT("/:profileID", profileHandler.Rename)
	profiles.POST("/:profileID/switch", profileHandler.Switch)
	profiles.DELETE("/:profileID", profileHandler.Delete)

	// Account routes
	accounts := profiles.Group("/:profileID/accounts")
	accounts.POST("", accountHandler.Create)
	accounts.GET("", accountHandler.List)
	accounts.GET("/:accountID", accountHandler.Get)
	accounts.PUT("/:accountID", accountHandler.Update)
	accounts.DELETE("/:accountID", accountHandler.Delete)

	// Category routes
	categories := profiles.Group("/:profileID/categories")
	categories.POST("", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.GET("/:categoryID", categoryHandler.Get)
	categories.PUT("/:categoryID", categoryHandler.Update)
	categories.DELETE("/:categoryID", categoryHandler.Delete)

	// Transaction routes
	transactions := profiles.Group("/:profileID/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:transactionID", transactionHandler.Get)
	transactions.PUT("/:transactionID", transactionHandler.Update)
	transactions.DELETE("/:transactionID", transactionHandler.Delete)

	// Budget routes
	budgets := profiles.Group("/:profileID/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/:budgetID", budgetHandler.Get)
	budgets.GET("/:budgetID/progress", budgetHandler.Progress)
	budgets.PUT("/:budgetID", budgetHandler.Update)
	budgets.DELETE("/:budgetID", budgetHandler.Delete)

	// Loan routes
	loans := profiles.Group("/:profileID/loans")
	loans.POST("", loanHandler.Create)
	loans.GET("", loanHandler.List)
	loans.GET("/:loanID", loanHandler.Get)
	loans.PUT("/:loanID", loanHandler.Update)
	loans.POST("/:loanID/payments", loanHandler.RecordPayment)
	loans.DELETE("/:loanID", loanHandler.Delete)

	// Investment routes
	investments := profiles.Group("/:profileID/investments")
	investments.POST("", investmentHandler.Create)
	investments.GET("", investmentHandler.List)
	investments.GET("/:investmentID", investmentHandler.Get)
	investments.PUT("/:investmentID", investmentHandler.Update)
	investments.DELETE("/:investmentID", investmentHandler.Delete)

	// Report routes
	reports := profiles.Group("/:profileID/reports")
	reports.GET("/dashboard", reportHandler.Dashboard)
	reports.GET("/monthly", reportHandler.Monthly)

	// Export routes
	export := profiles.Group("/:profileID/export")
	export.GET("/csv", exportHandler.CSV)
	export.GET("/xlsx", exportHandler.XLSX)
	export.POST("/snapshot", exportHandler.Snapshot)

	log.Infof("Starting Fintrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
