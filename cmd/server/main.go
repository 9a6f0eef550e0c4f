package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/afrostay/hotel-booking-backend/internal/config"
	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/handlers"
	"github.com/afrostay/hotel-booking-backend/internal/middleware"
	"github.com/afrostay/hotel-booking-backend/internal/models"
	"github.com/afrostay/hotel-booking-backend/internal/services"
	"github.com/afrostay/hotel-booking-backend/pkg/currency"
	"github.com/afrostay/hotel-booking-backend/pkg/jwt"
	"github.com/afrostay/hotel-booking-backend/pkg/mailer"
	"github.com/afrostay/hotel-booking-backend/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting AfroStay Hotel Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	userRepository := database.NewUserRepository(db)
	userSessionRepository := database.NewUserSessionRepository(db)
	verificationTokenRepository := database.NewVerificationTokenRepository(db)
	hotelRepository := database.NewHotelRepository(db)
	bookingRepository := database.NewBookingRepository(db)
	transactionRepository := database.NewTransactionRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	currencyValidator := validator.NewCurrencyValidator()

	rateProvider := currency.NewProvider(currency.ProviderConfig{
		APIURL:   cfg.Exchange.APIURL,
		Timeout:  cfg.Exchange.Timeout,
		CacheTTL: cfg.Exchange.CacheTTL,
	})
	converter := currency.NewConverter(cfg.Exchange.Strict)
	if cfg.Exchange.Strict {
		logger.Info("Currency conversion in strict mode: unknown codes are rejected")
	}

	catalogService := services.NewCatalogService()
	listingService := services.NewListingService(rateProvider)
	pricingService := services.NewPricingService(cfg.Booking.TaxRate)

	// Initialize mailer based on mode
	var verificationMailer mailer.Mailer
	if cfg.Mail.Mode == "production" {
		logger.Info("Initializing SMTP mailer in production mode...")
		smtpMailer, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			FromName: cfg.Mail.FromName,
		})
		if err != nil {
			logger.Fatalf("Failed to initialize SMTP mailer: %v", err)
		}
		verificationMailer = smtpMailer
	} else {
		logger.Info("Mailer in development mode (verification links are logged, not sent)")
		verificationMailer = mailer.NewDevMailer(logger)
	}
	logger.Infof("Mailer initialized: %s", verificationMailer.GetName())

	verificationService := services.NewVerificationService(
		verificationTokenRepository,
		userRepository,
		verificationMailer,
		cfg.Mail.VerifyURL,
		cfg.Mail.TokenTTL,
	)
	rateLimitService := services.NewRateLimitService(verificationTokenRepository, services.RateLimitConfig{
		MailRequests: cfg.RateLimit.MailRequests,
		MailWindow:   time.Duration(cfg.RateLimit.MailWindowMinutes) * time.Minute,
	})

	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(
		jwtService,
		verificationService,
		rateLimitService,
		userRepository,
		userSessionRepository,
		cfg,
		logger,
	)
	hotelHandler := handlers.NewHotelHandler(hotelRepository, catalogService, listingService, currencyValidator, logger)
	bookingHandler := handlers.NewBookingHandler(bookingRepository, hotelRepository, transactionRepository, pricingService, logger)
	currencyHandler := handlers.NewCurrencyHandler(rateProvider, converter, currencyValidator, logger)
	transactionHandler := handlers.NewTransactionHandler(transactionRepository, bookingRepository, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Authentication routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify-email", authHandler.VerifyEmail)
			auth.POST("/refresh", authHandler.Refresh)

			// Protected routes (require JWT authentication)
			protected := auth.Group("")
			protected.Use(middleware.AuthMiddleware(jwtService))
			{
				protected.POST("/resend-verification", authHandler.ResendVerification)
				protected.GET("/profile", authHandler.GetProfile)
				protected.PUT("/profile", authHandler.UpdateProfile)
				protected.GET("/sessions", authHandler.ListSessions)
			}
		}

		// Hotel catalog routes
		hotels := v1.Group("/hotels")
		{
			// Public routes (no authentication)
			hotels.GET("", hotelHandler.List)
			hotels.GET("/countries", hotelHandler.Countries)
			hotels.GET("/countries/:country/cities", hotelHandler.Cities)
			hotels.GET("/:id", hotelHandler.Get)

			// Admin routes
			admin := hotels.Group("")
			admin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("", hotelHandler.Create)
				admin.PUT("/:id", hotelHandler.Update)
				admin.DELETE("/:id", hotelHandler.Delete)
				admin.GET("/stats", hotelHandler.Stats)
			}
		}

		// Booking routes (all protected, verified email required)
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthMiddleware(jwtService), middleware.RequireVerifiedEmail())
		{
			bookings.POST("/quote", bookingHandler.Quote)
			bookings.POST("", bookingHandler.Create)
			bookings.GET("", bookingHandler.List)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
		}

		// Currency routes (public)
		currencies := v1.Group("/currency")
		{
			currencies.POST("/convert", currencyHandler.Convert)
			currencies.GET("/rates", currencyHandler.Rates)
			currencies.GET("/supported", currencyHandler.Supported)
		}

		// Transaction routes (protected)
		transactions := v1.Group("/transactions")
		transactions.Use(middleware.AuthMiddleware(jwtService))
		{
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:reference", transactionHandler.Get)

			adminTx := transactions.Group("")
			adminTx.Use(middleware.RequireRole(models.RoleAdmin))
			{
				adminTx.PUT("/:reference/status", transactionHandler.UpdateStatus)
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if userCtx, exists := middleware.GetUserContext(c); exists {
			fields["user_id"] = userCtx.UserID
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
