package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	benefitsapp "github.com/benefits/backend/internal/application/benefits"
	identityapp "github.com/benefits/backend/internal/application/identity"
	benefitsdomain "github.com/benefits/backend/internal/domain/benefits"
	"github.com/benefits/backend/internal/infrastructure/audit"
	"github.com/benefits/backend/internal/infrastructure/auth"
	"github.com/benefits/backend/internal/infrastructure/config"
	"github.com/benefits/backend/internal/infrastructure/logger"
	"github.com/benefits/backend/internal/infrastructure/persistence"
	"github.com/benefits/backend/internal/infrastructure/persistence/scope"
	"github.com/benefits/backend/internal/infrastructure/telemetry"
	"github.com/benefits/backend/internal/interfaces/http/handler"
	"github.com/benefits/backend/internal/interfaces/http/middleware"
	"github.com/benefits/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Benefits Backend API
//	@version		1.0
//	@description	Municipal benefits-eligibility backend with scoped data access

//	@contact.name	API Support
//	@contact.url	https://github.com/benefits/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Benefits Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize OpenTelemetry tracing (if enabled)
	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
			Enabled:           cfg.Telemetry.Enabled,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize tracer provider", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()

		// Register database query tracing
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
		log.Info("Telemetry enabled",
			zap.String("endpoint", cfg.Telemetry.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.Telemetry.SamplingRatio),
		)
	}

	// Bypass operations on scoped stores land here
	auditRecorder := audit.NewLogRecorder(log)

	// Missing-context policy for scoped stores. "allow" keeps migrations and
	// background jobs working outside a request; "reject" fails any store
	// operation that arrives without an installed scope context.
	scopePolicy := scope.AllowUnscoped
	if cfg.Scope.MissingContextPolicy == "reject" {
		scopePolicy = scope.RejectOperation
	}

	// Scoped stores for the benefits case data. Query fields whitelist what
	// list filters may touch; sort fields whitelist ORDER BY columns.
	requestStore := scope.NewStore[benefitsdomain.BenefitRequest](db.DB,
		scope.WithMissingContextPolicy(scopePolicy),
		scope.WithAuditRecorder(auditRecorder),
		scope.WithQueryFields(map[string]bool{"status": true, "type": true}),
		scope.WithSearchFields([]string{"summary"}),
		scope.WithSortFields(persistence.BenefitRequestSortFields),
	)
	documentStore := scope.NewStore[benefitsdomain.ReviewDocument](db.DB,
		scope.WithMissingContextPolicy(scopePolicy),
		scope.WithAuditRecorder(auditRecorder),
		scope.WithQueryFields(map[string]bool{"request_id": true, "kind": true, "verified": true}),
		scope.WithSortFields(persistence.ReviewDocumentSortFields),
	)
	paymentStore := scope.NewStore[benefitsdomain.PaymentOrder](db.DB,
		scope.WithMissingContextPolicy(scopePolicy),
		scope.WithAuditRecorder(auditRecorder),
		scope.WithQueryFields(map[string]bool{"status": true, "request_id": true}),
		scope.WithSortFields(persistence.PaymentOrderSortFields),
	)

	// Identity repositories. These are deliberately unscoped: authentication
	// has to look users up before any scope context exists.
	userRepo := persistence.NewGormUserRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, unitRepo, log)
	unitService := identityapp.NewUnitService(unitRepo, log)
	requestService := benefitsapp.NewRequestService(requestStore, log)
	documentService := benefitsapp.NewDocumentService(documentStore, requestStore, log)
	paymentService := benefitsapp.NewPaymentService(paymentStore, requestStore, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	unitHandler := handler.NewUnitHandler(unitService)
	requestHandler := handler.NewRequestHandler(requestService)
	documentHandler := handler.NewDocumentHandler(documentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	// 8. Tracing - OpenTelemetry spans (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Request tracing (if enabled)
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Public endpoints run without a token; everything else requires one
	publicPaths := []string{
		"/api/v1/auth/login",
		"/api/v1/auth/refresh",
		"/api/v1/ping",
		"/api/v1/system/ping",
		"/api/v1/system/info",
	}

	// JWT authentication, then scope context installation. The scope
	// middleware reads the validated claims and installs the caller's
	// data-access context on the request; stores downstream enforce it.
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      publicPaths,
		Logger:         log,
	}))

	scopeCfg := middleware.ScopeMiddlewareConfig{
		SkipPaths:        append([]string{"/health"}, publicPaths...),
		SkipPathPrefixes: cfg.Scope.SkipPathPrefixes,
		Logger:           log,
	}
	scopeCfg.SkipPaths = append(scopeCfg.SkipPaths, cfg.Scope.SkipPaths...)
	r.Use(middleware.ScopeMiddlewareWithConfig(scopeCfg))

	// Authentication - public routes
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)

	// Identity domain (session, users, units) - protected routes
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "identity service ready"})
	})

	// Session routes requiring authentication
	identityRoutes.POST("/auth/logout", authHandler.Logout)
	identityRoutes.GET("/auth/me", authHandler.GetCurrentUser)
	identityRoutes.PUT("/auth/password", authHandler.ChangePassword)

	// User management routes
	identityRoutes.POST("/users", userHandler.Create)
	identityRoutes.GET("/users", userHandler.List)
	identityRoutes.GET("/users/:id", userHandler.GetByID)
	identityRoutes.PUT("/users/:id", userHandler.Update)
	identityRoutes.DELETE("/users/:id", userHandler.Delete)
	identityRoutes.POST("/users/:id/activate", userHandler.Activate)
	identityRoutes.POST("/users/:id/deactivate", userHandler.Deactivate)
	identityRoutes.POST("/users/:id/unlock", userHandler.Unlock)
	identityRoutes.POST("/users/:id/force-logout", userHandler.ForceLogout)

	// District office routes
	identityRoutes.POST("/units", unitHandler.Create)
	identityRoutes.GET("/units", unitHandler.List)
	identityRoutes.GET("/units/code/:code", unitHandler.GetByCode)
	identityRoutes.GET("/units/:id", unitHandler.GetByID)
	identityRoutes.POST("/units/:id/rename", unitHandler.Rename)
	identityRoutes.POST("/units/:id/activate", unitHandler.Activate)
	identityRoutes.POST("/units/:id/deactivate", unitHandler.Deactivate)

	// Benefits domain (requests, documents, payments)
	benefitsRoutes := router.NewDomainGroup("benefits", "/benefits")
	benefitsRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "benefits service ready"})
	})

	// Benefit request routes
	benefitsRoutes.POST("/requests", requestHandler.Create)
	benefitsRoutes.GET("/requests", requestHandler.List)
	benefitsRoutes.GET("/requests/stats/status-breakdown", requestHandler.StatusBreakdown)
	benefitsRoutes.POST("/requests/export", requestHandler.Export)
	benefitsRoutes.GET("/requests/:id", requestHandler.GetByID)
	benefitsRoutes.DELETE("/requests/:id", requestHandler.Delete)
	benefitsRoutes.POST("/requests/:id/submit", requestHandler.Submit)
	benefitsRoutes.POST("/requests/:id/review", requestHandler.StartReview)
	benefitsRoutes.POST("/requests/:id/approve", requestHandler.Approve)
	benefitsRoutes.POST("/requests/:id/reject", requestHandler.Reject)

	// Review document routes
	benefitsRoutes.POST("/requests/:id/documents", documentHandler.Attach)
	benefitsRoutes.GET("/requests/:id/documents", documentHandler.ListByRequest)
	benefitsRoutes.GET("/documents/:id", documentHandler.GetByID)
	benefitsRoutes.POST("/documents/:id/verify", documentHandler.Verify)
	benefitsRoutes.DELETE("/documents/:id", documentHandler.Remove)

	// Payment order routes
	benefitsRoutes.POST("/payments", paymentHandler.Issue)
	benefitsRoutes.GET("/payments", paymentHandler.List)
	benefitsRoutes.GET("/payments/:id", paymentHandler.GetByID)
	benefitsRoutes.POST("/payments/:id/clear", paymentHandler.Clear)
	benefitsRoutes.POST("/payments/:id/cancel", paymentHandler.Cancel)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(identityRoutes).
		Register(benefitsRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
