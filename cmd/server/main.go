package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apptenancy "github.com/bizsuite/backend/internal/application/tenancy"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/bizsuite/backend/internal/infrastructure/auth"
	"github.com/bizsuite/backend/internal/infrastructure/cache"
	"github.com/bizsuite/backend/internal/infrastructure/config"
	"github.com/bizsuite/backend/internal/infrastructure/logger"
	"github.com/bizsuite/backend/internal/infrastructure/persistence"
	"github.com/bizsuite/backend/internal/infrastructure/telemetry"
	"github.com/bizsuite/backend/internal/interfaces/http/handler"
	"github.com/bizsuite/backend/internal/interfaces/http/middleware"
	"github.com/bizsuite/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			BizSuite Backend API
//	@version		1.0
//	@description	Tenant and accounting period scope management for the BizSuite platform

//	@contact.name	API Support
//	@contact.url	https://github.com/bizsuite/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BizSuite Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)

	var scopeRepo tenancy.ScopeStateRepository
	switch cfg.Scope.Store {
	case "redis":
		store, err := cache.NewRedisScopeStateStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Scope.TTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis scope store", zap.Error(err))
		}
		scopeRepo = store
		log.Info("Scope state store: redis", zap.Duration("ttl", cfg.Scope.TTL))
	default:
		scopeRepo = persistence.NewGormScopeStateRepository(db.DB)
		log.Info("Scope state store: postgres")
	}

	gate := apptenancy.NewAccessGate()
	periodService := apptenancy.NewPeriodService(periodRepo, log)
	sessionService := apptenancy.NewSessionService(tenantRepo, periodRepo, scopeRepo, periodService, gate, log)
	directoryService := apptenancy.NewDirectoryService(tenantRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	sessionHandler := handler.NewSessionHandler(sessionService)
	periodHandler := handler.NewPeriodHandler(sessionService)
	tenantHandler := handler.NewTenantHandler(directoryService, gate)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
	}

	// Token validation is only enforced when a secret is configured.
	// Without one the service expects a trusted gateway in front and
	// reads the principal from the X-Principal-ID header.
	if cfg.JWT.Secret != "" {
		engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths: []string{
				"/health",
				"/api/v1/system/info",
				"/api/v1/system/ping",
			},
			Logger: log,
		}))
	} else {
		log.Warn("JWT secret not configured, running in gateway trust mode")
	}

	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine).
		Register(sessionHandler).
		Register(periodHandler).
		Register(tenantHandler).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
