package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/despachante/backend/internal/application/billing"
	financeapp "github.com/despachante/backend/internal/application/finance"
	identityapp "github.com/despachante/backend/internal/application/identity"
	partnerapp "github.com/despachante/backend/internal/application/partner"
	reportapp "github.com/despachante/backend/internal/application/report"
	"github.com/despachante/backend/internal/domain/finance"
	"github.com/despachante/backend/internal/infrastructure/auth"
	"github.com/despachante/backend/internal/infrastructure/config"
	"github.com/despachante/backend/internal/infrastructure/logger"
	"github.com/despachante/backend/internal/infrastructure/persistence"
	"github.com/despachante/backend/internal/infrastructure/printing"
	"github.com/despachante/backend/internal/interfaces/http/handler"
	"github.com/despachante/backend/internal/interfaces/http/middleware"
	"github.com/despachante/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	log, err := logger.New(logCfg)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()
	log.Info("database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	orderRepo := persistence.NewGormServiceOrderRepository(db.DB)
	movementRepo := persistence.NewGormCashMovementRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	resolver := finance.NewReferenceResolver(orderRepo, expenseRepo)

	// Authentication
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := newTokenBlacklist(cfg, log)

	// Application services
	clientService := partnerapp.NewClientService(clientRepo)
	orderService := billingapp.NewServiceOrderService(orderRepo, movementRepo, clientRepo, txManager)
	expenseService := financeapp.NewExpenseService(expenseRepo, movementRepo, txManager)
	cashbookService := financeapp.NewCashbookService(movementRepo, resolver)
	aggregationService := reportapp.NewAggregationService(orderRepo, movementRepo, expenseRepo, clientRepo, resolver)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo)

	printer, closePrinter := newReportPrinter(cfg, log)
	defer closePrinter()

	engine := buildEngine(cfg, log)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, db)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.AuthWithConfig(middleware.AuthConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      []string{"/health", "/api/v1/health", "/api/v1/auth/login"},
		Logger:         log,
	}))
	r.Register(systemHandler)
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewClientHandler(clientService))
	r.Register(handler.NewServiceOrderHandler(orderService))
	r.Register(handler.NewExpenseHandler(expenseService))
	r.Register(handler.NewCashbookHandler(cashbookService))
	r.Register(handler.NewReportHandler(aggregationService, cashbookService, printer))
	r.Register(handler.NewUserHandler(userService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// buildEngine assembles the gin engine with the shared middleware stack.
func buildEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("invalid trusted proxies", zap.Error(err))
	}

	middleware.SetupValidator()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
	)
	return engine
}

// newTokenBlacklist connects to Redis when configured, falling back to
// the in-process blacklist so logout still works on a single instance.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	log.Info("token blacklist backed by redis",
		zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	return blacklist
}

// newReportPrinter builds the PDF pipeline, or returns a nil printer
// when printing is disabled. A nil printer disables the PDF endpoints.
func newReportPrinter(cfg *config.Config, log *zap.Logger) (handler.ReportPrinter, func()) {
	noop := func() {}
	if !cfg.Printing.Enabled {
		log.Info("pdf export disabled")
		return nil, noop
	}
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		ExecPath:    cfg.Printing.ChromePath,
		RenderDelay: cfg.Printing.RenderDelay,
		NoSandbox:   true,
		Logger:      log,
	})
	if err != nil {
		log.Warn("chrome renderer unavailable, pdf export disabled", zap.Error(err))
		return nil, noop
	}
	closeRenderer := func() {
		if err := renderer.Close(); err != nil {
			log.Error("failed to close chrome renderer", zap.Error(err))
		}
	}
	return printing.NewReportPrinter(renderer), closeRenderer
}
