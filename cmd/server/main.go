package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	activityapp "github.com/nexbasket/backend/internal/application/activity"
	catalogapp "github.com/nexbasket/backend/internal/application/catalog"
	identityapp "github.com/nexbasket/backend/internal/application/identity"
	orderapp "github.com/nexbasket/backend/internal/application/order"
	reportapp "github.com/nexbasket/backend/internal/application/report"
	warehouseapp "github.com/nexbasket/backend/internal/application/warehouse"
	"github.com/nexbasket/backend/internal/infrastructure/auth"
	"github.com/nexbasket/backend/internal/infrastructure/cache"
	"github.com/nexbasket/backend/internal/infrastructure/config"
	"github.com/nexbasket/backend/internal/infrastructure/email"
	"github.com/nexbasket/backend/internal/infrastructure/logger"
	"github.com/nexbasket/backend/internal/infrastructure/payment"
	"github.com/nexbasket/backend/internal/infrastructure/persistence"
	"github.com/nexbasket/backend/internal/interfaces/http/handler"
	"github.com/nexbasket/backend/internal/interfaces/http/middleware"
	"github.com/nexbasket/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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
		_ = log.Sync()
	}()

	log.Info("Starting NexBasket backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

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

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	subCategoryRepo := persistence.NewGormSubCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Dashboard counts cache. Redis when available, otherwise an
	// in-process cache keeps single-node deployments working.
	var dashboardCache cache.DashboardCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory dashboard cache", zap.Error(err))
		dashboardCache = cache.NewMemoryDashboardCache()
	} else {
		dashboardCache = cache.NewRedisDashboardCache(redisClient)
	}
	cancelPing()

	// Payment gateway is optional. Without a key, orders are placed
	// unpaid and settled out of band.
	var paymentProvider payment.Provider
	if cfg.Payment.StripeSecretKey != "" {
		paymentProvider = payment.NewStripeProvider(cfg.Payment)
		log.Info("Stripe payments enabled")
	}

	var mailer email.Mailer
	if cfg.Email.Enabled && cfg.Email.APIKey != "" {
		mailer = email.NewResendMailer(cfg.Email.APIKey, cfg.Email.From)
	} else {
		mailer = email.NewLogMailer(log)
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	activityService := activityapp.NewService(activityRepo, log)
	identityService := identityapp.NewService(userRepo, jwtService, activityService)
	catalogService := catalogapp.NewService(categoryRepo, subCategoryRepo, productRepo, activityService)
	warehouseService := warehouseapp.NewService(warehouseRepo, stockRepo, activityService)
	orderService := orderapp.NewService(orderRepo, productRepo, warehouseRepo, userRepo,
		activityService, paymentProvider, mailer, log)
	reportService := reportapp.NewService(reportRepo, orderRepo, categoryRepo, subCategoryRepo,
		productRepo, warehouseRepo, userRepo, dashboardCache, cfg.Dashboard.CacheTTL, log)
	// Each recorded mutation drops the cached dashboard counts so the
	// dashboard never serves figures a write already skewed.
	activityService.SetCountsInvalidator(reportService)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.CORSFromConfig(cfg.HTTP)),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	authMW := middleware.JWTAuth(jwtService)
	staffMW := middleware.RequireRole("admin", "manager")

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewAuthHandler(identityService, authMW)).
		Register(handler.NewUserHandler(identityService, authMW, staffMW)).
		Register(handler.NewCatalogHandler(catalogService, authMW, staffMW)).
		Register(handler.NewWarehouseHandler(warehouseService, authMW, staffMW)).
		Register(handler.NewOrderHandler(orderService, authMW, staffMW)).
		Register(handler.NewDashboardHandler(reportService, activityService, authMW, staffMW))
	if paymentProvider != nil {
		if verifier, ok := paymentProvider.(handler.WebhookVerifier); ok {
			r.Register(handler.NewPaymentHandler(verifier, orderService, log))
		}
	}
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
