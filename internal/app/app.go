package app

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminHandler "github.com/msmkdenis/yap-foodorder/internal/admin/handler"
	adminService "github.com/msmkdenis/yap-foodorder/internal/admin/service"
	analysisCache "github.com/msmkdenis/yap-foodorder/internal/analysis/cache"
	"github.com/msmkdenis/yap-foodorder/internal/analysis/gateway"
	analysisHandler "github.com/msmkdenis/yap-foodorder/internal/analysis/handler"
	analysisService "github.com/msmkdenis/yap-foodorder/internal/analysis/service"
	"github.com/msmkdenis/yap-foodorder/internal/clock"
	"github.com/msmkdenis/yap-foodorder/internal/config"
	db "github.com/msmkdenis/yap-foodorder/internal/database"
	"github.com/msmkdenis/yap-foodorder/internal/middleware"
	orderHandler "github.com/msmkdenis/yap-foodorder/internal/order/handler"
	orderRepository "github.com/msmkdenis/yap-foodorder/internal/order/repository"
	orderService "github.com/msmkdenis/yap-foodorder/internal/order/service"
	"github.com/msmkdenis/yap-foodorder/internal/order/validation"
	"github.com/msmkdenis/yap-foodorder/internal/web"
)

const pageTitle = "Food Calorie, Cost & Order App"

// OrderStore is the record store shared by the order workflow and the admin query.
type OrderStore interface {
	orderService.OrderRepository
	adminService.OrderRepository
}

func Run(quit <-chan os.Signal) {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Unable to read configuration: ", err)
	}

	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		log.Fatal("Unable to initialize zap logger: ", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err = cfg.Validate(); err != nil {
		logger.Fatal("GOOGLE_API_KEY not found, add it to the environment or pass -k", zap.Error(err))
	}

	store, closeStore := initOrderStore(cfg, logger)
	defer closeStore()

	analyzer, err := gateway.NewGenAIGateway(context.Background(), gateway.Options{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.GenAIBaseURL,
		Timeout: cfg.InferenceTimeout,
		RPS:     cfg.InferenceRPS,
	}, logger)
	if err != nil {
		logger.Fatal("Unable to create inference gateway", zap.Error(err))
	}

	var estimateCache analysisService.Cache
	if cfg.RedisAddr != "" {
		redisCache, errCache := initEstimateCache(cfg.RedisAddr)
		if errCache != nil {
			logger.Warn("Redis is unreachable, estimate cache disabled", zap.String("redis", cfg.RedisAddr), zap.Error(errCache))
		} else {
			defer redisCache.Close()
			estimateCache = redisCache
			logger.Info("Estimate cache enabled", zap.String("redis", cfg.RedisAddr))
		}
	}

	orderServ := orderService.NewOrderService(store, validation.NewValidator(cfg.CardLuhnCheck), logger)
	analysisServ := analysisService.NewAnalysisService(analyzer, cfg.CaloriePrompt, cfg.CostPrompt, estimateCache, cfg.CacheTTL, logger)
	adminServ, err := adminService.NewAdminService(store, cfg.AdminSecret, bcrypt.DefaultCost, logger)
	if err != nil {
		logger.Fatal("Unable to create admin service", zap.Error(err))
	}

	renderer, err := web.NewTemplateRenderer()
	if err != nil {
		logger.Fatal("Unable to parse templates", zap.Error(err))
	}

	requestLogger := middleware.InitRequestLogger(logger)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(requestLogger.RequestLogger())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.Compress())
	e.Use(middleware.Decompress())

	web.NewPageHandler(e, renderer, web.Page{Title: pageTitle, AdminEnabled: cfg.AdminSecret != ""})
	orderHandler.NewOrderHandler(e, orderServ, logger)
	analysisHandler.NewAnalysisHandler(e, analysisServ, logger)
	adminHandler.NewAdminHandler(e, adminServ, logger)

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	go func() {
		<-quit

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if errShutdown := e.Shutdown(shutdownCtx); errShutdown != nil {
			logger.Error("Unable to shutdown server", zap.Error(errShutdown))
		}
		serverStopCtx()
	}()

	logger.Info("Starting server", zap.String("address", cfg.Address))
	errStart := e.Start(cfg.Address)
	if errStart != nil && !errors.Is(errStart, http.ErrServerClosed) {
		logger.Fatal("Unable to start server", zap.Error(errStart))
	}

	<-serverCtx.Done()
}

// newLogger writes to stderr and, when set, to logFile as well.
func newLogger(logFile string) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if logFile != "" {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, logFile)
	}
	return zapConfig.Build()
}

// initOrderStore opens Postgres when DATABASE_URI is set and the local SQLite
// file otherwise, then brings the schema up to date.
func initOrderStore(cfg *config.Config, logger *zap.Logger) (OrderStore, func()) {
	if cfg.DatabaseURI != "" {
		postgresPool, err := db.NewPostgresPool(cfg.DatabaseURI, logger)
		if err != nil {
			logger.Fatal("Unable to connect to database", zap.Error(err))
		}

		migrations, err := db.NewPostgresMigrations(cfg.DatabaseURI, logger)
		if err != nil {
			logger.Fatal("Unable to create migrations", zap.Error(err))
		}
		migrateUp(migrations, logger)

		return orderRepository.NewPostgresOrderRepository(postgresPool, clock.NewSystem(), logger), closer(postgresPool, logger)
	}

	sqlite, err := db.NewSQLite(cfg.SQLitePath, logger)
	if err != nil {
		logger.Fatal("Unable to open sqlite", zap.Error(err))
	}

	migrations, err := db.NewSQLiteMigrations(sqlite, logger)
	if err != nil {
		logger.Fatal("Unable to create migrations", zap.Error(err))
	}
	migrateUp(migrations, logger)

	return orderRepository.NewSQLiteOrderRepository(sqlite, clock.NewSystem(), logger), closer(sqlite, logger)
}

// initEstimateCache returns a cache only when Redis answers a ping.
func initEstimateCache(addr string) (*analysisCache.RedisCache, error) {
	redisCache := analysisCache.NewRedisCache(addr, "foodorder")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := redisCache.Ping(ctx); err != nil {
		_ = redisCache.Close()
		return nil, err
	}

	return redisCache, nil
}

func migrateUp(migrations *db.Migrations, logger *zap.Logger) {
	defer func() {
		if err := migrations.Close(); err != nil {
			logger.Warn("Unable to close migrations", zap.Error(err))
		}
	}()

	if err := migrations.MigrateUp(); err != nil {
		logger.Fatal("Unable to up migrations", zap.Error(err))
	}
}

func closer(c io.Closer, logger *zap.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Error("Unable to close order store", zap.Error(err))
		}
	}
}
