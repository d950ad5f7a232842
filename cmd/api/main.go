package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kartiksheoranexe/InventoryManagement/api/routes"
	"github.com/kartiksheoranexe/InventoryManagement/internal/auth"
	"github.com/kartiksheoranexe/InventoryManagement/internal/business"
	"github.com/kartiksheoranexe/InventoryManagement/internal/cart"
	"github.com/kartiksheoranexe/InventoryManagement/internal/importer"
	"github.com/kartiksheoranexe/InventoryManagement/internal/items"
	"github.com/kartiksheoranexe/InventoryManagement/internal/ledger"
	"github.com/kartiksheoranexe/InventoryManagement/internal/reports"
	"github.com/kartiksheoranexe/InventoryManagement/internal/stock"
	"github.com/kartiksheoranexe/InventoryManagement/internal/suppliers"
	"github.com/kartiksheoranexe/InventoryManagement/internal/users"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/auth/session"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/config"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/logger"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/metrics"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/migrate"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(logg, "session manager", err)

	userRepo := users.NewRepository(dbClient.DB())

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	requireResource(logg, "register service", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	requireResource(logg, "auth service", err)

	businessService, err := business.NewService(business.ServiceParams{
		Repo:      business.NewRepository(dbClient.DB()),
		UserRepo:  userRepo,
		UPIConfig: cfg.UPI,
	})
	requireResource(logg, "business service", err)

	supplierService, err := suppliers.NewService(suppliers.ServiceParams{
		Repo:   suppliers.NewRepository(dbClient.DB()),
		Access: businessService,
	})
	requireResource(logg, "supplier service", err)

	itemService, err := items.NewService(items.ServiceParams{
		Repo:      items.NewRepository(dbClient.DB()),
		Suppliers: suppliers.NewRepository(dbClient.DB()),
		Access:    businessService,
	})
	requireResource(logg, "item service", err)

	stockMetrics := metrics.NewStockMetrics(prometheus.DefaultRegisterer)

	stockService, err := stock.NewService(stock.ServiceParams{
		DB:      dbClient,
		Access:  businessService,
		Metrics: stockMetrics,
	})
	requireResource(logg, "stock service", err)

	ledgerService, err := ledger.NewService(ledger.ServiceParams{
		Repo:   ledger.NewRepository(dbClient.DB()),
		Access: businessService,
	})
	requireResource(logg, "ledger service", err)

	importService, err := importer.NewService(importer.ServiceParams{
		DB:      dbClient,
		Access:  businessService,
		Metrics: stockMetrics,
	})
	requireResource(logg, "import service", err)

	cartService, err := cart.NewService(cart.ServiceParams{
		DB:     dbClient,
		Access: businessService,
		Stock:  stockService,
	})
	requireResource(logg, "cart service", err)

	reportService, err := reports.NewService(reports.ServiceParams{
		DB:     dbClient,
		Access: businessService,
	})
	requireResource(logg, "report service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Session:         sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			BusinessService: businessService,
			SupplierService: supplierService,
			ItemService:     itemService,
			StockService:    stockService,
			LedgerService:   ledgerService,
			ImportService:   importService,
			CartService:     cartService,
			ReportService:   reportService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shutting down gracefully")
	}
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "resource not working: "+resource, err)
	os.Exit(1)
}
