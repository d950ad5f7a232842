package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kartiksheoranexe/InventoryManagement/api/controllers"
	"github.com/kartiksheoranexe/InventoryManagement/api/middleware"
	"github.com/kartiksheoranexe/InventoryManagement/internal/auth"
	"github.com/kartiksheoranexe/InventoryManagement/internal/business"
	"github.com/kartiksheoranexe/InventoryManagement/internal/cart"
	"github.com/kartiksheoranexe/InventoryManagement/internal/importer"
	"github.com/kartiksheoranexe/InventoryManagement/internal/items"
	"github.com/kartiksheoranexe/InventoryManagement/internal/ledger"
	"github.com/kartiksheoranexe/InventoryManagement/internal/reports"
	"github.com/kartiksheoranexe/InventoryManagement/internal/stock"
	"github.com/kartiksheoranexe/InventoryManagement/internal/suppliers"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/auth/session"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/config"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/logger"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/redis"
)

// Deps collects everything the router mounts. Grouping them in a
// struct keeps the cmd wiring readable as the service list grows.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB      db.Pinger
	Redis   *redis.Client
	Session session.AccessSessionChecker

	AuthService     auth.Service
	RegisterService auth.RegisterService
	BusinessService business.Service
	SupplierService suppliers.Service
	ItemService     items.Service
	StockService    stock.Service
	LedgerService   ledger.Service
	ImportService   importer.Service
	CartService     cart.Service
	ReportService   reports.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Session, logg))

		r.Route("/businesses", func(r chi.Router) {
			r.With(middleware.RequireRole(enums.UserRoleOwner.String(), logg)).Post("/", controllers.BusinessCreate(deps.BusinessService, logg))
			r.Get("/", controllers.BusinessList(deps.BusinessService, logg))

			r.Route("/{businessId}", func(r chi.Router) {
				r.Get("/", controllers.BusinessGet(deps.BusinessService, logg))
				r.Put("/", controllers.BusinessUpdate(deps.BusinessService, logg))
				r.Delete("/", controllers.BusinessDelete(deps.BusinessService, logg))

				r.Route("/workers", func(r chi.Router) {
					r.Get("/", controllers.BusinessListWorkers(deps.BusinessService, logg))
					r.Post("/", controllers.BusinessAddWorker(deps.BusinessService, logg))
					r.Delete("/{workerId}", controllers.BusinessRemoveWorker(deps.BusinessService, logg))
				})

				r.Route("/upi", func(r chi.Router) {
					r.Put("/", controllers.BusinessSetUPIDetail(deps.BusinessService, logg))
					r.Get("/", controllers.BusinessGetUPIDetail(deps.BusinessService, logg))
					r.Get("/qr", controllers.BusinessQRPayload(deps.BusinessService, logg))
				})

				r.Route("/suppliers", func(r chi.Router) {
					r.Post("/", controllers.SupplierCreate(deps.SupplierService, logg))
					r.Get("/", controllers.SupplierList(deps.SupplierService, logg))

					r.Route("/{supplierId}", func(r chi.Router) {
						r.Get("/", controllers.SupplierGet(deps.SupplierService, logg))
						r.Put("/", controllers.SupplierUpdate(deps.SupplierService, logg))
						r.Delete("/", controllers.SupplierDelete(deps.SupplierService, logg))

						r.Post("/items", controllers.ItemCreate(deps.ItemService, logg))
						r.Get("/items", controllers.ItemListBySupplier(deps.ItemService, logg))
					})
				})

				r.Route("/items", func(r chi.Router) {
					r.Get("/search", controllers.ItemSearch(deps.ItemService, logg))
					r.Get("/low-stock", controllers.ItemLowStock(deps.ItemService, logg))
					r.Post("/quantity", controllers.StockApplyDelta(deps.StockService, logg))

					r.Route("/{itemId}", func(r chi.Router) {
						r.Get("/", controllers.ItemGet(deps.ItemService, logg))
						r.Put("/", controllers.ItemUpdate(deps.ItemService, logg))
						r.Delete("/", controllers.ItemDelete(deps.ItemService, logg))
					})
				})

				r.Route("/transactions", func(r chi.Router) {
					r.Get("/", controllers.TransactionList(deps.LedgerService, logg))
					r.Post("/resolve", controllers.StockResolve(deps.StockService, logg))
					r.Get("/{transactionId}", controllers.TransactionGet(deps.LedgerService, logg))
				})

				r.Post("/imports/items", controllers.ImportItems(deps.ImportService, logg))

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", controllers.CartGet(deps.CartService, logg))
					r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
					r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.CartService, logg))
					r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.CartService, logg))
					r.Delete("/", controllers.CartClear(deps.CartService, logg))
					r.Post("/checkout", controllers.CartCheckout(deps.CartService, logg))
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/sales-performance", controllers.ReportSalesPerformance(deps.ReportService, logg))
					r.Get("/top-items", controllers.ReportTopItems(deps.ReportService, logg))
				})
			})
		})
	})

	return r
}
