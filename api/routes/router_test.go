package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

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
	pkgAuth "github.com/kartiksheoranexe/InventoryManagement/pkg/auth"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/auth/session"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/config"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/logger"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

type stubBusinessService struct{}

func (stubBusinessService) Create(ctx context.Context, ownerID uuid.UUID, req business.CreateBusinessRequest) (*business.BusinessDTO, error) {
	return &business.BusinessDTO{ID: uuid.New(), OwnerID: ownerID, Name: req.Name}, nil
}

func (stubBusinessService) Get(ctx context.Context, userID, businessID uuid.UUID) (*business.BusinessDTO, error) {
	return &business.BusinessDTO{ID: businessID}, nil
}

func (stubBusinessService) List(ctx context.Context, userID uuid.UUID) ([]business.BusinessDTO, error) {
	return []business.BusinessDTO{}, nil
}

func (stubBusinessService) Update(ctx context.Context, userID, businessID uuid.UUID, req business.UpdateBusinessRequest) (*business.BusinessDTO, error) {
	panic("unimplemented")
}

func (stubBusinessService) Delete(ctx context.Context, userID, businessID uuid.UUID) error {
	panic("unimplemented")
}

func (stubBusinessService) AddWorker(ctx context.Context, ownerID, businessID uuid.UUID, workerUsername string) (*business.WorkerDTO, error) {
	panic("unimplemented")
}

func (stubBusinessService) RemoveWorker(ctx context.Context, ownerID, businessID, workerID uuid.UUID) error {
	panic("unimplemented")
}

func (stubBusinessService) ListWorkers(ctx context.Context, userID, businessID uuid.UUID) ([]business.WorkerDTO, error) {
	panic("unimplemented")
}

func (stubBusinessService) SetUPIDetail(ctx context.Context, ownerID, businessID uuid.UUID, req business.SetUPIDetailRequest) (*business.UPIDetailDTO, error) {
	panic("unimplemented")
}

func (stubBusinessService) GetUPIDetail(ctx context.Context, userID, businessID uuid.UUID) (*business.UPIDetailDTO, error) {
	panic("unimplemented")
}

func (stubBusinessService) BuildQRPayload(ctx context.Context, userID, businessID uuid.UUID, amount decimal.Decimal, note, reference string) (*business.QRPayloadDTO, error) {
	panic("unimplemented")
}

func (stubBusinessService) EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error {
	return nil
}

type stubSupplierService struct{}

func (stubSupplierService) Create(ctx context.Context, userID, businessID uuid.UUID, req suppliers.CreateSupplierRequest) (*suppliers.SupplierDTO, error) {
	panic("unimplemented")
}

func (stubSupplierService) Get(ctx context.Context, userID, businessID, supplierID uuid.UUID) (*suppliers.SupplierDTO, error) {
	panic("unimplemented")
}

func (stubSupplierService) List(ctx context.Context, userID, businessID uuid.UUID) ([]suppliers.SupplierDTO, error) {
	return []suppliers.SupplierDTO{}, nil
}

func (stubSupplierService) Search(ctx context.Context, userID, businessID uuid.UUID, category, distributor string) ([]suppliers.SupplierDTO, error) {
	panic("unimplemented")
}

func (stubSupplierService) Update(ctx context.Context, userID, businessID, supplierID uuid.UUID, req suppliers.UpdateSupplierRequest) (*suppliers.SupplierDTO, error) {
	panic("unimplemented")
}

func (stubSupplierService) Delete(ctx context.Context, userID, businessID, supplierID uuid.UUID) error {
	panic("unimplemented")
}

type stubItemService struct{}

func (stubItemService) Create(ctx context.Context, userID, businessID, supplierID uuid.UUID, req items.CreateItemRequest) (*items.ItemDTO, error) {
	panic("unimplemented")
}

func (stubItemService) Get(ctx context.Context, userID, businessID, itemID uuid.UUID) (*items.ItemDTO, error) {
	panic("unimplemented")
}

func (stubItemService) ListBySupplier(ctx context.Context, userID, businessID, supplierID uuid.UUID) ([]items.ItemDTO, error) {
	panic("unimplemented")
}

func (stubItemService) Search(ctx context.Context, userID, businessID uuid.UUID, name, itemType string) ([]items.ItemDTO, error) {
	panic("unimplemented")
}

func (stubItemService) ListLowStock(ctx context.Context, userID, businessID uuid.UUID) ([]items.ItemDTO, error) {
	panic("unimplemented")
}

func (stubItemService) Update(ctx context.Context, userID, businessID, itemID uuid.UUID, req items.UpdateItemRequest) (*items.ItemDTO, error) {
	panic("unimplemented")
}

func (stubItemService) Delete(ctx context.Context, userID, businessID, itemID uuid.UUID) error {
	panic("unimplemented")
}

type stubStockService struct{}

func (stubStockService) ApplyQuantityDelta(ctx context.Context, userID, businessID uuid.UUID, req stock.ApplyDeltaRequest) (*stock.DeltaResult, error) {
	panic("unimplemented")
}

func (stubStockService) ResolveTransactions(ctx context.Context, userID, businessID uuid.UUID, req stock.ResolveRequest) (*stock.ResolveResult, error) {
	panic("unimplemented")
}

type stubLedgerService struct{}

func (stubLedgerService) List(ctx context.Context, userID, businessID uuid.UUID, filter ledger.ListFilter) ([]ledger.TransactionDTO, error) {
	return []ledger.TransactionDTO{}, nil
}

func (stubLedgerService) Get(ctx context.Context, userID, businessID uuid.UUID, externalID string) (*ledger.TransactionDTO, error) {
	panic("unimplemented")
}

type stubImportService struct{}

func (stubImportService) Import(ctx context.Context, userID, businessID uuid.UUID, req importer.ImportRequest) (*importer.ImportResult, error) {
	panic("unimplemented")
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, userID, businessID uuid.UUID) (*cart.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) AddItem(ctx context.Context, userID, businessID uuid.UUID, req cart.AddItemRequest) (*cart.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) UpdateItem(ctx context.Context, userID, businessID, itemID uuid.UUID, req cart.UpdateItemRequest) (*cart.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) RemoveItem(ctx context.Context, userID, businessID, itemID uuid.UUID) (*cart.CartDTO, error) {
	panic("unimplemented")
}

func (stubCartService) Clear(ctx context.Context, userID, businessID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCartService) Checkout(ctx context.Context, userID, businessID uuid.UUID) (*cart.CheckoutResult, error) {
	panic("unimplemented")
}

type stubReportService struct{}

func (stubReportService) SalesPerformance(ctx context.Context, userID, businessID uuid.UUID, window enums.TimeWindow) (*reports.SalesPerformanceReport, error) {
	panic("unimplemented")
}

func (stubReportService) TopItems(ctx context.Context, userID, businessID uuid.UUID, year int) (*reports.TopItemsReport, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:          cfg,
		Logger:          logg,
		DB:              stubPinger{},
		Redis:           (*redis.Client)(nil),
		Session:         stubSessionManager{},
		AuthService:     stubAuthService{},
		RegisterService: stubRegisterService{},
		BusinessService: stubBusinessService{},
		SupplierService: stubSupplierService{},
		ItemService:     stubItemService{},
		StockService:    stubStockService{},
		LedgerService:   stubLedgerService{},
		ImportService:   stubImportService{},
		CartService:     stubCartService{},
		ReportService:   stubReportService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "router-test",
		Role:     role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleWorker))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for business list got %d", resp.Code)
	}
}

func TestBusinessCreateRequiresOwnerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"name":"Corner Store","address":"12 Main Rd","city":"Jaipur","state":"Rajasthan","country":"India"}`

	worker := httptest.NewRequest(http.MethodPost, "/api/v1/businesses", strings.NewReader(body))
	worker.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleWorker))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, worker)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for worker got %d", resp.Code)
	}

	owner := httptest.NewRequest(http.MethodPost, "/api/v1/businesses", strings.NewReader(body))
	owner.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleOwner))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, owner)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for owner got %d", resp.Code)
	}
}

func TestTransactionListRoutesThroughBusinessScope(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	target := fmt.Sprintf("/api/v1/businesses/%s/transactions", uuid.New())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleOwner))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for ledger list got %d", resp.Code)
	}
}
