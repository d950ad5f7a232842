package items

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/internal/suppliers"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

type allowAllAccess struct{}

func (allowAllAccess) EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error {
	return nil
}

func setupItemTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:itemsvc?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Supplier{}, &models.Item{}))
	t.Cleanup(func() {
		_ = conn.Exec("DELETE FROM items").Error
		_ = conn.Exec("DELETE FROM suppliers").Error
	})
	return conn
}

func seedSupplier(t *testing.T, conn *gorm.DB, businessID uuid.UUID, category, distributor string) *models.Supplier {
	t.Helper()
	s := &models.Supplier{
		ID:              uuid.New(),
		BusinessID:      businessID,
		Category:        category,
		DistributorName: distributor,
	}
	require.NoError(t, conn.Create(s).Error)
	return s
}

func newTestItemService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(conn),
		Suppliers: suppliers.NewRepository(conn),
		Access:    allowAllAccess{},
	})
	require.NoError(t, err)
	return svc
}

func sampleItemRequest(name string, qty int) CreateItemRequest {
	return CreateItemRequest{
		Name:          name,
		Type:          "dairy",
		Size:          "1L",
		UnitOfMeasure: "bottle",
		Quantity:      qty,
		AlertQuantity: 5,
		Price:         decimal.RequireFromString("45.00"),
		COGS:          decimal.RequireFromString("38.00"),
	}
}

func TestCreateAndGetItem(t *testing.T) {
	conn := setupItemTestDB(t)
	svc := newTestItemService(t, conn)
	userID, businessID := uuid.New(), uuid.New()
	supplier := seedSupplier(t, conn, businessID, "Dairy", "Fresh Farms")

	req := sampleItemRequest("Milk", 20)
	req.AdditionalInfo = types.Attributes{"batch": "A1"}
	created, err := svc.Create(context.Background(), userID, businessID, supplier.ID, req)
	require.NoError(t, err)
	require.Equal(t, supplier.ID, created.SupplierID)
	require.Equal(t, 20, created.Quantity)

	got, err := svc.Get(context.Background(), userID, businessID, created.ID)
	require.NoError(t, err)
	require.Equal(t, "A1", got.AdditionalInfo["batch"])
}

func TestCreateItemRejectsForeignSupplier(t *testing.T) {
	conn := setupItemTestDB(t)
	svc := newTestItemService(t, conn)
	userID, businessID := uuid.New(), uuid.New()
	foreign := seedSupplier(t, conn, uuid.New(), "Dairy", "Fresh Farms")

	_, err := svc.Create(context.Background(), userID, businessID, foreign.ID, sampleItemRequest("Milk", 1))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSearchItems(t *testing.T) {
	conn := setupItemTestDB(t)
	svc := newTestItemService(t, conn)
	userID, businessID := uuid.New(), uuid.New()
	supplier := seedSupplier(t, conn, businessID, "Dairy", "Fresh Farms")

	for _, name := range []string{"Whole Milk", "Skim Milk", "Butter"} {
		_, err := svc.Create(context.Background(), userID, businessID, supplier.ID, sampleItemRequest(name, 10))
		require.NoError(t, err)
	}

	milk, err := svc.Search(context.Background(), userID, businessID, "milk", "")
	require.NoError(t, err)
	require.Len(t, milk, 2)

	all, err := svc.Search(context.Background(), userID, businessID, "", "dairy")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestListLowStockUsesInclusiveThreshold(t *testing.T) {
	conn := setupItemTestDB(t)
	svc := newTestItemService(t, conn)
	userID, businessID := uuid.New(), uuid.New()
	supplier := seedSupplier(t, conn, businessID, "Dairy", "Fresh Farms")

	// alert threshold is 5 in the sample request
	for _, tc := range []struct {
		name string
		qty  int
	}{
		{"At Threshold", 5}, {"Below", 2}, {"Above", 9},
	} {
		_, err := svc.Create(context.Background(), userID, businessID, supplier.ID, sampleItemRequest(tc.name, tc.qty))
		require.NoError(t, err)
	}

	low, err := svc.ListLowStock(context.Background(), userID, businessID)
	require.NoError(t, err)
	require.Len(t, low, 2)
	for _, item := range low {
		require.LessOrEqual(t, item.Quantity, item.AlertQuantity)
	}
}

func TestUpdateItemMergesAttributes(t *testing.T) {
	conn := setupItemTestDB(t)
	svc := newTestItemService(t, conn)
	userID, businessID := uuid.New(), uuid.New()
	supplier := seedSupplier(t, conn, businessID, "Dairy", "Fresh Farms")

	req := sampleItemRequest("Milk", 10)
	req.AdditionalInfo = types.Attributes{"batch": "A1", "flavor": "plain"}
	created, err := svc.Create(context.Background(), userID, businessID, supplier.ID, req)
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("48.00")
	updated, err := svc.Update(context.Background(), userID, businessID, created.ID, UpdateItemRequest{
		Price:          &newPrice,
		AdditionalInfo: types.Attributes{"batch": "B2", "origin": "local"},
	})
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(newPrice))
	require.Equal(t, "B2", updated.AdditionalInfo["batch"])
	require.Equal(t, "plain", updated.AdditionalInfo["flavor"])
	require.Equal(t, "local", updated.AdditionalInfo["origin"])
}

func TestFindBySelector(t *testing.T) {
	conn := setupItemTestDB(t)
	svc := newTestItemService(t, conn)
	repo := NewRepository(conn)
	userID, businessID := uuid.New(), uuid.New()
	supplier := seedSupplier(t, conn, businessID, "Dairy", "Fresh Farms")

	reqA := sampleItemRequest("Milk", 10)
	reqA.AdditionalInfo = types.Attributes{"batch": "A1"}
	_, err := svc.Create(context.Background(), userID, businessID, supplier.ID, reqA)
	require.NoError(t, err)

	reqB := sampleItemRequest("Milk", 4)
	reqB.AdditionalInfo = types.Attributes{"batch": "B2"}
	_, err = svc.Create(context.Background(), userID, businessID, supplier.ID, reqB)
	require.NoError(t, err)

	sel := Selector{
		BusinessID:      businessID,
		Category:        "Dairy",
		DistributorName: "Fresh Farms",
		Name:            "Milk",
		Type:            "dairy",
		Size:            "1L",
		UnitOfMeasure:   "bottle",
	}
	candidates, err := repo.FindBySelector(context.Background(), sel)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	sel.Name = "Butter"
	none, err := repo.FindBySelector(context.Background(), sel)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestAdjustQuantityGuardsNegative(t *testing.T) {
	conn := setupItemTestDB(t)
	svc := newTestItemService(t, conn)
	repo := NewRepository(conn)
	userID, businessID := uuid.New(), uuid.New()
	supplier := seedSupplier(t, conn, businessID, "Dairy", "Fresh Farms")

	created, err := svc.Create(context.Background(), userID, businessID, supplier.ID, sampleItemRequest("Milk", 3))
	require.NoError(t, err)

	applied, err := repo.AdjustQuantity(context.Background(), created.ID, -3)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = repo.AdjustQuantity(context.Background(), created.ID, -1)
	require.NoError(t, err)
	require.False(t, applied)

	item, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 0, item.Quantity)
}
