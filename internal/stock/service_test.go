package stock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

type allowAllAccess struct{}

func (allowAllAccess) EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error {
	return nil
}

type fixture struct {
	conn       *gorm.DB
	svc        Service
	businessID uuid.UUID
	userID     uuid.UUID
	supplier   *models.Supplier
	upiDetail  *models.UPIDetail
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:stocksvc?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Supplier{},
		&models.Item{},
		&models.UPIDetail{},
		&models.Transaction{},
	))
	t.Cleanup(func() {
		for _, table := range []string{"transactions", "items", "upi_details", "suppliers", "businesses", "users"} {
			_ = conn.Exec("DELETE FROM " + table).Error
		}
	})

	businessID := uuid.New()
	supplier := &models.Supplier{
		ID:              uuid.New(),
		BusinessID:      businessID,
		Category:        "Dairy",
		DistributorName: "Fresh Farms",
	}
	require.NoError(t, conn.Create(supplier).Error)

	detail := &models.UPIDetail{
		ID:         uuid.New(),
		BusinessID: businessID,
		UPIID:      "shop@okbank",
		PayeeName:  "Shop",
	}
	require.NoError(t, conn.Create(detail).Error)

	svc, err := NewService(ServiceParams{
		DB:     db.NewWithConn(conn),
		Access: allowAllAccess{},
	})
	require.NoError(t, err)

	return &fixture{
		conn:       conn,
		svc:        svc,
		businessID: businessID,
		userID:     uuid.New(),
		supplier:   supplier,
		upiDetail:  detail,
	}
}

func (f *fixture) seedItem(t *testing.T, name string, qty int, attrs types.Attributes) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:             uuid.New(),
		SupplierID:     f.supplier.ID,
		Name:           name,
		Type:           "dairy",
		Size:           "1L",
		UnitOfMeasure:  "bottle",
		Quantity:       qty,
		AlertQuantity:  2,
		Price:          decimal.RequireFromString("40.00"),
		COGS:           decimal.RequireFromString("32.00"),
		AdditionalInfo: attrs,
	}
	require.NoError(t, f.conn.Create(item).Error)
	return item
}

func (f *fixture) itemQuantity(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var item models.Item
	require.NoError(t, f.conn.First(&item, "id = ?", id).Error)
	return item.Quantity
}

func (f *fixture) transactionCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.conn.Model(&models.Transaction{}).Count(&count).Error)
	return count
}

func milkSelector() *SelectorRequest {
	return &SelectorRequest{
		Category:        "Dairy",
		DistributorName: "Fresh Farms",
		Name:            "Milk",
		Type:            "dairy",
		Size:            "1L",
		UnitOfMeasure:   "bottle",
	}
}

func TestApplyPositiveDeltaRecordsAddedTransaction(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)

	res, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		ItemID: &item.ID,
		Delta:  5,
	})
	require.NoError(t, err)
	require.Equal(t, enums.TransactionTypeAdded, res.Type)
	require.Equal(t, enums.TransactionStatusSuccess, res.Status)
	require.Equal(t, 15, res.Quantity)
	require.True(t, res.Amount.Equal(decimal.RequireFromString("200.00")))

	require.Equal(t, 15, f.itemQuantity(t, item.ID))
}

func TestApplyNegativeDeltaRecordsPendingSale(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)

	res, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		ItemID: &item.ID,
		Delta:  -4,
	})
	require.NoError(t, err)
	require.Equal(t, enums.TransactionTypeSold, res.Type)
	require.Equal(t, enums.TransactionStatusPending, res.Status)
	require.Equal(t, 6, res.Quantity)
	require.True(t, res.Amount.Equal(decimal.RequireFromString("160.00")))

	require.Equal(t, 6, f.itemQuantity(t, item.ID))
}

func TestApplyDeltaInsufficientQuantity(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 3, nil)

	_, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		ItemID: &item.ID,
		Delta:  -4,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// no mutation, no ledger entry
	require.Equal(t, 3, f.itemQuantity(t, item.ID))
	require.EqualValues(t, 0, f.transactionCount(t))
}

func TestApplyDeltaBySelectorWithAttributeFilter(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "Milk", 10, types.Attributes{"batch": "A1"})
	batchB := f.seedItem(t, "Milk", 7, types.Attributes{"batch": "B2"})

	res, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		Selector:       milkSelector(),
		Delta:          -2,
		AdditionalInfo: types.Attributes{"batch": "B2"},
	})
	require.NoError(t, err)
	require.Equal(t, batchB.ID, res.ItemID)
	require.Equal(t, 5, f.itemQuantity(t, batchB.ID))
}

func TestApplyDeltaAttributeMismatch(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, types.Attributes{"batch": "A1"})

	_, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		Selector:       milkSelector(),
		Delta:          -1,
		AdditionalInfo: types.Attributes{"batch": "Z9"},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
	require.Equal(t, "additional info doesn't match", typed.Message())
	require.Equal(t, 10, f.itemQuantity(t, item.ID))
}

func TestApplyDeltaByIDChecksAttributeFilter(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, types.Attributes{"batch": "A1"})

	_, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		ItemID:         &item.ID,
		Delta:          -1,
		AdditionalInfo: types.Attributes{"batch": "Z9"},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestApplyDeltaSelectorAmbiguousPicksFirstCreated(t *testing.T) {
	f := newFixture(t)
	first := f.seedItem(t, "Milk", 10, types.Attributes{"batch": "A1"})
	f.seedItem(t, "Milk", 10, types.Attributes{"batch": "B2"})
	// force a strict creation order so "first candidate" is unambiguous
	require.NoError(t, f.conn.Model(&models.Item{}).
		Where("id = ?", first.ID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	res, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		Selector: milkSelector(),
		Delta:    -1,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, res.ItemID)
}

func TestApplyDeltaUnknownSelector(t *testing.T) {
	f := newFixture(t)

	sel := milkSelector()
	sel.Name = "Cheese"
	_, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		Selector: sel,
		Delta:    1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func sellUnits(t *testing.T, f *fixture, itemID uuid.UUID, units int) string {
	t.Helper()
	res, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		ItemID: &itemID,
		Delta:  -units,
	})
	require.NoError(t, err)
	return res.TransactionID
}

func TestResolveConfirmedKeepsQuantity(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)
	txnID := sellUnits(t, f, item.ID, 4)

	res, err := f.svc.ResolveTransactions(context.Background(), f.userID, f.businessID, ResolveRequest{
		TransactionIDs: []string{txnID},
		Outcome:        OutcomeConfirmed,
	})
	require.NoError(t, err)
	require.Len(t, res.Resolved, 1)
	require.Equal(t, enums.TransactionStatusSuccess, res.Resolved[0].Status)
	require.Equal(t, 6, f.itemQuantity(t, item.ID))
}

func TestResolveRejectedRestocksQuantity(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)
	txnID := sellUnits(t, f, item.ID, 4)

	res, err := f.svc.ResolveTransactions(context.Background(), f.userID, f.businessID, ResolveRequest{
		TransactionIDs: []string{txnID},
		Outcome:        OutcomeRejected,
	})
	require.NoError(t, err)
	require.Equal(t, enums.TransactionStatusFailed, res.Resolved[0].Status)
	require.Equal(t, 4, res.Resolved[0].RestockedUnit)
	require.Equal(t, 10, f.itemQuantity(t, item.ID))
}

func TestResolveReplayIsRejectedWithoutDoubleRestock(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)
	txnID := sellUnits(t, f, item.ID, 4)

	_, err := f.svc.ResolveTransactions(context.Background(), f.userID, f.businessID, ResolveRequest{
		TransactionIDs: []string{txnID},
		Outcome:        OutcomeRejected,
	})
	require.NoError(t, err)

	_, err = f.svc.ResolveTransactions(context.Background(), f.userID, f.businessID, ResolveRequest{
		TransactionIDs: []string{txnID},
		Outcome:        OutcomeRejected,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// quantity credited exactly once
	require.Equal(t, 10, f.itemQuantity(t, item.ID))
}

func TestResolveAddedTransactionIsStateConflict(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)

	res, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		ItemID: &item.ID,
		Delta:  3,
	})
	require.NoError(t, err)

	_, err = f.svc.ResolveTransactions(context.Background(), f.userID, f.businessID, ResolveRequest{
		TransactionIDs: []string{res.TransactionID},
		Outcome:        OutcomeConfirmed,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestResolveBatchAbortsAtomically(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)
	good := sellUnits(t, f, item.ID, 2)

	_, err := f.svc.ResolveTransactions(context.Background(), f.userID, f.businessID, ResolveRequest{
		TransactionIDs: []string{good, "txn_missing"},
		Outcome:        OutcomeRejected,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// the known transaction stays pending and no restock happened
	var entry models.Transaction
	require.NoError(t, f.conn.First(&entry, "external_id = ?", good).Error)
	require.Equal(t, enums.TransactionStatusPending, entry.Status)
	require.Equal(t, 8, f.itemQuantity(t, item.ID))
}

func TestResolveInvalidOutcome(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResolveTransactions(context.Background(), f.userID, f.businessID, ResolveRequest{
		TransactionIDs: []string{"txn_x"},
		Outcome:        ResolutionOutcome("maybe"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestApplyDeltaRequiresPaymentAccount(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Milk", 10, nil)
	require.NoError(t, f.conn.Delete(&models.UPIDetail{}, "id = ?", f.upiDetail.ID).Error)

	_, err := f.svc.ApplyQuantityDelta(context.Background(), f.userID, f.businessID, ApplyDeltaRequest{
		ItemID: &item.ID,
		Delta:  -1,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// the quantity change rolled back with the transaction
	require.Equal(t, 10, f.itemQuantity(t, item.ID))
}
