package business

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/internal/users"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/config"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
)

func setupBusinessTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:businesssvc?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.BusinessWorker{},
		&models.UPIDetail{},
	))
	t.Cleanup(func() {
		for _, table := range []string{"upi_details", "business_workers", "businesses", "users"} {
			_ = conn.Exec("DELETE FROM " + table).Error
		}
	})
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, username string, role enums.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(conn),
		UserRepo:  users.NewRepository(conn),
		UPIConfig: config.UPIConfig{Currency: "INR"},
	})
	require.NoError(t, err)
	return svc
}

func TestCreateAndGetBusiness(t *testing.T) {
	conn := setupBusinessTestDB(t)
	svc := newTestService(t, conn)
	owner := seedUser(t, conn, "owner1", enums.UserRoleOwner)

	bt := enums.BusinessTypeGrocery
	created, err := svc.Create(context.Background(), owner.ID, CreateBusinessRequest{
		Name:    "Corner Store",
		Type:    &bt,
		Address: "12 Market Rd",
		City:    "Jaipur",
		State:   "RJ",
		Country: "IN",
	})
	require.NoError(t, err)
	require.Equal(t, owner.ID, created.OwnerID)

	got, err := svc.Get(context.Background(), owner.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Corner Store", got.Name)
}

func TestCreateBusinessRejectsDuplicateName(t *testing.T) {
	conn := setupBusinessTestDB(t)
	svc := newTestService(t, conn)
	owner := seedUser(t, conn, "owner2", enums.UserRoleOwner)

	req := CreateBusinessRequest{
		Name: "Unique Mart", Address: "a", City: "b", State: "c", Country: "d",
	}
	_, err := svc.Create(context.Background(), owner.ID, req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner.ID, req)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestWorkerAccessScoping(t *testing.T) {
	conn := setupBusinessTestDB(t)
	svc := newTestService(t, conn)
	owner := seedUser(t, conn, "owner3", enums.UserRoleOwner)
	worker := seedUser(t, conn, "worker3", enums.UserRoleWorker)
	outsider := seedUser(t, conn, "outsider3", enums.UserRoleWorker)

	created, err := svc.Create(context.Background(), owner.ID, CreateBusinessRequest{
		Name: "Scoped Mart", Address: "a", City: "b", State: "c", Country: "d",
	})
	require.NoError(t, err)

	// outsider gets forbidden, not a 404, because the business exists
	err = svc.EnsureAccess(context.Background(), outsider.ID, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.AddWorker(context.Background(), owner.ID, created.ID, worker.Username)
	require.NoError(t, err)
	require.NoError(t, svc.EnsureAccess(context.Background(), worker.ID, created.ID))

	// workers cannot manage the roster
	_, err = svc.AddWorker(context.Background(), worker.ID, created.ID, outsider.Username)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	require.NoError(t, svc.RemoveWorker(context.Background(), owner.ID, created.ID, worker.ID))
	err = svc.EnsureAccess(context.Background(), worker.ID, created.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestEnsureAccessUnknownBusiness(t *testing.T) {
	conn := setupBusinessTestDB(t)
	svc := newTestService(t, conn)
	user := seedUser(t, conn, "nobody", enums.UserRoleWorker)

	err := svc.EnsureAccess(context.Background(), user.ID, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUPIDetailLifecycle(t *testing.T) {
	conn := setupBusinessTestDB(t)
	svc := newTestService(t, conn)
	owner := seedUser(t, conn, "owner4", enums.UserRoleOwner)

	created, err := svc.Create(context.Background(), owner.ID, CreateBusinessRequest{
		Name: "QR Mart", Address: "a", City: "b", State: "c", Country: "d",
	})
	require.NoError(t, err)

	_, err = svc.GetUPIDetail(context.Background(), owner.ID, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	detail, err := svc.SetUPIDetail(context.Background(), owner.ID, created.ID, SetUPIDetailRequest{
		UPIID:     "qrmart@okbank",
		PayeeName: "QR Mart",
	})
	require.NoError(t, err)
	require.Equal(t, "qrmart@okbank", detail.UPIID)

	// replace keeps a single row per business
	updated, err := svc.SetUPIDetail(context.Background(), owner.ID, created.ID, SetUPIDetailRequest{
		UPIID:     "qrmart@otherbank",
		PayeeName: "QR Mart",
	})
	require.NoError(t, err)
	require.Equal(t, "qrmart@otherbank", updated.UPIID)
	require.Equal(t, detail.BusinessID, updated.BusinessID)

	var count int64
	require.NoError(t, conn.Model(&models.UPIDetail{}).Where("business_id = ?", created.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	qr, err := svc.BuildQRPayload(context.Background(), owner.ID, created.ID, decimal.RequireFromString("99.90"), "order", "txn-1")
	require.NoError(t, err)
	require.Contains(t, qr.Payload, "upi://pay?")
	require.Contains(t, qr.Payload, "am=99.90")
	require.Contains(t, qr.Payload, "cu=INR")
}
