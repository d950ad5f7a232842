package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openModelDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:models?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return conn
}

// The sqlite test driver must accept the generated DDL for every model,
// and the resulting tables must carry the same names the goose
// migrations and the hand-written ledger/report joins use.
func TestAutoMigrateMatchesMigrationTableNames(t *testing.T) {
	conn := openModelDB(t)

	err := conn.AutoMigrate(
		&User{},
		&Business{},
		&BusinessWorker{},
		&Supplier{},
		&Item{},
		&UPIDetail{},
		&Transaction{},
		&Cart{},
		&CartItem{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	tables := []string{
		"users",
		"businesses",
		"business_workers",
		"suppliers",
		"items",
		"upi_details",
		"transactions",
		"carts",
		"cart_items",
	}
	for _, table := range tables {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("expected table %q to exist", table)
		}
	}

	t.Cleanup(func() {
		for _, table := range tables {
			conn.Exec("DROP TABLE IF EXISTS " + table)
		}
	})
}

func TestUPIDetailTableName(t *testing.T) {
	if got := (UPIDetail{}).TableName(); got != "upi_details" {
		t.Fatalf("expected upi_details, got %q", got)
	}
}

// Inserts rely on the BeforeCreate hooks for ids; the models carry no
// database-side uuid default.
func TestBeforeCreateMintsIDs(t *testing.T) {
	conn := openModelDB(t)
	if err := conn.AutoMigrate(&User{}, &Business{}, &UPIDetail{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	t.Cleanup(func() {
		conn.Exec("DELETE FROM upi_details")
		conn.Exec("DELETE FROM businesses")
		conn.Exec("DELETE FROM users")
	})

	user := User{Username: "hooked", Email: "hooked@example.com", PasswordHash: "x"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected user id to be minted on create")
	}

	biz := Business{OwnerID: user.ID, Name: "Hook Mart", Address: "1 Lane", City: "Pune", State: "MH", Country: "India"}
	if err := conn.Create(&biz).Error; err != nil {
		t.Fatalf("create business: %v", err)
	}

	detail := UPIDetail{BusinessID: biz.ID, UPIID: "hook@upi", PayeeName: "Hook Mart"}
	if err := conn.Create(&detail).Error; err != nil {
		t.Fatalf("create upi detail: %v", err)
	}
	if detail.ID == uuid.Nil {
		t.Fatal("expected upi detail id to be minted on create")
	}

	var found UPIDetail
	if err := conn.Table("upi_details").Where("business_id = ?", biz.ID).First(&found).Error; err != nil {
		t.Fatalf("read back upi detail: %v", err)
	}
	if found.UPIID != "hook@upi" {
		t.Fatalf("expected hook@upi, got %q", found.UPIID)
	}
}
