package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// Transaction is a ledger entry tied to one quantity change of one item.
// ItemID is a real foreign key (SET NULL on item deletion) so a transaction
// can outlive its item; resolving a rejected sale whose item is gone is a
// per-transaction error.
type Transaction struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	UPIDetailID uuid.UUID               `gorm:"column:upi_detail_id;type:uuid;not null;index"`
	UPIDetail   *UPIDetail              `gorm:"foreignKey:UPIDetailID;constraint:OnDelete:CASCADE"`
	ExternalID  string                  `gorm:"column:external_id;not null;uniqueIndex"`
	Amount      decimal.Decimal         `gorm:"column:amount;type:numeric(12,2);not null"`
	ItemID      *uuid.UUID              `gorm:"column:item_id;type:uuid;index"`
	Item        *Item                   `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL"`
	Unit        int                     `gorm:"column:unit;not null"`
	Status      enums.TransactionStatus `gorm:"column:status;not null;default:'pending'"`
	Type        enums.TransactionType   `gorm:"column:type;not null"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
