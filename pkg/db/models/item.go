package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

// Item is a stocked product. Quantity is the on-hand count the reconciler
// mutates; it never goes below zero.
type Item struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SupplierID     uuid.UUID        `gorm:"column:supplier_id;type:uuid;not null;index"`
	Name           string           `gorm:"column:name;not null"`
	Type           string           `gorm:"column:type;not null"`
	Size           string           `gorm:"column:size;not null"`
	UnitOfMeasure  string           `gorm:"column:unit_of_measure;not null"`
	Quantity       int              `gorm:"column:quantity;not null;default:0"`
	AlertQuantity  int              `gorm:"column:alert_quantity;not null;default:0"`
	Price          decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	COGS           decimal.Decimal  `gorm:"column:cogs;type:numeric(12,2);not null"`
	ImportedDate   *time.Time       `gorm:"column:imported_date;type:date"`
	AdditionalInfo types.Attributes `gorm:"column:additional_info;type:jsonb"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
