package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier groups items under a distributor within one business category.
type Supplier struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BusinessID      uuid.UUID `gorm:"column:business_id;type:uuid;not null;uniqueIndex:idx_supplier_identity"`
	Category        string    `gorm:"column:category;not null;uniqueIndex:idx_supplier_identity"`
	DistributorName string    `gorm:"column:distributor_name;not null;uniqueIndex:idx_supplier_identity"`
	Items           []Item    `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
