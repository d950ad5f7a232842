package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// Business is the tenant every supplier, item, and transaction hangs off.
// Deleting a business cascades through suppliers, items, carts, and workers.
type Business struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID   uuid.UUID           `gorm:"column:owner_id;type:uuid;not null"`
	Owner     *User               `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name      string              `gorm:"column:name;not null;uniqueIndex"`
	Type      *enums.BusinessType `gorm:"column:type;type:varchar(2)"`
	Address   string              `gorm:"column:address;not null"`
	City      string              `gorm:"column:city;not null"`
	State     string              `gorm:"column:state;not null"`
	Country   string              `gorm:"column:country;not null"`
	Phone     *string             `gorm:"column:phone"`
	Suppliers []Supplier          `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	Workers   []BusinessWorker    `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	UPIDetail *UPIDetail          `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
