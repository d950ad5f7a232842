package models

import (
	"time"

	"github.com/google/uuid"
)

// UPIDetail is the single payment account registered for a business. Its UPI
// ID and payee name feed the upi://pay QR payload.
type UPIDetail struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"column:business_id;type:uuid;not null;uniqueIndex"`
	UPIID      string    `gorm:"column:upi_id;not null"`
	PayeeName  string    `gorm:"column:payee_name;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table gorm would otherwise derive as "up_idetails"
// from the initialism.
func (UPIDetail) TableName() string {
	return "upi_details"
}
