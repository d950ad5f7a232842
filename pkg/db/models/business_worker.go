package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessWorker links a worker user to a business they operate for.
type BusinessWorker struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"column:business_id;type:uuid;not null;uniqueIndex:idx_business_worker"`
	WorkerID   uuid.UUID `gorm:"column:worker_id;type:uuid;not null;uniqueIndex:idx_business_worker"`
	Worker     *User     `gorm:"foreignKey:WorkerID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
