package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Username     string         `gorm:"column:username;not null;uniqueIndex"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	DOB          *time.Time     `gorm:"column:dob;type:date"`
	Gender       *enums.Gender  `gorm:"column:gender;type:varchar(1)"`
	Phone        *string        `gorm:"column:phone;uniqueIndex"`
	Role         enums.UserRole `gorm:"column:role;not null;default:'worker'"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
