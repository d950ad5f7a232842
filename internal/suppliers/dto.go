package suppliers

import (
	"time"

	"github.com/google/uuid"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
)

// CreateSupplierRequest registers a distributor under a business.
type CreateSupplierRequest struct {
	Category        string `json:"category" validate:"required"`
	DistributorName string `json:"distributor_name" validate:"required"`
}

// UpdateSupplierRequest carries the mutable supplier fields.
type UpdateSupplierRequest struct {
	Category        *string `json:"category,omitempty"`
	DistributorName *string `json:"distributor_name,omitempty"`
}

// SupplierDTO is the transport shape for a supplier.
type SupplierDTO struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"business_id"`
	Category        string    `json:"category"`
	DistributorName string    `json:"distributor_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromModel(s *models.Supplier) *SupplierDTO {
	if s == nil {
		return nil
	}
	return &SupplierDTO{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Category:        s.Category,
		DistributorName: s.DistributorName,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
