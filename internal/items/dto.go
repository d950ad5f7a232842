package items

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

// CreateItemRequest registers an item under a supplier.
type CreateItemRequest struct {
	Name           string           `json:"name" validate:"required"`
	Type           string           `json:"type" validate:"required"`
	Size           string           `json:"size" validate:"required"`
	UnitOfMeasure  string           `json:"unit_of_measure" validate:"required"`
	Quantity       int              `json:"quantity" validate:"gte=0"`
	AlertQuantity  int              `json:"alert_quantity" validate:"gte=0"`
	Price          decimal.Decimal  `json:"price"`
	COGS           decimal.Decimal  `json:"cogs"`
	ImportedDate   *time.Time       `json:"imported_date,omitempty"`
	AdditionalInfo types.Attributes `json:"additional_info,omitempty"`
}

// UpdateItemRequest carries the mutable item fields. Nil means leave
// unchanged; AdditionalInfo merges over the stored attributes.
type UpdateItemRequest struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	Size           *string          `json:"size,omitempty"`
	UnitOfMeasure  *string          `json:"unit_of_measure,omitempty"`
	AlertQuantity  *int             `json:"alert_quantity,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	COGS           *decimal.Decimal `json:"cogs,omitempty"`
	ImportedDate   *time.Time       `json:"imported_date,omitempty"`
	AdditionalInfo types.Attributes `json:"additional_info,omitempty"`
}

// ItemDTO is the transport shape for an item.
type ItemDTO struct {
	ID             uuid.UUID        `json:"id"`
	SupplierID     uuid.UUID        `json:"supplier_id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Size           string           `json:"size"`
	UnitOfMeasure  string           `json:"unit_of_measure"`
	Quantity       int              `json:"quantity"`
	AlertQuantity  int              `json:"alert_quantity"`
	Price          decimal.Decimal  `json:"price"`
	COGS           decimal.Decimal  `json:"cogs"`
	ImportedDate   *time.Time       `json:"imported_date,omitempty"`
	AdditionalInfo types.Attributes `json:"additional_info,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func FromModel(i *models.Item) *ItemDTO {
	if i == nil {
		return nil
	}
	return &ItemDTO{
		ID:             i.ID,
		SupplierID:     i.SupplierID,
		Name:           i.Name,
		Type:           i.Type,
		Size:           i.Size,
		UnitOfMeasure:  i.UnitOfMeasure,
		Quantity:       i.Quantity,
		AlertQuantity:  i.AlertQuantity,
		Price:          i.Price,
		COGS:           i.COGS,
		ImportedDate:   i.ImportedDate,
		AdditionalInfo: i.AdditionalInfo,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
