package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// TransactionDTO is the transport shape for a ledger entry.
type TransactionDTO struct {
	ID          uuid.UUID               `json:"id"`
	ExternalID  string                  `json:"transaction_id"`
	UPIDetailID uuid.UUID               `json:"upi_detail_id"`
	ItemID      *uuid.UUID              `json:"item_id,omitempty"`
	Amount      decimal.Decimal         `json:"amount"`
	Unit        int                     `json:"unit"`
	Status      enums.TransactionStatus `json:"status"`
	Type        enums.TransactionType   `json:"type"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ListFilter narrows a business's ledger listing.
type ListFilter struct {
	Status *enums.TransactionStatus
	Type   *enums.TransactionType
	From   *time.Time
	To     *time.Time
}

func FromModel(t *models.Transaction) *TransactionDTO {
	if t == nil {
		return nil
	}
	return &TransactionDTO{
		ID:          t.ID,
		ExternalID:  t.ExternalID,
		UPIDetailID: t.UPIDetailID,
		ItemID:      t.ItemID,
		Amount:      t.Amount,
		Unit:        t.Unit,
		Status:      t.Status,
		Type:        t.Type,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
