package stock

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

// ResolutionOutcome is the caller's verdict on a pending sale.
type ResolutionOutcome string

const (
	OutcomeConfirmed ResolutionOutcome = "confirmed"
	OutcomeRejected  ResolutionOutcome = "rejected"
)

// IsValid reports whether the outcome is one of the known verdicts.
func (o ResolutionOutcome) IsValid() bool {
	return o == OutcomeConfirmed || o == OutcomeRejected
}

// SelectorRequest identifies an item structurally when no id is at hand:
// supplier identity plus the item descriptor.
type SelectorRequest struct {
	Category        string `json:"category" validate:"required"`
	DistributorName string `json:"distributor_name" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Type            string `json:"type" validate:"required"`
	Size            string `json:"size" validate:"required"`
	UnitOfMeasure   string `json:"unit_of_measure" validate:"required"`
}

// ApplyDeltaRequest mutates an item's on-hand quantity. The item is
// addressed either directly by id or through a selector; the attribute
// filter narrows selector candidates.
type ApplyDeltaRequest struct {
	ItemID         *uuid.UUID       `json:"item_id,omitempty"`
	Selector       *SelectorRequest `json:"selector,omitempty"`
	Delta          int              `json:"delta"`
	AdditionalInfo types.Attributes `json:"additional_info,omitempty"`
}

// DeltaResult reports the applied mutation and its ledger entry.
type DeltaResult struct {
	TransactionID string                  `json:"transaction_id"`
	ItemID        uuid.UUID               `json:"item_id"`
	Delta         int                     `json:"delta"`
	Quantity      int                     `json:"quantity"`
	Amount        decimal.Decimal         `json:"amount"`
	Status        enums.TransactionStatus `json:"status"`
	Type          enums.TransactionType   `json:"type"`
}

// ResolveRequest settles pending sale transactions.
type ResolveRequest struct {
	TransactionIDs []string          `json:"transaction_ids" validate:"required,min=1"`
	Outcome        ResolutionOutcome `json:"outcome" validate:"required"`
}

// ResolvedTransaction reports one settled ledger entry.
type ResolvedTransaction struct {
	TransactionID string                  `json:"transaction_id"`
	Status        enums.TransactionStatus `json:"status"`
	ItemID        *uuid.UUID              `json:"item_id,omitempty"`
	RestockedUnit int                     `json:"restocked_unit,omitempty"`
}

// ResolveResult reports the whole settled batch.
type ResolveResult struct {
	Resolved []ResolvedTransaction `json:"resolved"`
}
