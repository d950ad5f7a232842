package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/internal/stock"
)

// AddItemRequest stages an item in the caller's cart.
type AddItemRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// UpdateItemRequest replaces the staged quantity of a cart line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// LineDTO is one staged cart line with its current catalog price.
type LineDTO struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartDTO is the caller's cart priced at current catalog rates.
type CartDTO struct {
	CartID uuid.UUID       `json:"cart_id"`
	Lines  []LineDTO       `json:"lines"`
	Total  decimal.Decimal `json:"total"`
}

// CheckoutResult reports the pending sale recorded for each drained line.
type CheckoutResult struct {
	Transactions []stock.DeltaResult `json:"transactions"`
	Total        decimal.Decimal     `json:"total"`
}
