package importer

import (
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/types"
)

// ImportRow is one structured catalog row, typically one spreadsheet line.
// Parsing the spreadsheet itself happens upstream of the API.
type ImportRow struct {
	Category        string           `json:"category" validate:"required"`
	DistributorName string           `json:"distributor_name" validate:"required"`
	Name            string           `json:"name" validate:"required"`
	Type            string           `json:"type" validate:"required"`
	Size            string           `json:"size" validate:"required"`
	UnitOfMeasure   string           `json:"unit_of_measure" validate:"required"`
	Quantity        int              `json:"quantity" validate:"gte=0"`
	AlertQuantity   int              `json:"alert_quantity" validate:"gte=0"`
	Price           decimal.Decimal  `json:"price"`
	COGS            decimal.Decimal  `json:"cogs"`
	ImportedDate    string           `json:"imported_date,omitempty"`
	AdditionalInfo  types.Attributes `json:"additional_info,omitempty"`
}

// ImportRequest carries the full batch.
type ImportRequest struct {
	Rows []ImportRow `json:"rows" validate:"required,min=1,dive"`
}

// ImportResult reports what the batch did. Created+Updated equals the row
// count on success; failures leave both at zero because the batch rolls
// back as a whole.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
