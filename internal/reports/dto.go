package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// SalesLine aggregates the settled sales of one item in the window.
type SalesLine struct {
	ItemID          uuid.UUID       `json:"item_id"`
	ItemName        string          `json:"item_name"`
	DistributorName string          `json:"distributor_name"`
	Category        string          `json:"category"`
	Units           int             `json:"units"`
	Revenue         decimal.Decimal `json:"revenue"`
	COGS            decimal.Decimal `json:"cogs"`
	Profit          decimal.Decimal `json:"profit"`
	ProfitPercent   decimal.Decimal `json:"profit_percent"`
}

// SalesTotals is the grand-total row across every line.
type SalesTotals struct {
	Units         int             `json:"units"`
	Revenue       decimal.Decimal `json:"revenue"`
	COGS          decimal.Decimal `json:"cogs"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent decimal.Decimal `json:"profit_percent"`
}

// SalesPerformanceReport summarizes settled sales inside one time window.
type SalesPerformanceReport struct {
	Window enums.TimeWindow `json:"window"`
	From   time.Time        `json:"from"`
	To     time.Time        `json:"to"`
	Lines  []SalesLine      `json:"lines"`
	Total  SalesTotals      `json:"total"`
}

// TopItem ranks one item by settled sale units in the year.
type TopItem struct {
	Rank    int             `json:"rank"`
	ItemID  uuid.UUID       `json:"item_id"`
	Name    string          `json:"name"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
	COGS    decimal.Decimal `json:"cogs"`
	Profit  decimal.Decimal `json:"profit"`
}

// TopItemsReport lists the year's best sellers, most units first.
type TopItemsReport struct {
	Year  int       `json:"year"`
	Items []TopItem `json:"items"`
}
