package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// salesRow is the raw aggregation scanned from the sales query.
type salesRow struct {
	ItemID          uuid.UUID       `gorm:"column:item_id"`
	ItemName        string          `gorm:"column:item_name"`
	DistributorName string          `gorm:"column:distributor_name"`
	Category        string          `gorm:"column:category"`
	Units           int             `gorm:"column:units"`
	Revenue         decimal.Decimal `gorm:"column:revenue"`
	UnitCOGS        decimal.Decimal `gorm:"column:unit_cogs"`
}

// topItemRow is the raw aggregation scanned from the ranking query.
type topItemRow struct {
	ItemID    uuid.UUID       `gorm:"column:item_id"`
	Name      string          `gorm:"column:name"`
	Units     int             `gorm:"column:units"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price"`
	UnitCOGS  decimal.Decimal `gorm:"column:unit_cogs"`
}

// Repository runs the reporting aggregations. Only settled sales count:
// pending entries are unconfirmed and failed ones were rolled back.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reports repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) settledSales(businessID uuid.UUID, from, to time.Time) *gorm.DB {
	return r.db.
		Model(&models.Transaction{}).
		Joins("JOIN upi_details ON upi_details.id = transactions.upi_detail_id").
		Joins("JOIN items ON items.id = transactions.item_id").
		Joins("JOIN suppliers ON suppliers.id = items.supplier_id").
		Where("upi_details.business_id = ?", businessID).
		Where("transactions.status = ?", enums.TransactionStatusSuccess).
		Where("transactions.type = ?", enums.TransactionTypeSold).
		Where("transactions.created_at >= ? AND transactions.created_at < ?", from, to)
}

// SalesByItem aggregates settled sale units and revenue per item inside
// [from, to).
func (r *Repository) SalesByItem(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]salesRow, error) {
	var rows []salesRow
	err := r.settledSales(businessID, from, to).
		WithContext(ctx).
		Select(`items.id AS item_id,
			items.name AS item_name,
			suppliers.distributor_name AS distributor_name,
			suppliers.category AS category,
			SUM(transactions.unit) AS units,
			SUM(transactions.amount) AS revenue,
			items.cogs AS unit_cogs`).
		Group("items.id, items.name, suppliers.distributor_name, suppliers.category, items.cogs").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopItemsByUnits returns the items with the most settled sale units inside
// [from, to), best seller first.
func (r *Repository) TopItemsByUnits(ctx context.Context, businessID uuid.UUID, from, to time.Time, limit int) ([]topItemRow, error) {
	var rows []topItemRow
	err := r.settledSales(businessID, from, to).
		WithContext(ctx).
		Select(`items.id AS item_id,
			items.name AS name,
			SUM(transactions.unit) AS units,
			items.price AS unit_price,
			items.cogs AS unit_cogs`).
		Group("items.id, items.name, items.price, items.cogs").
		Order("units DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
