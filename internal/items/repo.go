package items

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
)

// Selector identifies an item structurally inside a business: supplier
// identity plus the item descriptor. Attribute filtering happens after the
// structural query.
type Selector struct {
	BusinessID      uuid.UUID
	Category        string
	DistributorName string
	Name            string
	Type            string
	Size            string
	UnitOfMeasure   string
}

// Repository exposes item persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an items repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts an item.
func (r *Repository) Create(ctx context.Context, i *models.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

// FindByID loads an item by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var i models.Item
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// FindBySelector returns the structural candidates for a selector, ordered
// by creation time so "first candidate" is deterministic.
func (r *Repository) FindBySelector(ctx context.Context, sel Selector) ([]models.Item, error) {
	var out []models.Item
	err := r.db.WithContext(ctx).
		Joins("JOIN suppliers ON suppliers.id = items.supplier_id").
		Where("suppliers.business_id = ?", sel.BusinessID).
		Where("suppliers.category = ?", sel.Category).
		Where("suppliers.distributor_name = ?", sel.DistributorName).
		Where("items.name = ? AND items.type = ? AND items.size = ? AND items.unit_of_measure = ?",
			sel.Name, sel.Type, sel.Size, sel.UnitOfMeasure).
		Order("items.created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListBySupplier returns every item under a supplier.
func (r *Repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Item, error) {
	var out []models.Item
	err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("name").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search filters a business's items by name substring and/or type.
func (r *Repository) Search(ctx context.Context, businessID uuid.UUID, name, itemType string) ([]models.Item, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN suppliers ON suppliers.id = items.supplier_id").
		Where("suppliers.business_id = ?", businessID)
	if name != "" {
		q = q.Where("lower(items.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if itemType != "" {
		q = q.Where("items.type = ?", itemType)
	}
	var out []models.Item
	if err := q.Order("items.name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListLowStock returns a business's items at or below their alert threshold.
func (r *Repository) ListLowStock(ctx context.Context, businessID uuid.UUID) ([]models.Item, error) {
	var out []models.Item
	err := r.db.WithContext(ctx).
		Joins("JOIN suppliers ON suppliers.id = items.supplier_id").
		Where("suppliers.business_id = ?", businessID).
		Where("items.quantity <= items.alert_quantity").
		Order("items.quantity").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BelongsToBusiness reports whether the item's supplier is registered under
// the business.
func (r *Repository) BelongsToBusiness(ctx context.Context, itemID, businessID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN suppliers ON suppliers.id = items.supplier_id").
		Where("items.id = ? AND suppliers.business_id = ?", itemID, businessID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists the provided column map for an item.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes an item.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}

// AdjustQuantity applies a quantity delta with a non-negative guard. The
// UPDATE carries the guard in its predicate so concurrent writers cannot
// drive the quantity below zero; RowsAffected reports whether it applied.
func (r *Repository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
