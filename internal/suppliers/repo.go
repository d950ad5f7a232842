package suppliers

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
)

// Repository exposes supplier persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a suppliers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a supplier.
func (r *Repository) Create(ctx context.Context, s *models.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindByID loads a supplier by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByIdentity loads a supplier by its (business, category, distributor) key.
func (r *Repository) FindByIdentity(ctx context.Context, businessID uuid.UUID, category, distributor string) (*models.Supplier, error) {
	var s models.Supplier
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND category = ? AND distributor_name = ?", businessID, category, distributor).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreate returns the supplier with the given identity, creating it when
// absent. Reports whether a row was created.
func (r *Repository) GetOrCreate(ctx context.Context, businessID uuid.UUID, category, distributor string) (*models.Supplier, bool, error) {
	existing, err := r.FindByIdentity(ctx, businessID, category, distributor)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	s := &models.Supplier{
		BusinessID:      businessID,
		Category:        category,
		DistributorName: distributor,
	}
	if err := r.Create(ctx, s); err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// ListByBusiness returns every supplier registered under a business.
func (r *Repository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Supplier, error) {
	var out []models.Supplier
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("category, distributor_name").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Search filters suppliers by category and/or distributor name substring.
func (r *Repository) Search(ctx context.Context, businessID uuid.UUID, category, distributor string) ([]models.Supplier, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if distributor != "" {
		q = q.Where("lower(distributor_name) LIKE ?", "%"+strings.ToLower(distributor)+"%")
	}
	var out []models.Supplier
	if err := q.Order("category, distributor_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update persists the provided column map for a supplier.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a supplier; its items cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Supplier{}, "id = ?", id).Error
}
