package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
)

// NewExternalID mints the externally visible transaction identifier.
func NewExternalID() string {
	return "txn_" + uuid.NewString()
}

// Repository exposes ledger persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a ledger repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a ledger entry.
func (r *Repository) Create(ctx context.Context, t *models.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByExternalID loads a ledger entry by its external transaction id,
// scoped to the business through its payment account.
func (r *Repository) FindByExternalID(ctx context.Context, businessID uuid.UUID, externalID string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.WithContext(ctx).
		Joins("JOIN upi_details ON upi_details.id = transactions.upi_detail_id").
		Where("upi_details.business_id = ?", businessID).
		Where("transactions.external_id = ?", externalID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByBusiness returns a business's ledger entries, newest first.
func (r *Repository) ListByBusiness(ctx context.Context, businessID uuid.UUID, filter ListFilter) ([]models.Transaction, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN upi_details ON upi_details.id = transactions.upi_detail_id").
		Where("upi_details.business_id = ?", businessID)
	if filter.Status != nil {
		q = q.Where("transactions.status = ?", *filter.Status)
	}
	if filter.Type != nil {
		q = q.Where("transactions.type = ?", *filter.Type)
	}
	if filter.From != nil {
		q = q.Where("transactions.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("transactions.created_at < ?", *filter.To)
	}

	var out []models.Transaction
	if err := q.Order("transactions.created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// TransitionStatus moves a pending entry to a terminal status. The pending
// predicate makes replays observable: zero rows means the entry was absent
// or already resolved.
func (r *Repository) TransitionStatus(ctx context.Context, id uuid.UUID, next enums.TransactionStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, enums.TransactionStatusPending).
		UpdateColumn("status", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
