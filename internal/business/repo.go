package business

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
)

// Repository exposes business persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a business repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a business owned by the provided user.
func (r *Repository) Create(ctx context.Context, b *models.Business) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// FindByID loads a business by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ListForUser returns every business the user owns or works at.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Business, error) {
	var out []models.Business
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Or("id IN (?)", r.db.Model(&models.BusinessWorker{}).
			Select("business_id").
			Where("worker_id = ?", userID)).
		Order("name").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update persists the provided column map for a business.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a business; dependent rows cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Business{}, "id = ?", id).Error
}

// HasAccess reports whether the user owns the business or is a linked worker.
func (r *Repository) HasAccess(ctx context.Context, businessID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("id = ? AND owner_id = ?", businessID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = r.db.WithContext(ctx).
		Model(&models.BusinessWorker{}).
		Where("business_id = ? AND worker_id = ?", businessID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddWorker links a worker to a business, ignoring duplicates.
func (r *Repository) AddWorker(ctx context.Context, businessID, workerID uuid.UUID) error {
	link := models.BusinessWorker{BusinessID: businessID, WorkerID: workerID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// RemoveWorker unlinks a worker from a business. Returns the number of rows removed.
func (r *Repository) RemoveWorker(ctx context.Context, businessID, workerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("business_id = ? AND worker_id = ?", businessID, workerID).
		Delete(&models.BusinessWorker{})
	return res.RowsAffected, res.Error
}

// ListWorkers returns the workers linked to a business with user details.
func (r *Repository) ListWorkers(ctx context.Context, businessID uuid.UUID) ([]models.BusinessWorker, error) {
	var out []models.BusinessWorker
	err := r.db.WithContext(ctx).
		Preload("Worker").
		Where("business_id = ?", businessID).
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertUPIDetail creates or replaces the payment account for a business.
func (r *Repository) UpsertUPIDetail(ctx context.Context, detail *models.UPIDetail) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"upi_id", "payee_name", "updated_at"}),
		}).
		Create(detail).Error
}

// FindUPIDetail loads the payment account for a business.
func (r *Repository) FindUPIDetail(ctx context.Context, businessID uuid.UUID) (*models.UPIDetail, error) {
	var detail models.UPIDetail
	if err := r.db.WithContext(ctx).First(&detail, "business_id = ?", businessID).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}
