package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/internal/items"
	"github.com/kartiksheoranexe/InventoryManagement/internal/suppliers"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/metrics"
)

// importedDateLayout is the calendar-date format spreadsheet rows carry.
const importedDateLayout = "2006-01-02"

// Service ingests structured catalog rows in bulk. A row matching an
// existing item overwrites its stock figures and merges attributes; an
// unknown row creates the supplier and item as needed. The batch is
// all-or-nothing.
type Service interface {
	Import(ctx context.Context, userID, businessID uuid.UUID, req ImportRequest) (*ImportResult, error)
}

type accessChecker interface {
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

// ServiceParams bundles the importer dependencies.
type ServiceParams struct {
	DB      *db.Client
	Access  accessChecker
	Metrics *metrics.StockMetrics
}

type service struct {
	db      *db.Client
	access  accessChecker
	metrics *metrics.StockMetrics
}

// NewService constructs the bulk importer.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Access == nil {
		return nil, fmt.Errorf("access checker is required")
	}
	return &service{
		db:      params.DB,
		access:  params.Access,
		metrics: params.Metrics,
	}, nil
}

func (s *service) Import(ctx context.Context, userID, businessID uuid.UUID, req ImportRequest) (*ImportResult, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if len(req.Rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rows are required")
	}

	start := time.Now()
	result := &ImportResult{}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		supplierRepo := suppliers.NewRepository(tx)
		itemRepo := items.NewRepository(tx)

		for idx, row := range req.Rows {
			created, err := s.importRow(ctx, supplierRepo, itemRepo, businessID, row)
			if err != nil {
				// first bad row aborts the batch; earlier rows roll back
				if typed := pkgerrors.As(err); typed != nil {
					return pkgerrors.New(typed.Code(),
						fmt.Sprintf("row %d: %s", idx+1, typed.Message()))
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err,
					fmt.Sprintf("row %d", idx+1))
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AddImportRows("created", result.Created)
	s.metrics.AddImportRows("updated", result.Updated)
	s.metrics.ObserveImportDuration(time.Since(start))
	return result, nil
}

// importRow upserts a single row. Reports whether a new item was created.
func (s *service) importRow(
	ctx context.Context,
	supplierRepo *suppliers.Repository,
	itemRepo *items.Repository,
	businessID uuid.UUID,
	row ImportRow,
) (bool, error) {
	row, err := normalizeRow(row)
	if err != nil {
		return false, err
	}

	importedDate, err := parseImportedDate(row.ImportedDate)
	if err != nil {
		return false, err
	}

	supplier, _, err := supplierRepo.GetOrCreate(ctx, businessID, row.Category, row.DistributorName)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve supplier")
	}

	candidates, err := itemRepo.FindBySelector(ctx, items.Selector{
		BusinessID:      businessID,
		Category:        row.Category,
		DistributorName: row.DistributorName,
		Name:            row.Name,
		Type:            row.Type,
		Size:            row.Size,
		UnitOfMeasure:   row.UnitOfMeasure,
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "query items")
	}

	matched, outcome := items.MatchByAttributes(candidates, row.AdditionalInfo)
	if outcome == items.MatchNone {
		item := &models.Item{
			SupplierID:     supplier.ID,
			Name:           row.Name,
			Type:           row.Type,
			Size:           row.Size,
			UnitOfMeasure:  row.UnitOfMeasure,
			Quantity:       row.Quantity,
			AlertQuantity:  row.AlertQuantity,
			Price:          row.Price,
			COGS:           row.COGS,
			ImportedDate:   importedDate,
			AdditionalInfo: row.AdditionalInfo,
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create item")
		}
		return true, nil
	}

	existing := matched[0]
	updates := map[string]any{
		"quantity":        row.Quantity,
		"alert_quantity":  row.AlertQuantity,
		"price":           row.Price,
		"cogs":            row.COGS,
		"additional_info": existing.AdditionalInfo.Merge(row.AdditionalInfo),
	}
	if importedDate != nil {
		updates["imported_date"] = *importedDate
	}
	if err := itemRepo.Update(ctx, existing.ID, updates); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update item")
	}
	return false, nil
}

func normalizeRow(row ImportRow) (ImportRow, error) {
	row.Category = strings.TrimSpace(row.Category)
	row.DistributorName = strings.TrimSpace(row.DistributorName)
	row.Name = strings.TrimSpace(row.Name)
	row.Type = strings.TrimSpace(row.Type)
	row.Size = strings.TrimSpace(row.Size)
	row.UnitOfMeasure = strings.TrimSpace(row.UnitOfMeasure)

	switch {
	case row.Category == "" || row.DistributorName == "":
		return row, pkgerrors.New(pkgerrors.CodeValidation, "supplier category and distributor are required")
	case row.Name == "" || row.Type == "" || row.Size == "" || row.UnitOfMeasure == "":
		return row, pkgerrors.New(pkgerrors.CodeValidation, "item descriptor is incomplete")
	case row.Quantity < 0:
		return row, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	case row.AlertQuantity < 0:
		return row, pkgerrors.New(pkgerrors.CodeValidation, "alert quantity cannot be negative")
	case row.Price.IsNegative() || row.COGS.IsNegative():
		return row, pkgerrors.New(pkgerrors.CodeValidation, "price and cogs cannot be negative")
	}
	return row, nil
}

func parseImportedDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(importedDateLayout, raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("imported_date must use %s format", importedDateLayout))
	}
	return &parsed, nil
}
