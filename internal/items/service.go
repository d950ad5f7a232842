package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
)

// Service defines the item-catalog behavior used by controllers.
type Service interface {
	Create(ctx context.Context, userID, businessID, supplierID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	Get(ctx context.Context, userID, businessID, itemID uuid.UUID) (*ItemDTO, error)
	ListBySupplier(ctx context.Context, userID, businessID, supplierID uuid.UUID) ([]ItemDTO, error)
	Search(ctx context.Context, userID, businessID uuid.UUID, name, itemType string) ([]ItemDTO, error)
	ListLowStock(ctx context.Context, userID, businessID uuid.UUID) ([]ItemDTO, error)
	Update(ctx context.Context, userID, businessID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	Delete(ctx context.Context, userID, businessID, itemID uuid.UUID) error
}

type accessChecker interface {
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

type supplierLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

type repository interface {
	Create(ctx context.Context, i *models.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Item, error)
	Search(ctx context.Context, businessID uuid.UUID, name, itemType string) ([]models.Item, error)
	ListLowStock(ctx context.Context, businessID uuid.UUID) ([]models.Item, error)
	BelongsToBusiness(ctx context.Context, itemID, businessID uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams bundles the dependencies for the item service.
type ServiceParams struct {
	Repo      repository
	Suppliers supplierLookup
	Access    accessChecker
}

type service struct {
	repo      repository
	suppliers supplierLookup
	access    accessChecker
}

// NewService constructs an item service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("item repository is required")
	}
	if params.Suppliers == nil {
		return nil, fmt.Errorf("supplier lookup is required")
	}
	if params.Access == nil {
		return nil, fmt.Errorf("access checker is required")
	}
	return &service{
		repo:      params.Repo,
		suppliers: params.Suppliers,
		access:    params.Access,
	}, nil
}

func (s *service) Create(ctx context.Context, userID, businessID, supplierID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if err := s.ensureSupplierScoped(ctx, businessID, supplierID); err != nil {
		return nil, err
	}
	if err := validateDescriptor(req.Name, req.Type, req.Size, req.UnitOfMeasure); err != nil {
		return nil, err
	}
	if req.Quantity < 0 || req.AlertQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantities cannot be negative")
	}
	if req.Price.IsNegative() || req.COGS.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and cogs cannot be negative")
	}

	item := &models.Item{
		SupplierID:     supplierID,
		Name:           strings.TrimSpace(req.Name),
		Type:           strings.TrimSpace(req.Type),
		Size:           strings.TrimSpace(req.Size),
		UnitOfMeasure:  strings.TrimSpace(req.UnitOfMeasure),
		Quantity:       req.Quantity,
		AlertQuantity:  req.AlertQuantity,
		Price:          req.Price,
		COGS:           req.COGS,
		ImportedDate:   req.ImportedDate,
		AdditionalInfo: req.AdditionalInfo,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create item")
	}
	return FromModel(item), nil
}

func (s *service) Get(ctx context.Context, userID, businessID, itemID uuid.UUID) (*ItemDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	item, err := s.loadScoped(ctx, businessID, itemID)
	if err != nil {
		return nil, err
	}
	return FromModel(item), nil
}

func (s *service) ListBySupplier(ctx context.Context, userID, businessID, supplierID uuid.UUID) ([]ItemDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if err := s.ensureSupplierScoped(ctx, businessID, supplierID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list items")
	}
	return toDTOs(rows), nil
}

func (s *service) Search(ctx context.Context, userID, businessID uuid.UUID, name, itemType string) ([]ItemDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	rows, err := s.repo.Search(ctx, businessID, strings.TrimSpace(name), strings.TrimSpace(itemType))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search items")
	}
	return toDTOs(rows), nil
}

func (s *service) ListLowStock(ctx context.Context, userID, businessID uuid.UUID) ([]ItemDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListLowStock(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list low stock")
	}
	return toDTOs(rows), nil
}

func (s *service) Update(ctx context.Context, userID, businessID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	item, err := s.loadScoped(ctx, businessID, itemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		updates["type"] = strings.TrimSpace(*req.Type)
	}
	if req.Size != nil {
		updates["size"] = strings.TrimSpace(*req.Size)
	}
	if req.UnitOfMeasure != nil {
		updates["unit_of_measure"] = strings.TrimSpace(*req.UnitOfMeasure)
	}
	if req.AlertQuantity != nil {
		if *req.AlertQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "alert_quantity cannot be negative")
		}
		updates["alert_quantity"] = *req.AlertQuantity
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.COGS != nil {
		if req.COGS.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cogs cannot be negative")
		}
		updates["cogs"] = *req.COGS
	}
	if req.ImportedDate != nil {
		updates["imported_date"] = *req.ImportedDate
	}
	if len(req.AdditionalInfo) > 0 {
		updates["additional_info"] = item.AdditionalInfo.Merge(req.AdditionalInfo)
	}

	if err := s.repo.Update(ctx, itemID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update item")
	}

	reloaded, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload item")
	}
	return FromModel(reloaded), nil
}

func (s *service) Delete(ctx context.Context, userID, businessID, itemID uuid.UUID) error {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return err
	}
	if _, err := s.loadScoped(ctx, businessID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete item")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, businessID, itemID uuid.UUID) (*models.Item, error) {
	ok, err := s.repo.BelongsToBusiness(ctx, itemID, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check item scope")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
	}
	return item, nil
}

func (s *service) ensureSupplierScoped(ctx context.Context, businessID, supplierID uuid.UUID) error {
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier")
	}
	if supplier.BusinessID != businessID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	return nil
}

func validateDescriptor(name, itemType, size, unit string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(itemType) == "" ||
		strings.TrimSpace(size) == "" || strings.TrimSpace(unit) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name, type, size, and unit_of_measure are required")
	}
	return nil
}

func toDTOs(rows []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
