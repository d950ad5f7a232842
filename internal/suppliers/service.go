package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
)

// Service defines the supplier-catalog behavior used by controllers.
type Service interface {
	Create(ctx context.Context, userID, businessID uuid.UUID, req CreateSupplierRequest) (*SupplierDTO, error)
	Get(ctx context.Context, userID, businessID, supplierID uuid.UUID) (*SupplierDTO, error)
	List(ctx context.Context, userID, businessID uuid.UUID) ([]SupplierDTO, error)
	Search(ctx context.Context, userID, businessID uuid.UUID, category, distributor string) ([]SupplierDTO, error)
	Update(ctx context.Context, userID, businessID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierDTO, error)
	Delete(ctx context.Context, userID, businessID, supplierID uuid.UUID) error
}

type accessChecker interface {
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, s *models.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]models.Supplier, error)
	Search(ctx context.Context, businessID uuid.UUID, category, distributor string) ([]models.Supplier, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServiceParams bundles the dependencies for the supplier service.
type ServiceParams struct {
	Repo   repository
	Access accessChecker
}

type service struct {
	repo   repository
	access accessChecker
}

// NewService constructs a supplier service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("supplier repository is required")
	}
	if params.Access == nil {
		return nil, fmt.Errorf("access checker is required")
	}
	return &service{repo: params.Repo, access: params.Access}, nil
}

func (s *service) Create(ctx context.Context, userID, businessID uuid.UUID, req CreateSupplierRequest) (*SupplierDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(req.Category)
	distributor := strings.TrimSpace(req.DistributorName)
	if category == "" || distributor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category and distributor_name are required")
	}

	supplier := &models.Supplier{
		BusinessID:      businessID,
		Category:        category,
		DistributorName: distributor,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "supplier already registered for this category")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create supplier")
	}
	return FromModel(supplier), nil
}

func (s *service) Get(ctx context.Context, userID, businessID, supplierID uuid.UUID) (*SupplierDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	supplier, err := s.loadScoped(ctx, businessID, supplierID)
	if err != nil {
		return nil, err
	}
	return FromModel(supplier), nil
}

func (s *service) List(ctx context.Context, userID, businessID uuid.UUID) ([]SupplierDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list suppliers")
	}
	return toDTOs(rows), nil
}

func (s *service) Search(ctx context.Context, userID, businessID uuid.UUID, category, distributor string) ([]SupplierDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	rows, err := s.repo.Search(ctx, businessID, strings.TrimSpace(category), strings.TrimSpace(distributor))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search suppliers")
	}
	return toDTOs(rows), nil
}

func (s *service) Update(ctx context.Context, userID, businessID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if _, err := s.loadScoped(ctx, businessID, supplierID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
		}
		updates["category"] = category
	}
	if req.DistributorName != nil {
		distributor := strings.TrimSpace(*req.DistributorName)
		if distributor == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor_name cannot be empty")
		}
		updates["distributor_name"] = distributor
	}

	if err := s.repo.Update(ctx, supplierID, updates); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "supplier already registered for this category")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update supplier")
	}

	supplier, err := s.repo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload supplier")
	}
	return FromModel(supplier), nil
}

func (s *service) Delete(ctx context.Context, userID, businessID, supplierID uuid.UUID) error {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return err
	}
	if _, err := s.loadScoped(ctx, businessID, supplierID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, supplierID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete supplier")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, businessID, supplierID uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier")
	}
	if supplier.BusinessID != businessID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	return supplier, nil
}

func toDTOs(rows []models.Supplier) []SupplierDTO {
	out := make([]SupplierDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
