package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
)

// Service exposes read access to the ledger.
type Service interface {
	List(ctx context.Context, userID, businessID uuid.UUID, filter ListFilter) ([]TransactionDTO, error)
	Get(ctx context.Context, userID, businessID uuid.UUID, externalID string) (*TransactionDTO, error)
}

type accessChecker interface {
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

type repository interface {
	FindByExternalID(ctx context.Context, businessID uuid.UUID, externalID string) (*models.Transaction, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, filter ListFilter) ([]models.Transaction, error)
}

// ServiceParams bundles the ledger service dependencies.
type ServiceParams struct {
	Repo   repository
	Access accessChecker
}

type service struct {
	repo   repository
	access accessChecker
}

// NewService constructs a ledger read service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	if params.Access == nil {
		return nil, fmt.Errorf("access checker is required")
	}
	return &service{repo: params.Repo, access: params.Access}, nil
}

func (s *service) List(ctx context.Context, userID, businessID uuid.UUID, filter ListFilter) ([]TransactionDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid type filter")
	}

	rows, err := s.repo.ListByBusiness(ctx, businessID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}
	out := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, businessID uuid.UUID, externalID string) (*TransactionDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	t, err := s.repo.FindByExternalID(ctx, businessID, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load transaction")
	}
	return FromModel(t), nil
}
