package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/kartiksheoranexe/InventoryManagement/internal/business"
	"github.com/kartiksheoranexe/InventoryManagement/internal/items"
	"github.com/kartiksheoranexe/InventoryManagement/internal/ledger"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db/models"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/metrics"
)

// Service is the stock reconciler: every quantity mutation leaves a ledger
// entry, and settling a pending sale is the only way to undo one.
type Service interface {
	ApplyQuantityDelta(ctx context.Context, userID, businessID uuid.UUID, req ApplyDeltaRequest) (*DeltaResult, error)
	ResolveTransactions(ctx context.Context, userID, businessID uuid.UUID, req ResolveRequest) (*ResolveResult, error)
}

type accessChecker interface {
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

// ServiceParams bundles the reconciler dependencies.
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

// NewService constructs the stock reconciler.
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

func (s *service) ApplyQuantityDelta(ctx context.Context, userID, businessID uuid.UUID, req ApplyDeltaRequest) (*DeltaResult, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if req.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero")
	}
	if req.ItemID == nil && req.Selector == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id or selector is required")
	}

	var result *DeltaResult
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		itemRepo := items.NewRepository(tx)
		ledgerRepo := ledger.NewRepository(tx)
		bizRepo := business.NewRepository(tx)

		item, err := s.resolveItem(ctx, itemRepo, businessID, req)
		if err != nil {
			return err
		}

		applied, err := itemRepo.AdjustQuantity(ctx, item.ID, req.Delta)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adjust quantity")
		}
		if !applied {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient quantity")
		}

		detail, err := bizRepo.FindUPIDetail(ctx, businessID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no payment account configured")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment account")
		}

		units := req.Delta
		status := enums.TransactionStatusSuccess
		txnType := enums.TransactionTypeAdded
		if req.Delta < 0 {
			units = -req.Delta
			status = enums.TransactionStatusPending
			txnType = enums.TransactionTypeSold
		}
		amount := item.Price.Mul(decimal.NewFromInt(int64(units)))

		entry := &models.Transaction{
			UPIDetailID: detail.ID,
			ExternalID:  ledger.NewExternalID(),
			Amount:      amount,
			ItemID:      &item.ID,
			Unit:        units,
			Status:      status,
			Type:        txnType,
		}
		if err := ledgerRepo.Create(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record transaction")
		}

		result = &DeltaResult{
			TransactionID: entry.ExternalID,
			ItemID:        item.ID,
			Delta:         req.Delta,
			Quantity:      item.Quantity + req.Delta,
			Amount:        amount,
			Status:        status,
			Type:          txnType,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncDelta(string(result.Type))
	return result, nil
}

// resolveItem finds the mutation target. Direct ids are checked against the
// attribute filter too; selectors go through the structural query plus the
// matcher, taking the first candidate when the filter leaves several.
func (s *service) resolveItem(ctx context.Context, itemRepo *items.Repository, businessID uuid.UUID, req ApplyDeltaRequest) (*models.Item, error) {
	if req.ItemID != nil {
		ok, err := itemRepo.BelongsToBusiness(ctx, *req.ItemID, businessID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check item scope")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		item, err := itemRepo.FindByID(ctx, *req.ItemID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
		}
		if !item.AdditionalInfo.Contains(req.AdditionalInfo) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "additional info doesn't match")
		}
		return item, nil
	}

	sel := req.Selector
	candidates, err := itemRepo.FindBySelector(ctx, items.Selector{
		BusinessID:      businessID,
		Category:        strings.TrimSpace(sel.Category),
		DistributorName: strings.TrimSpace(sel.DistributorName),
		Name:            strings.TrimSpace(sel.Name),
		Type:            strings.TrimSpace(sel.Type),
		Size:            strings.TrimSpace(sel.Size),
		UnitOfMeasure:   strings.TrimSpace(sel.UnitOfMeasure),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "query items")
	}
	if len(candidates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}

	matched, outcome := items.MatchByAttributes(candidates, req.AdditionalInfo)
	if outcome == items.MatchNone {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "additional info doesn't match")
	}
	return &matched[0], nil
}

func (s *service) ResolveTransactions(ctx context.Context, userID, businessID uuid.UUID, req ResolveRequest) (*ResolveResult, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if !req.Outcome.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "outcome must be confirmed or rejected")
	}
	if len(req.TransactionIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction_ids are required")
	}

	var result *ResolveResult
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		itemRepo := items.NewRepository(tx)
		ledgerRepo := ledger.NewRepository(tx)

		// Look everything up before touching anything so a batch with
		// unknown ids reports all of them and mutates nothing.
		entries := make([]*models.Transaction, 0, len(req.TransactionIDs))
		var lookupErr error
		for _, externalID := range req.TransactionIDs {
			entry, err := ledgerRepo.FindByExternalID(ctx, businessID, externalID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					lookupErr = multierr.Append(lookupErr,
						fmt.Errorf("transaction %s not found", externalID))
					continue
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load transaction")
			}
			entries = append(entries, entry)
		}
		if lookupErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, lookupErr, "unknown transactions")
		}

		resolved := make([]ResolvedTransaction, 0, len(entries))
		for _, entry := range entries {
			target := enums.TransactionStatusSuccess
			if req.Outcome == OutcomeRejected {
				target = enums.TransactionStatusFailed
			}
			if !entry.Status.CanTransitionTo(target) {
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("transaction %s already resolved", entry.ExternalID))
			}

			record := ResolvedTransaction{
				TransactionID: entry.ExternalID,
				Status:        target,
				ItemID:        entry.ItemID,
			}

			if req.Outcome == OutcomeRejected {
				// a rejected sale returns its units to the shelf
				if entry.ItemID == nil {
					return pkgerrors.New(pkgerrors.CodeConflict,
						fmt.Sprintf("transaction %s references a deleted item", entry.ExternalID))
				}
				applied, err := itemRepo.AdjustQuantity(ctx, *entry.ItemID, entry.Unit)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restock item")
				}
				if !applied {
					return pkgerrors.New(pkgerrors.CodeConflict,
						fmt.Sprintf("transaction %s references a deleted item", entry.ExternalID))
				}
				record.RestockedUnit = entry.Unit
			}

			ok, err := ledgerRepo.TransitionStatus(ctx, entry.ID, target)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "transition transaction")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("transaction %s already resolved", entry.ExternalID))
			}
			resolved = append(resolved, record)
		}

		result = &ResolveResult{Resolved: resolved}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, entry := range result.Resolved {
		s.metrics.IncResolution(string(entry.Status))
	}
	return result, nil
}
