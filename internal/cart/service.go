package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/internal/items"
	"github.com/kartiksheoranexe/InventoryManagement/internal/stock"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
)

// Service stages items for sale and drains them through the stock
// reconciler at checkout. One cart per user; lines always reference items
// inside the business the caller is operating under.
type Service interface {
	Get(ctx context.Context, userID, businessID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID, businessID uuid.UUID, req AddItemRequest) (*CartDTO, error)
	UpdateItem(ctx context.Context, userID, businessID, itemID uuid.UUID, req UpdateItemRequest) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, businessID, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID, businessID uuid.UUID) error
	Checkout(ctx context.Context, userID, businessID uuid.UUID) (*CheckoutResult, error)
}

type accessChecker interface {
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

// ServiceParams bundles the cart dependencies.
type ServiceParams struct {
	DB     *db.Client
	Access accessChecker
	Stock  stock.Service
}

type service struct {
	db     *db.Client
	access accessChecker
	stock  stock.Service
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Access == nil {
		return nil, fmt.Errorf("access checker is required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock service is required")
	}
	return &service{
		db:     params.DB,
		access: params.Access,
		stock:  params.Stock,
	}, nil
}

func (s *service) Get(ctx context.Context, userID, businessID uuid.UUID) (*CartDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	return s.loadCart(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID, businessID uuid.UUID, req AddItemRequest) (*CartDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if err := s.ensureItemScoped(ctx, req.ItemID, businessID); err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	c, err := repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if err := repo.UpsertLine(ctx, c.ID, req.ItemID, req.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stage item")
	}
	return s.loadCart(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, businessID, itemID uuid.UUID, req UpdateItemRequest) (*CartDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	repo := NewRepository(s.db.DB())
	c, err := repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	updated, err := repo.SetLineQuantity(ctx, c.ID, itemID, req.Quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart line")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}
	return s.loadCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, businessID, itemID uuid.UUID) (*CartDTO, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	c, err := repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	removed, err := repo.RemoveLine(ctx, c.ID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart line")
	}
	if !removed {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}
	return s.loadCart(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID, businessID uuid.UUID) error {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return err
	}

	repo := NewRepository(s.db.DB())
	c, err := repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if err := repo.ClearLines(ctx, c.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}

// Checkout drains the cart oldest line first. Each line becomes one pending
// sale through the reconciler and leaves the cart as it succeeds, so a
// failing line keeps itself and everything after it staged.
func (s *service) Checkout(ctx context.Context, userID, businessID uuid.UUID) (*CheckoutResult, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}

	repo := NewRepository(s.db.DB())
	c, err := repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	lines, err := repo.LoadLines(ctx, c.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart lines")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	result := &CheckoutResult{Total: decimal.Zero}
	for _, line := range lines {
		itemID := line.ItemID
		delta, err := s.stock.ApplyQuantityDelta(ctx, userID, businessID, stock.ApplyDeltaRequest{
			ItemID: &itemID,
			Delta:  -line.Quantity,
		})
		if err != nil {
			return nil, err
		}
		if _, err := repo.RemoveLine(ctx, c.ID, line.ItemID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "drain cart line")
		}
		result.Transactions = append(result.Transactions, *delta)
		result.Total = result.Total.Add(delta.Amount)
	}
	return result, nil
}

func (s *service) ensureItemScoped(ctx context.Context, itemID, businessID uuid.UUID) error {
	ok, err := items.NewRepository(s.db.DB()).BelongsToBusiness(ctx, itemID, businessID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check item scope")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}

func (s *service) loadCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	repo := NewRepository(s.db.DB())
	c, err := repo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	lines, err := repo.LoadLines(ctx, c.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart lines")
	}

	dto := &CartDTO{CartID: c.ID, Lines: make([]LineDTO, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		entry := LineDTO{ItemID: line.ItemID, Quantity: line.Quantity}
		if line.Item != nil {
			entry.Name = line.Item.Name
			entry.UnitPrice = line.Item.Price
			entry.Subtotal = line.Item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		}
		dto.Lines = append(dto.Lines, entry)
		dto.Total = dto.Total.Add(entry.Subtotal)
	}
	return dto, nil
}
