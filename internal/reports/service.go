package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kartiksheoranexe/InventoryManagement/pkg/db"
	"github.com/kartiksheoranexe/InventoryManagement/pkg/enums"
	pkgerrors "github.com/kartiksheoranexe/InventoryManagement/pkg/errors"
)

const topItemsLimit = 10

var hundred = decimal.NewFromInt(100)

// Service produces sales summaries over the transaction ledger.
type Service interface {
	SalesPerformance(ctx context.Context, userID, businessID uuid.UUID, window enums.TimeWindow) (*SalesPerformanceReport, error)
	TopItems(ctx context.Context, userID, businessID uuid.UUID, year int) (*TopItemsReport, error)
}

type accessChecker interface {
	EnsureAccess(ctx context.Context, userID, businessID uuid.UUID) error
}

// ServiceParams bundles the reporting dependencies. Now defaults to
// time.Now and exists so tests can pin the clock.
type ServiceParams struct {
	DB     *db.Client
	Access accessChecker
	Now    func() time.Time
}

type service struct {
	db     *db.Client
	access accessChecker
	now    func() time.Time
}

// NewService constructs the reporting service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Access == nil {
		return nil, fmt.Errorf("access checker is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		db:     params.DB,
		access: params.Access,
		now:    params.Now,
	}, nil
}

func (s *service) SalesPerformance(ctx context.Context, userID, businessID uuid.UUID, window enums.TimeWindow) (*SalesPerformanceReport, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	from, to, err := window.Bounds(s.now())
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window must be today, 30d, or ytd")
	}

	rows, err := NewRepository(s.db.DB()).SalesByItem(ctx, businessID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate sales")
	}

	report := &SalesPerformanceReport{
		Window: window,
		From:   from,
		To:     to,
		Lines:  make([]SalesLine, 0, len(rows)),
		Total: SalesTotals{
			Revenue: decimal.Zero,
			COGS:    decimal.Zero,
			Profit:  decimal.Zero,
		},
	}
	for _, row := range rows {
		cogs := row.UnitCOGS.Mul(decimal.NewFromInt(int64(row.Units)))
		profit := row.Revenue.Sub(cogs)
		report.Lines = append(report.Lines, SalesLine{
			ItemID:          row.ItemID,
			ItemName:        row.ItemName,
			DistributorName: row.DistributorName,
			Category:        row.Category,
			Units:           row.Units,
			Revenue:         row.Revenue,
			COGS:            cogs,
			Profit:          profit,
			ProfitPercent:   profitPercent(profit, row.Revenue),
		})
		report.Total.Units += row.Units
		report.Total.Revenue = report.Total.Revenue.Add(row.Revenue)
		report.Total.COGS = report.Total.COGS.Add(cogs)
	}
	report.Total.Profit = report.Total.Revenue.Sub(report.Total.COGS)
	report.Total.ProfitPercent = profitPercent(report.Total.Profit, report.Total.Revenue)
	return report, nil
}

func (s *service) TopItems(ctx context.Context, userID, businessID uuid.UUID, year int) (*TopItemsReport, error) {
	if err := s.access.EnsureAccess(ctx, userID, businessID); err != nil {
		return nil, err
	}
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if year < 2000 || year > now.Year() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year is out of range")
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(1, 0, 0)

	rows, err := NewRepository(s.db.DB()).TopItemsByUnits(ctx, businessID, from, to, topItemsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rank items")
	}

	report := &TopItemsReport{Year: year, Items: make([]TopItem, 0, len(rows))}
	for i, row := range rows {
		units := decimal.NewFromInt(int64(row.Units))
		revenue := row.UnitPrice.Mul(units)
		cogs := row.UnitCOGS.Mul(units)
		report.Items = append(report.Items, TopItem{
			Rank:    i + 1,
			ItemID:  row.ItemID,
			Name:    row.Name,
			Units:   row.Units,
			Revenue: revenue,
			COGS:    cogs,
			Profit:  revenue.Sub(cogs),
		})
	}
	return report, nil
}

// profitPercent guards the zero-revenue division.
func profitPercent(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}
