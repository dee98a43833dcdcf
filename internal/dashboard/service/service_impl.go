package service

import (
	"context"
	"fmt"

	"github.com/smallbiznis/invoiceboard/internal/config"
	dashboard "github.com/smallbiznis/invoiceboard/internal/dashboard/domain"
	"github.com/smallbiznis/invoiceboard/internal/invoice/format"
	obslogger "github.com/smallbiznis/invoiceboard/internal/observability/logger"
	"github.com/smallbiznis/invoiceboard/internal/observability/metrics"
	"github.com/smallbiznis/invoiceboard/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Store   repository.Store
	Log     *zap.Logger
	Display *config.DisplayConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	store   repository.Store
	log     *zap.Logger
	display *config.DisplayConfigHolder
	metrics *metrics.Metrics
}

func NewService(p Params) dashboard.Service {
	return &Service{
		store:   p.Store,
		log:     p.Log.Named("dashboard.service"),
		display: p.Display,
		metrics: p.Metrics,
	}
}

type aggregateRow struct {
	Value *int64 `gorm:"column:value"`
}

// FetchCardSummary runs the four aggregates concurrently. An empty SUM counts as zero.
func (s *Service) FetchCardSummary(ctx context.Context) (dashboard.CardSummary, error) {
	var invoices, customers, paid, pending int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.aggregate(gctx, &invoices, `SELECT COUNT(*) AS value FROM invoices`)
	})
	g.Go(func() error {
		return s.aggregate(gctx, &customers, `SELECT COUNT(*) AS value FROM customers`)
	})
	g.Go(func() error {
		return s.aggregate(gctx, &paid, `SELECT SUM(amount) AS value FROM invoices WHERE status = ?`, "paid")
	})
	g.Go(func() error {
		return s.aggregate(gctx, &pending, `SELECT SUM(amount) AS value FROM invoices WHERE status = ?`, "pending")
	})
	if err := g.Wait(); err != nil {
		return dashboard.CardSummary{}, s.queryFailed(ctx, "fetch_card_data", err)
	}

	opts := format.OptionsFrom(s.display.Get())
	return dashboard.CardSummary{
		NumberOfInvoices:     invoices,
		NumberOfCustomers:    customers,
		TotalPaidCents:       paid,
		TotalPendingCents:    pending,
		TotalPaidInvoices:    format.Currency(paid, opts),
		TotalPendingInvoices: format.Currency(pending, opts),
	}, nil
}

func (s *Service) aggregate(ctx context.Context, dest *int64, sql string, args ...any) error {
	var row aggregateRow
	if err := s.store.Query(ctx, &row, sql, args...); err != nil {
		return err
	}
	if row.Value != nil {
		*dest = *row.Value
	}
	return nil
}

func (s *Service) FetchRevenue(ctx context.Context) ([]dashboard.Revenue, error) {
	rows := []dashboard.Revenue{}
	if err := s.store.Query(ctx, &rows, `SELECT month, revenue FROM revenue`); err != nil {
		return nil, s.queryFailed(ctx, "fetch_revenue", err)
	}
	return rows, nil
}

func (s *Service) queryFailed(ctx context.Context, op string, err error) error {
	obslogger.WithContext(ctx, s.log).Error("dashboard query failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	s.metrics.RecordQueryFailure(ctx, op)
	return fmt.Errorf("%s: %w", op, dashboard.ErrQuery)
}
