package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/invoiceboard/internal/config"
	"github.com/smallbiznis/invoiceboard/internal/customer/domain"
	"github.com/smallbiznis/invoiceboard/internal/invoice/format"
	obslogger "github.com/smallbiznis/invoiceboard/internal/observability/logger"
	"github.com/smallbiznis/invoiceboard/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Display *config.DisplayConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	display *config.DisplayConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("customer.service"),
		repo:    p.Repo,
		display: p.Display,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.queryFailed(ctx, "fetch_customers", err)
	}
	return customers, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Customer{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Customer{}, s.queryFailed(ctx, "fetch_customer_by_id", err)
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListTable(ctx context.Context, query string) ([]domain.CustomerTableRow, error) {
	rows, err := s.repo.ListTable(ctx, query)
	if err != nil {
		return nil, s.queryFailed(ctx, "fetch_filtered_customers", err)
	}

	opts := format.OptionsFrom(s.display.Get())
	for i := range rows {
		rows[i].FormattedPending = format.Currency(rows[i].TotalPending, opts)
		rows[i].FormattedPaid = format.Currency(rows[i].TotalPaid, opts)
	}
	return rows, nil
}

func (s *Service) queryFailed(ctx context.Context, op string, err error) error {
	obslogger.WithContext(ctx, s.log).Error("customer query failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	s.metrics.RecordQueryFailure(ctx, op)
	return fmt.Errorf("%s: %w", op, domain.ErrQuery)
}
