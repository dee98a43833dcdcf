package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/invoiceboard/internal/config"
	"github.com/smallbiznis/invoiceboard/internal/invoice/domain"
	"github.com/smallbiznis/invoiceboard/internal/invoice/format"
	obslogger "github.com/smallbiznis/invoiceboard/internal/observability/logger"
	"github.com/smallbiznis/invoiceboard/internal/observability/metrics"
	"github.com/smallbiznis/invoiceboard/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// LatestInvoicesLimit is the size of the "latest invoices" panel.
const LatestInvoicesLimit = 5

type QueryParams struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Display *config.DisplayConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type QueryService struct {
	log     *zap.Logger
	repo    domain.Repository
	display *config.DisplayConfigHolder
	metrics *metrics.Metrics
}

func NewQueryService(p QueryParams) domain.QueryService {
	return &QueryService{
		log:     p.Log.Named("invoice.query"),
		repo:    p.Repo,
		display: p.Display,
		metrics: p.Metrics,
	}
}

func (s *QueryService) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]domain.EnrichedInvoice, error) {
	w := pagination.WindowFor(page, pagination.DefaultPageSize)
	items, err := s.repo.FindFiltered(ctx, query, w.Limit, w.Offset)
	if err != nil {
		return nil, s.queryFailed(ctx, "fetch_filtered_invoices", err)
	}
	return items, nil
}

func (s *QueryService) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	count, err := s.repo.CountFiltered(ctx, query)
	if err != nil {
		return 0, s.queryFailed(ctx, "fetch_invoices_pages", err)
	}
	return pagination.TotalPages(count, pagination.DefaultPageSize), nil
}

func (s *QueryService) FetchInvoiceByID(ctx context.Context, id string) (domain.InvoiceForm, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.InvoiceForm{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.InvoiceForm{}, s.queryFailed(ctx, "fetch_invoice_by_id", err)
	}
	if item == nil {
		return domain.InvoiceForm{}, domain.ErrNotFound
	}

	return domain.InvoiceForm{
		ID:         item.ID,
		CustomerID: item.CustomerID,
		Amount:     domain.FromCents(item.Amount).StringFixed(2),
		Status:     item.Status,
	}, nil
}

func (s *QueryService) FetchLatestInvoices(ctx context.Context) ([]domain.LatestInvoice, error) {
	items, err := s.repo.FindLatest(ctx, LatestInvoicesLimit)
	if err != nil {
		return nil, s.queryFailed(ctx, "fetch_latest_invoices", err)
	}

	opts := format.OptionsFrom(s.display.Get())
	for i := range items {
		items[i].FormattedAmount = format.Currency(items[i].Amount, opts)
	}
	return items, nil
}

func (s *QueryService) queryFailed(ctx context.Context, op string, err error) error {
	obslogger.WithContext(ctx, s.log).Error("invoice query failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	s.metrics.RecordQueryFailure(ctx, op)
	return fmt.Errorf("%s: %w", op, domain.ErrQuery)
}
