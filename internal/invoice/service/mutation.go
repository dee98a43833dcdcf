package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/smallbiznis/invoiceboard/internal/clock"
	"github.com/smallbiznis/invoiceboard/internal/invoice/domain"
	obslogger "github.com/smallbiznis/invoiceboard/internal/observability/logger"
	"github.com/smallbiznis/invoiceboard/internal/observability/metrics"
	"github.com/smallbiznis/invoiceboard/internal/revalidate"
	"github.com/smallbiznis/invoiceboard/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

type MutationParams struct {
	fx.In

	Log         *zap.Logger
	Repo        domain.Repository
	Clock       clock.Clock
	Invalidator revalidate.Invalidator
	Metrics     *metrics.Metrics `optional:"true"`
}

type MutationService struct {
	log         *zap.Logger
	repo        domain.Repository
	clock       clock.Clock
	invalidator revalidate.Invalidator
	metrics     *metrics.Metrics
	newID       func() string
}

func NewMutationService(p MutationParams) domain.MutationService {
	return &MutationService{
		log:         p.Log.Named("invoice.mutation"),
		repo:        p.Repo,
		clock:       p.Clock,
		invalidator: p.Invalidator,
		metrics:     p.Metrics,
		newID:       uuid.NewString,
	}
}

func (s *MutationService) CreateInvoice(ctx context.Context, form domain.InvoiceFormInput) (domain.MutationResult, error) {
	input, err := domain.ParseInvoiceInput(form, domain.MsgCreateFailed)
	if err != nil {
		s.metrics.RecordInvoiceMutation(ctx, opCreate, metrics.OutcomeValidation)
		return domain.MutationResult{}, err
	}

	invoice := domain.Invoice{
		ID:         s.newID(),
		CustomerID: input.CustomerID(),
		Amount:     input.Cents(),
		Status:     input.Status(),
		Date:       datatypes.Date(clock.Today(s.clock)),
	}
	if err := s.repo.Insert(ctx, invoice); err != nil {
		return domain.MutationResult{}, s.persistenceFailed(ctx, opCreate, "create_invoice", err,
			zap.String("customer_id", invoice.CustomerID))
	}

	obslogger.WithContext(ctx, s.log).Info("invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("status", string(invoice.Status)),
	)
	return s.committed(ctx, opCreate, invoice.ID), nil
}

func (s *MutationService) UpdateInvoice(ctx context.Context, id string, form domain.InvoiceFormInput) (domain.MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.MutationResult{}, domain.ErrInvalidID
	}

	input, err := domain.ParseInvoiceInput(form, domain.MsgUpdateFailed)
	if err != nil {
		s.metrics.RecordInvoiceMutation(ctx, opUpdate, metrics.OutcomeValidation)
		return domain.MutationResult{}, err
	}

	affected, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return domain.MutationResult{}, s.persistenceFailed(ctx, opUpdate, "update_invoice", err,
			zap.String("invoice_id", id))
	}
	if affected == 0 {
		return domain.MutationResult{}, s.persistenceFailed(ctx, opUpdate, "update_invoice",
			errors.New("no invoice matched"), zap.String("invoice_id", id))
	}

	obslogger.WithContext(ctx, s.log).Info("invoice updated",
		zap.String("invoice_id", id),
		zap.String("status", string(input.Status())),
	)
	return s.committed(ctx, opUpdate, id), nil
}

// DeleteInvoice removes the row. Deleting an id that does not exist succeeds.
func (s *MutationService) DeleteInvoice(ctx context.Context, id string) (domain.MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.MutationResult{}, domain.ErrInvalidID
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.MutationResult{}, s.persistenceFailed(ctx, opDelete, "delete_invoice", err,
			zap.String("invoice_id", id))
	}

	obslogger.WithContext(ctx, s.log).Info("invoice deleted",
		zap.String("invoice_id", id),
		zap.Int64("rows_affected", affected),
	)
	result := s.committed(ctx, opDelete, id)
	result.RedirectTo = ""
	return result, nil
}

// committed signals the listing view and builds the result. The write is
// already durable, so a failed signal is logged and not returned.
func (s *MutationService) committed(ctx context.Context, op, id string) domain.MutationResult {
	s.metrics.RecordInvoiceMutation(ctx, op, metrics.OutcomeSuccess)

	if err := s.invalidator.Invalidate(ctx, revalidate.InvoicesPath); err != nil {
		obslogger.WithContext(ctx, s.log).Warn("invalidate listing failed",
			zap.String("operation", op),
			zap.String("path", revalidate.InvoicesPath),
			zap.Error(err),
		)
	}

	return domain.MutationResult{
		ID:          id,
		Revalidated: []string{revalidate.InvoicesPath},
		RedirectTo:  revalidate.InvoicesPath,
	}
}

func (s *MutationService) persistenceFailed(ctx context.Context, op, name string, err error, fields ...zap.Field) error {
	s.metrics.RecordInvoiceMutation(ctx, op, metrics.OutcomeFailure)

	fields = append(fields,
		zap.String("operation", name),
		zap.Bool("foreign_key_violation", db.IsForeignKeyErr(err)),
		zap.Error(err),
	)
	obslogger.WithContext(ctx, s.log).Error("invoice write failed", fields...)
	return fmt.Errorf("%s: %w", name, domain.ErrPersistence)
}
