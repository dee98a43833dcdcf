package domain

import (
	"context"
	"errors"
)

// Repository is the SQL boundary of the invoice package.
type Repository interface {
	FindFiltered(ctx context.Context, query string, limit, offset int) ([]EnrichedInvoice, error)
	CountFiltered(ctx context.Context, query string) (int64, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindLatest(ctx context.Context, limit int) ([]LatestInvoice, error)
	Insert(ctx context.Context, invoice Invoice) error
	Update(ctx context.Context, id string, input InvoiceInput) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type QueryService interface {
	FetchFilteredInvoices(ctx context.Context, query string, page int) ([]EnrichedInvoice, error)
	FetchInvoicesPages(ctx context.Context, query string) (int, error)
	FetchInvoiceByID(ctx context.Context, id string) (InvoiceForm, error)
	FetchLatestInvoices(ctx context.Context) ([]LatestInvoice, error)
}

type MutationService interface {
	CreateInvoice(ctx context.Context, form InvoiceFormInput) (MutationResult, error)
	UpdateInvoice(ctx context.Context, id string, form InvoiceFormInput) (MutationResult, error)
	DeleteInvoice(ctx context.Context, id string) (MutationResult, error)
}

// MutationResult tells the caller which views went stale and where to go next.
type MutationResult struct {
	ID          string   `json:"id"`
	Revalidated []string `json:"revalidated"`
	RedirectTo  string   `json:"redirect_to,omitempty"`
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
	ErrQuery       = errors.New("invoice_query_failed")
	ErrPersistence = errors.New("invoice_persistence_failed")
)
