package repository

import (
	"context"

	"github.com/smallbiznis/invoiceboard/internal/invoice/domain"
	"github.com/smallbiznis/invoiceboard/pkg/repository"
)

type repo struct {
	store repository.Store
}

func Provide(store repository.Store) domain.Repository {
	return &repo{store: store}
}

func (r *repo) FindFiltered(ctx context.Context, query string, limit, offset int) ([]domain.EnrichedInvoice, error) {
	where, args := searchPredicate(r.store.Dialect(), query)
	args = append(args, limit, offset)

	items := []domain.EnrichedInvoice{}
	err := r.store.Query(ctx, &items,
		`SELECT
			invoices.id,
			invoices.customer_id,
			invoices.amount,
			invoices.date,
			invoices.status,
			customers.name,
			customers.email,
			customers.image_url
		 FROM invoices
		 JOIN customers ON invoices.customer_id = customers.id
		 WHERE `+where+`
		 ORDER BY invoices.date DESC, invoices.id DESC
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) CountFiltered(ctx context.Context, query string) (int64, error) {
	where, args := searchPredicate(r.store.Dialect(), query)

	var row struct {
		Count int64 `gorm:"column:count"`
	}
	err := r.store.Query(ctx, &row,
		`SELECT COUNT(*) AS count
		 FROM invoices
		 JOIN customers ON invoices.customer_id = customers.id
		 WHERE `+where,
		args...,
	)
	if err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (r *repo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var rows []domain.Invoice
	err := r.store.Query(ctx, &rows,
		`SELECT id, customer_id, amount, status, date FROM invoices WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *repo) FindLatest(ctx context.Context, limit int) ([]domain.LatestInvoice, error) {
	items := []domain.LatestInvoice{}
	err := r.store.Query(ctx, &items,
		`SELECT invoices.id, invoices.amount, invoices.date, customers.name, customers.email, customers.image_url
		 FROM invoices
		 JOIN customers ON invoices.customer_id = customers.id
		 ORDER BY invoices.date DESC, invoices.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Insert(ctx context.Context, invoice domain.Invoice) error {
	_, err := r.store.Execute(ctx,
		`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.CustomerID,
		invoice.Amount,
		string(invoice.Status),
		invoice.DateString(),
	)
	return err
}

func (r *repo) Update(ctx context.Context, id string, input domain.InvoiceInput) (int64, error) {
	return r.store.Execute(ctx,
		`UPDATE invoices SET customer_id = ?, amount = ?, status = ? WHERE id = ?`,
		input.CustomerID(),
		input.Cents(),
		string(input.Status()),
		id,
	)
}

func (r *repo) Delete(ctx context.Context, id string) (int64, error) {
	return r.store.Execute(ctx, `DELETE FROM invoices WHERE id = ?`, id)
}
