package repository

import (
	"context"
	"strings"

	"github.com/smallbiznis/invoiceboard/internal/customer/domain"
	"github.com/smallbiznis/invoiceboard/pkg/repository"
)

type repo struct {
	store repository.Store
}

func Provide(store repository.Store) domain.Repository {
	return &repo{store: store}
}

func (r *repo) List(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := r.store.Query(ctx, &customers,
		`SELECT id, name, email, image_url
		 FROM customers
		 ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	var rows []domain.Customer
	err := r.store.Query(ctx, &rows,
		`SELECT id, name, email, image_url FROM customers WHERE id = ?`,
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

func (r *repo) ListTable(ctx context.Context, query string) ([]domain.CustomerTableRow, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	rows := []domain.CustomerTableRow{}
	err := r.store.Query(ctx, &rows,
		`SELECT
			customers.id,
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS total_pending,
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS total_paid
		 FROM customers
		 LEFT JOIN invoices ON customers.id = invoices.customer_id
		 WHERE LOWER(customers.name) LIKE ? OR LOWER(customers.email) LIKE ?
		 GROUP BY customers.id, customers.name, customers.email, customers.image_url
		 ORDER BY customers.name ASC`,
		pattern, pattern,
	)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
