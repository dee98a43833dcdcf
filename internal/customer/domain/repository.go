package domain

import "context"

type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	ListTable(ctx context.Context, query string) ([]CustomerTableRow, error)
}
