package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	ListTable(ctx context.Context, query string) ([]CustomerTableRow, error)
}

var (
	ErrInvalidID = errors.New("invalid_id")
	ErrNotFound  = errors.New("not_found")
	ErrQuery     = errors.New("customer_query_failed")
)
