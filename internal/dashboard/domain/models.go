package domain

import (
	"context"
	"errors"
)

// CardSummary holds the four headline numbers of the dashboard overview.
type CardSummary struct {
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	NumberOfCustomers    int64  `json:"number_of_customers"`
	TotalPaidCents       int64  `json:"total_paid_cents"`
	TotalPendingCents    int64  `json:"total_pending_cents"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}

// Revenue is one month of the revenue chart.
type Revenue struct {
	Month   string `gorm:"column:month" json:"month"`
	Revenue int64  `gorm:"column:revenue" json:"revenue"`
}

type Service interface {
	FetchCardSummary(ctx context.Context) (CardSummary, error)
	FetchRevenue(ctx context.Context) ([]Revenue, error)
}

var ErrQuery = errors.New("dashboard_query_failed")
