// Package domain contains the invoice models and service contracts.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Status is the payment state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// DateLayout is the calendar-date form stored in invoices.date.
const DateLayout = "2006-01-02"

// Invoice is the persisted row. Amount is in cents.
type Invoice struct {
	ID         string         `gorm:"column:id;primaryKey"`
	CustomerID string         `gorm:"column:customer_id;not null"`
	Amount     int64          `gorm:"column:amount;not null"`
	Status     Status         `gorm:"column:status;not null"`
	Date       datatypes.Date `gorm:"column:date;not null"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// DateString renders Date as YYYY-MM-DD.
func (i Invoice) DateString() string {
	return time.Time(i.Date).Format(DateLayout)
}

// EnrichedInvoice is an invoice joined with its customer for the listing view.
type EnrichedInvoice struct {
	ID         string    `gorm:"column:id" json:"id"`
	CustomerID string    `gorm:"column:customer_id" json:"customer_id"`
	Name       string    `gorm:"column:name" json:"name"`
	Email      string    `gorm:"column:email" json:"email"`
	ImageURL   string    `gorm:"column:image_url" json:"image_url"`
	Amount     int64     `gorm:"column:amount" json:"amount"`
	Status     Status    `gorm:"column:status" json:"status"`
	Date       time.Time `gorm:"column:date" json:"-"`
}

// DateString renders the invoice date as YYYY-MM-DD.
func (e EnrichedInvoice) DateString() string {
	return e.Date.Format(DateLayout)
}

// LatestInvoice is a row of the "latest invoices" panel.
type LatestInvoice struct {
	ID              string    `gorm:"column:id" json:"id"`
	Name            string    `gorm:"column:name" json:"name"`
	Email           string    `gorm:"column:email" json:"email"`
	ImageURL        string    `gorm:"column:image_url" json:"image_url"`
	Amount          int64     `gorm:"column:amount" json:"amount"`
	Date            time.Time `gorm:"column:date" json:"-"`
	FormattedAmount string    `gorm:"-" json:"formatted_amount"`
}

// InvoiceForm is an invoice prepared for the edit form, amount in dollars.
type InvoiceForm struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     string `json:"amount"`
	Status     Status `json:"status"`
}
