package domain

// Customer is read-only from the dashboard's point of view.
type Customer struct {
	ID       string `gorm:"column:id" json:"id"`
	Name     string `gorm:"column:name" json:"name"`
	Email    string `gorm:"column:email" json:"email"`
	ImageURL string `gorm:"column:image_url" json:"image_url"`
}

// CustomerTableRow is a customer with invoice totals for the customers table.
type CustomerTableRow struct {
	ID            string `gorm:"column:id" json:"id"`
	Name          string `gorm:"column:name" json:"name"`
	Email         string `gorm:"column:email" json:"email"`
	ImageURL      string `gorm:"column:image_url" json:"image_url"`
	TotalInvoices int64  `gorm:"column:total_invoices" json:"total_invoices"`
	TotalPending  int64  `gorm:"column:total_pending" json:"total_pending"`
	TotalPaid     int64  `gorm:"column:total_paid" json:"total_paid"`

	FormattedPending string `gorm:"-" json:"formatted_pending"`
	FormattedPaid    string `gorm:"-" json:"formatted_paid"`
}
