package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/smallbiznis/invoiceboard/pkg/repository"
	"gorm.io/gorm"
)

//go:embed schema.sql
var schemaSQL string

// Statements returns the schema DDL split into individual statements.
func Statements() []string {
	parts := strings.Split(schemaSQL, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// EnsureSchema creates the dashboard tables when they are missing.
func EnsureSchema(ctx context.Context, store repository.Store) error {
	if store == nil {
		return errors.New("seed store is required")
	}
	for _, stmt := range Statements() {
		if _, err := store.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// EnsurePlaceholderData loads the placeholder customers, invoices and revenue
// once. Tables that already hold rows are left untouched.
func EnsurePlaceholderData(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := repository.ProvideStore(tx)
		if err := EnsureSchema(ctx, store); err != nil {
			return err
		}
		if err := ensureCustomers(ctx, store); err != nil {
			return err
		}
		if err := ensureInvoices(ctx, store); err != nil {
			return err
		}
		return ensureRevenue(ctx, store)
	})
}

func isEmpty(ctx context.Context, store repository.Store, table string) (bool, error) {
	var row struct{ Count int64 }
	if err := store.Query(ctx, &row, "SELECT COUNT(*) AS count FROM "+table); err != nil {
		return false, err
	}
	return row.Count == 0, nil
}

func ensureCustomers(ctx context.Context, store repository.Store) error {
	empty, err := isEmpty(ctx, store, "customers")
	if err != nil || !empty {
		return err
	}
	for _, c := range Customers {
		if _, err := store.Execute(ctx,
			`INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)`,
			c.ID, c.Name, c.Email, c.ImageURL,
		); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.ID, err)
		}
	}
	return nil
}

func ensureInvoices(ctx context.Context, store repository.Store) error {
	empty, err := isEmpty(ctx, store, "invoices")
	if err != nil || !empty {
		return err
	}
	for _, inv := range Invoices {
		if _, err := store.Execute(ctx,
			`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
			inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date,
		); err != nil {
			return fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
	}
	return nil
}

func ensureRevenue(ctx context.Context, store repository.Store) error {
	empty, err := isEmpty(ctx, store, "revenue")
	if err != nil || !empty {
		return err
	}
	for _, r := range Revenue {
		if _, err := store.Execute(ctx,
			`INSERT INTO revenue (month, revenue) VALUES (?, ?)`,
			r.Month, r.Revenue,
		); err != nil {
			return fmt.Errorf("seed revenue %s: %w", r.Month, err)
		}
	}
	return nil
}
