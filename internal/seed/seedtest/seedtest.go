// Package seedtest opens schema-ready in-memory databases for tests.
package seedtest

import (
	"context"
	"testing"

	"github.com/smallbiznis/invoiceboard/internal/seed"
	"github.com/smallbiznis/invoiceboard/pkg/db"
	"github.com/smallbiznis/invoiceboard/pkg/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns an empty database with the dashboard schema applied.
func Open(t testing.TB) (*gorm.DB, repository.Store) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repository.ProvideStore(conn)
	require.NoError(t, seed.EnsureSchema(context.Background(), store))
	return conn, store
}

func InsertCustomer(t testing.TB, store repository.Store, id, name, email string) {
	t.Helper()
	_, err := store.Execute(context.Background(),
		`INSERT INTO customers (id, name, email, image_url) VALUES (?, ?, ?, ?)`,
		id, name, email, "/customers/"+id+".png",
	)
	require.NoError(t, err)
}

func InsertInvoice(t testing.TB, store repository.Store, id, customerID string, amount int64, status, date string) {
	t.Helper()
	_, err := store.Execute(context.Background(),
		`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
		id, customerID, amount, status, date,
	)
	require.NoError(t, err)
}

func CountInvoices(t testing.TB, store repository.Store) int64 {
	t.Helper()
	var row struct{ Count int64 }
	require.NoError(t, store.Query(context.Background(), &row, `SELECT COUNT(*) AS count FROM invoices`))
	return row.Count
}
