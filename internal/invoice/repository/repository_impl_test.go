package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/smallbiznis/invoiceboard/internal/invoice/domain"
	"github.com/smallbiznis/invoiceboard/internal/seed/seedtest"
	"github.com/smallbiznis/invoiceboard/pkg/db"
	"github.com/smallbiznis/invoiceboard/pkg/db/pagination"
	pkgrepository "github.com/smallbiznis/invoiceboard/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPredicateUsesDialectCast(t *testing.T) {
	clause, args := searchPredicate(db.DialectMySQL, "PAID")
	assert.Contains(t, clause, "CAST(invoices.amount AS CHAR)")
	assert.Contains(t, clause, "CAST(invoices.date AS CHAR)")
	require.Len(t, args, 5)
	for _, arg := range args {
		assert.Equal(t, "%paid%", arg)
	}

	clause, _ = searchPredicate(db.DialectPostgres, "")
	assert.Contains(t, clause, "CAST(invoices.amount AS TEXT)")
	assert.Equal(t, strings.Count(clause, "?"), 5)
}

func seedListing(t *testing.T, store pkgrepository.Store, n int) {
	t.Helper()
	seedtest.InsertCustomer(t, store, "c1", "Amy Burns", "amy@burns.com")
	seedtest.InsertCustomer(t, store, "c2", "Lee Robinson", "lee@robinson.com")
	for i := 0; i < n; i++ {
		customer := "c1"
		status := "pending"
		if i%2 == 0 {
			customer = "c2"
			status = "paid"
		}
		// Three invoices share each date so ordering needs the id tie-break.
		date := fmt.Sprintf("2024-01-%02d", 1+i/3)
		seedtest.InsertInvoice(t, store, fmt.Sprintf("inv-%02d", i), customer, int64(1000+i), status, date)
	}
}

func TestFindFilteredOrdersByDateThenID(t *testing.T) {
	_, store := seedtest.Open(t)
	seedListing(t, store, 9)
	r := Provide(store)

	items, err := r.FindFiltered(context.Background(), "", 6, 0)
	require.NoError(t, err)
	require.Len(t, items, 6)

	assert.Equal(t, "inv-08", items[0].ID)
	assert.Equal(t, "inv-07", items[1].ID)
	assert.Equal(t, "inv-06", items[2].ID)
	assert.Equal(t, "2024-01-03", items[0].DateString())
	assert.Equal(t, "Lee Robinson", items[0].Name)
	assert.Equal(t, "/customers/c2.png", items[0].ImageURL)
}

func TestCountMatchesRowsReachableByPaging(t *testing.T) {
	_, store := seedtest.Open(t)
	seedListing(t, store, 20)
	r := Provide(store)
	ctx := context.Background()

	for _, query := range []string{"", "amy", "ROBINSON", "paid", "2024-01-0", "101", "nothing-matches"} {
		count, err := r.CountFiltered(ctx, query)
		require.NoError(t, err)

		seen := map[string]struct{}{}
		pages := pagination.TotalPages(count, pagination.DefaultPageSize)
		for page := 1; page <= pages; page++ {
			w := pagination.WindowFor(page, pagination.DefaultPageSize)
			items, err := r.FindFiltered(ctx, query, w.Limit, w.Offset)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(items), pagination.DefaultPageSize)
			for _, item := range items {
				_, dup := seen[item.ID]
				assert.False(t, dup, "query %q page %d repeats %s", query, page, item.ID)
				seen[item.ID] = struct{}{}
			}
		}
		assert.EqualValues(t, count, len(seen), "query %q", query)
	}
}

func TestPaidFilterScenario(t *testing.T) {
	_, store := seedtest.Open(t)
	seedtest.InsertCustomer(t, store, "c1", "Amy Burns", "amy@burns.com")
	for i, status := range []string{"paid", "paid", "paid", "pending", "pending"} {
		seedtest.InsertInvoice(t, store, fmt.Sprintf("i%d", i), "c1", 500, status, "2024-02-01")
	}
	r := Provide(store)

	count, err := r.CountFiltered(context.Background(), "paid")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Equal(t, 1, pagination.TotalPages(count, pagination.DefaultPageSize))

	items, err := r.FindFiltered(context.Background(), "paid", 6, 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, domain.StatusPaid, item.Status)
	}
}

func TestHostileQueryIsBoundVerbatim(t *testing.T) {
	_, store := seedtest.Open(t)
	seedListing(t, store, 3)
	r := Provide(store)

	count, err := r.CountFiltered(context.Background(), "'; DROP TABLE invoices; --")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.EqualValues(t, 3, seedtest.CountInvoices(t, store))
}

func TestFindLatestLimitsAndJoins(t *testing.T) {
	_, store := seedtest.Open(t)
	seedListing(t, store, 8)
	r := Provide(store)

	items, err := r.FindLatest(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 5)
	assert.Equal(t, "inv-07", items[0].ID)
	assert.NotEmpty(t, items[0].Email)
}

func TestFindByIDMissing(t *testing.T) {
	_, store := seedtest.Open(t)
	got, err := Provide(store).FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}
