package repository

import (
	"strings"

	"github.com/smallbiznis/invoiceboard/pkg/db"
)

// searchPredicate is the WHERE clause shared by the filtered page and its
// count. Matching is a case-insensitive substring test against customer name,
// customer email, amount, date and status.
func searchPredicate(dialect, query string) (string, []any) {
	pattern := "%" + strings.ToLower(query) + "%"
	clause := `(LOWER(customers.name) LIKE ?
		OR LOWER(customers.email) LIKE ?
		OR ` + db.TextCast(dialect, "invoices.amount") + ` LIKE ?
		OR ` + db.TextCast(dialect, "invoices.date") + ` LIKE ?
		OR LOWER(invoices.status) LIKE ?)`
	return clause, []any{pattern, pattern, pattern, pattern, pattern}
}
