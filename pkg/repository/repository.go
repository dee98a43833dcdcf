// Package repository exposes the single store capability set used by every
// data-access component: bound-parameter reads and bound-parameter writes.
package repository

import "context"

type Store interface {
	// Query runs a read statement and scans the result rows into dest.
	Query(ctx context.Context, dest any, sql string, args ...any) error
	// Execute runs a write statement and reports the affected row count.
	Execute(ctx context.Context, sql string, args ...any) (int64, error)
	// Dialect names the underlying database (postgres, mysql, sqlite).
	Dialect() string
}
