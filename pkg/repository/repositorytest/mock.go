// Package repositorytest provides a testify-backed Store double.
package repositorytest

import (
	"context"

	"github.com/smallbiznis/invoiceboard/pkg/repository"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
	DialectName string
}

var _ repository.Store = (*MockStore)(nil)

func (m *MockStore) Query(ctx context.Context, dest any, sql string, args ...any) error {
	called := m.Called(ctx, dest, sql, args)
	return called.Error(0)
}

func (m *MockStore) Execute(ctx context.Context, sql string, args ...any) (int64, error) {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(int64), called.Error(1)
}

func (m *MockStore) Dialect() string {
	if m.DialectName == "" {
		return "sqlite"
	}
	return m.DialectName
}
