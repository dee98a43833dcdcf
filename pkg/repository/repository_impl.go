package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type store struct {
	db *gorm.DB
}

func ProvideStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Query(ctx context.Context, dest any, sql string, args ...any) error {
	if dest == nil {
		return errors.New("query destination is required")
	}
	return s.db.WithContext(ctx).Raw(sql, args...).Scan(dest).Error
}

func (s *store) Execute(ctx context.Context, sql string, args ...any) (int64, error) {
	result := s.db.WithContext(ctx).Exec(sql, args...)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (s *store) Dialect() string {
	if s.db == nil || s.db.Dialector == nil {
		return ""
	}
	return s.db.Dialector.Name()
}
