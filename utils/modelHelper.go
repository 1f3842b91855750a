package utils

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

/* DB fetching */

// FetchModel loads one row by primary key through the given session.
// (may return RecordNotFound)
func FetchModel[T any](ctx context.Context, db *gorm.DB, id int) (*T, error) {
	var result T
	err := db.WithContext(ctx).First(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

// FetchIds returns every primary key of T, ascending.
func FetchIds[T any](ctx context.Context, db *gorm.DB) ([]int, error) {
	var v T
	var ids []int
	err := db.WithContext(ctx).Model(&v).Order("id").Pluck("id", &ids).Error
	return ids, err
}
