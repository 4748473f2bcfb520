package repo

import (
	"context"

	"gorm.io/gorm"
)

// Table is the data-access surface of a single record type.
type Table[T any] struct {
	DB *gorm.DB
}

func NewTable[T any](db *gorm.DB) *Table[T] {
	return &Table[T]{DB: db}
}

func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := t.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns (nil, nil) when no row has the given id.
func (t *Table[T]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	res := t.DB.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (t *Table[T]) Insert(ctx context.Context, rec *T) error {
	return t.DB.WithContext(ctx).Create(rec).Error
}

func (t *Table[T]) Update(ctx context.Context, rec *T) error {
	return t.DB.WithContext(ctx).Save(rec).Error
}

func (t *Table[T]) Delete(ctx context.Context, rec *T) error {
	res := t.DB.WithContext(ctx).Delete(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// deleteBatch keeps IN lists under the bind-variable limits of both drivers.
const deleteBatch = 500

// DeleteAll removes every row in one transaction and returns the removed rows.
// Rows inserted concurrently after the read are left in place.
func (t *Table[T]) DeleteAll(ctx context.Context) ([]T, error) {
	removed := make([]T, 0)
	err := t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id ASC").Find(&removed).Error; err != nil {
			return err
		}
		for start := 0; start < len(removed); start += deleteBatch {
			end := min(start+deleteBatch, len(removed))
			batch := removed[start:end]
			if err := tx.Delete(&batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (t *Table[T]) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := t.DB.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
