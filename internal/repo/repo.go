package repo

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_records/internal/models"
)

type GormRepo struct {
	DB *gorm.DB

	Customers  *Table[models.Customer]
	Categories *Table[models.ShopItemCategory]
	ShopItems  *Table[models.ShopItem]
	Orders     *Table[models.Order]
	OrderItems *Table[models.OrderItem]
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{
		DB:         db,
		Customers:  NewTable[models.Customer](db),
		Categories: NewTable[models.ShopItemCategory](db),
		ShopItems:  NewTable[models.ShopItem](db),
		Orders:     NewTable[models.Order](db),
		OrderItems: NewTable[models.OrderItem](db),
	}
}

// Migrate creates missing tables. It never alters or drops existing ones.
func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormRepo) TableName(model any) (string, error) {
	stmt := &gorm.Statement{DB: r.DB}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

// Clear empties every table inside one transaction.
func (r *GormRepo) Clear(ctx context.Context) error {
	all := models.All()
	names := make([]string, 0, len(all))
	for _, m := range all {
		name, err := r.TableName(m)
		if err != nil {
			return fmt.Errorf("table name: %w", err)
		}
		names = append(names, name)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(names) - 1; i >= 0; i-- {
			if err := tx.Exec("DELETE FROM " + pq.QuoteIdentifier(names[i])).Error; err != nil {
				return fmt.Errorf("clear %s: %w", names[i], err)
			}
		}
		return nil
	})
}
