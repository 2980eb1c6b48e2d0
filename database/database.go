package database

import (
	"fmt"

	"dessert-cart/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=dessert_cart port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate products: %w", err)
	}
	return nil
}

// SeedProducts upserts products by name. Positions follow the order of the
// given slice so the table source returns the same catalog order.
func SeedProducts(db *gorm.DB, products []models.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}

	rows := make([]models.Product, len(products))
	copy(rows, products)
	for i := range rows {
		rows[i].Position = i
	}

	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"category",
			"price",
			"image_thumbnail",
			"image_mobile",
			"image_tablet",
			"image_desktop",
			"position",
			"updated_at",
		}),
	}).Create(&rows)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to seed products: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
