package postgres

import (
	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Item{},
		&domain.ItemStat{},
		&domain.ItemMaterial{},
		&domain.ItemPrice{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Item:     NewItemRepository(db),
		Price:    NewPriceRepository(db),
		Material: NewMaterialRepository(db),
		Stat:     NewStatRepository(db),
	}
}
