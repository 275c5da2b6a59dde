package postgres

import (
	"context"
	"errors"

	"github.com/andref/albion-market/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) *statRepository {
	return &statRepository{db: db}
}

func (r *statRepository) Upsert(ctx context.Context, stat *domain.ItemStat) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		UpdateAll: true,
	}).Create(stat).Error
}

func (r *statRepository) GetByItemID(ctx context.Context, itemID uint) (*domain.ItemStat, error) {
	var stat domain.ItemStat
	err := r.db.WithContext(ctx).First(&stat, "item_id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stat, nil
}
