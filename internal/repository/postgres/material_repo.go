package postgres

import (
	"context"

	"github.com/andref/albion-market/internal/domain"
	"gorm.io/gorm"
)

type materialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *materialRepository {
	return &materialRepository{db: db}
}

// ReplaceForItem swaps the item's material edges for the given set inside
// one transaction. Re-processing a recipe replaces, it never merges.
func (r *materialRepository) ReplaceForItem(ctx context.Context, itemID uint, materials []*domain.ItemMaterial) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&domain.ItemMaterial{}).Error; err != nil {
			return err
		}
		if len(materials) == 0 {
			return nil
		}
		for _, m := range materials {
			m.ItemID = itemID
		}
		return tx.Create(materials).Error
	})
}

func (r *materialRepository) GetForItem(ctx context.Context, itemID uint) ([]domain.ItemMaterial, error) {
	var materials []domain.ItemMaterial
	err := r.db.WithContext(ctx).
		Preload("Material").
		Preload("Material.Prices").
		Where("item_id = ?", itemID).
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}
