package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/andref/albion-market/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *itemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Upsert(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unique_name"}},
		UpdateAll: true,
	}).Create(item).Error
}

func (r *itemRepository) UpsertMany(ctx context.Context, items []*domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unique_name"}},
		UpdateAll: true,
	}).CreateInBatches(items, 500).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *itemRepository) GetByUniqueName(ctx context.Context, uniqueName string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).First(&item, "unique_name = ?", uniqueName).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *itemRepository) GetByUniqueNames(ctx context.Context, uniqueNames []string) ([]*domain.Item, error) {
	if len(uniqueNames) == 0 {
		return nil, nil
	}
	var items []*domain.Item
	err := r.db.WithContext(ctx).Where("unique_name IN ?", uniqueNames).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetDetail loads an item with its prices, stats and material edges,
// including each material's own prices for cost computation.
func (r *itemRepository) GetDetail(ctx context.Context, id uint) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Preload("Stats").
		Preload("Materials").
		Preload("Materials.Material").
		Preload("Materials.Material.Prices").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error) {
	q := r.db.WithContext(ctx).Model(&domain.Item{})
	if filter.Category != "" {
		q = q.Where("shop_category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		q = q.Where("shop_subcategory1 = ?", filter.Subcategory)
	}
	if filter.Tier > 0 {
		q = q.Where("tier = ?", filter.Tier)
	}
	if filter.Enchantment != nil {
		q = q.Where("enchantment_level = ?", *filter.Enchantment)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(nice_name) LIKE ? OR LOWER(unique_name) LIKE ?", pattern, pattern)
	}

	var items []*domain.Item
	err := q.Order("tier ASC, unique_name ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Distinct("shop_category").
		Where("shop_category <> ''").
		Order("shop_category ASC").
		Pluck("shop_category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrItemNotFound
	}
	return err
}
