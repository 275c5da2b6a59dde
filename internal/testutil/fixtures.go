package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/andref/albion-market/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemBuilder creates test items with a builder pattern
type ItemBuilder struct {
	uniqueName       string
	niceName         string
	tier             int
	enchantmentLevel int
	shopCategory     string
	shopSubcategory  string
	craftingCategory string
}

// NewItemBuilder creates a new ItemBuilder with default values. The unique
// name carries a random suffix so builds never collide across tests sharing
// a database.
func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		uniqueName:   fmt.Sprintf("T4_TEST_ITEM_%s", uuid.New().String()[:8]),
		niceName:     "Test Item",
		tier:         4,
		shopCategory: "accessories",
	}
}

// WithUniqueName sets the unique name
func (b *ItemBuilder) WithUniqueName(name string) *ItemBuilder {
	b.uniqueName = name
	return b
}

// WithNiceName sets the display name
func (b *ItemBuilder) WithNiceName(name string) *ItemBuilder {
	b.niceName = name
	return b
}

// WithTier sets the tier
func (b *ItemBuilder) WithTier(tier int) *ItemBuilder {
	b.tier = tier
	return b
}

// WithEnchantment sets the enchantment level
func (b *ItemBuilder) WithEnchantment(level int) *ItemBuilder {
	b.enchantmentLevel = level
	return b
}

// WithCategory sets shop category and subcategory
func (b *ItemBuilder) WithCategory(category, subcategory string) *ItemBuilder {
	b.shopCategory = category
	b.shopSubcategory = subcategory
	return b
}

// WithCraftingCategory sets the crafting category
func (b *ItemBuilder) WithCraftingCategory(category string) *ItemBuilder {
	b.craftingCategory = category
	return b
}

// AsResource marks the item as a raw or refined resource
func (b *ItemBuilder) AsResource() *ItemBuilder {
	b.shopCategory = "resources"
	return b
}

// Build creates the item in the database
func (b *ItemBuilder) Build(t *testing.T, db *gorm.DB) *domain.Item {
	t.Helper()

	item := &domain.Item{
		UniqueName:       b.uniqueName,
		NiceName:         b.niceName,
		Tier:             b.tier,
		EnchantmentLevel: b.enchantmentLevel,
		ShopCategory:     b.shopCategory,
		ShopSubcategory1: b.shopSubcategory,
		CraftingCategory: b.craftingCategory,
	}

	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	return item
}

// CreatePrice inserts a sell-side quote for the item
func CreatePrice(t *testing.T, db *gorm.DB, itemID uint, city domain.City, quality domain.Quality, sellMin int64) *domain.ItemPrice {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	price := &domain.ItemPrice{
		ItemID:           itemID,
		City:             city,
		Quality:          quality,
		SellPriceMin:     sellMin,
		SellPriceMinDate: &now,
	}

	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create price: %v", err)
	}

	return price
}

// CreateBuyOrder inserts a buy-side quote for the item
func CreateBuyOrder(t *testing.T, db *gorm.DB, itemID uint, city domain.City, quality domain.Quality, buyMin int64) *domain.ItemPrice {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	price := &domain.ItemPrice{
		ItemID:          itemID,
		City:            city,
		Quality:         quality,
		BuyPriceMin:     buyMin,
		BuyPriceMinDate: &now,
	}

	if err := db.Create(price).Error; err != nil {
		t.Fatalf("failed to create buy order: %v", err)
	}

	return price
}

// LinkMaterial attaches a material edge between a craftable item and one of
// its ingredients
func LinkMaterial(t *testing.T, db *gorm.DB, itemID, materialID uint, amount int) *domain.ItemMaterial {
	t.Helper()

	edge := &domain.ItemMaterial{
		ItemID:     itemID,
		MaterialID: materialID,
		Amount:     amount,
	}

	if err := db.Create(edge).Error; err != nil {
		t.Fatalf("failed to link material: %v", err)
	}

	return edge
}
