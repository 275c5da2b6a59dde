package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Item is a tradable/craftable game object, imported from the catalog dump
// and enriched with stats, prices and crafting materials.
type Item struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	UniqueName       string         `json:"uniquename" gorm:"uniqueIndex;not null"`
	NiceName         string         `json:"nicename"`
	Description      string         `json:"description"`
	Tier             int            `json:"tier"`
	EnchantmentLevel int            `json:"enchantment_level" gorm:"not null;default:0"`
	ItemPower        int            `json:"item_power"`
	ShopCategory     string         `json:"shop_category" gorm:"index"`
	ShopSubcategory1 string         `json:"shop_subcategory1" gorm:"index"`
	SlotType         string         `json:"slot_type"`
	CraftingCategory string         `json:"crafting_category"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`

	// Relations
	Prices    []ItemPrice    `json:"prices,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Stats     []ItemStat     `json:"stats,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Materials []ItemMaterial `json:"materials,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// DisplayName prefers the localized name, falling back to the unique name.
func (i *Item) DisplayName() string {
	if i.NiceName != "" {
		return i.NiceName
	}
	return i.UniqueName
}

// IsResource reports whether the item is a raw material. Resources are not
// traded above Normal quality, so price and profitability lookups pin them
// to quality 1.
func (i *Item) IsResource() bool {
	return strings.EqualFold(i.ShopCategory, "resources")
}

// ItemMaterial is a crafting dependency edge: crafting one Item consumes
// Amount units of the Material item, with up to MaxReturnAmount refunded on
// a failed craft.
type ItemMaterial struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ItemID          uint      `json:"item_id" gorm:"uniqueIndex:idx_item_material;not null"`
	MaterialID      uint      `json:"material_id" gorm:"uniqueIndex:idx_item_material;not null"`
	Amount          int       `json:"amount" gorm:"not null"`
	MaxReturnAmount int       `json:"max_return_amount" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	Material *Item `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

// ItemStat holds the raw stat payload for an item as exported by the game
// data dump. The JSON columns are opaque to everything except the catalog
// package, which knows how to walk them.
type ItemStat struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	ItemID               uint           `json:"item_id" gorm:"uniqueIndex;not null"`
	StatsData            datatypes.JSON `json:"stats_data" gorm:"type:jsonb"`
	Enchantment          datatypes.JSON `json:"enchantment" gorm:"type:jsonb"`
	CraftingRequirements datatypes.JSON `json:"craftingrequirements" gorm:"type:jsonb"`
	UpgradeRequirements  datatypes.JSON `json:"upgraderequirements" gorm:"type:jsonb"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// ItemPrice is one quote: an item at one quality in one city. The
// (item, quality, city) triple is unique; refreshed quotes overwrite in
// place. A price of 0 or a nil date means "no data", not a real quote.
type ItemPrice struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	ItemID           uint       `json:"item_id" gorm:"uniqueIndex:idx_item_quality_city;not null"`
	Quality          Quality    `json:"quality" gorm:"uniqueIndex:idx_item_quality_city;not null"`
	City             City       `json:"city" gorm:"uniqueIndex:idx_item_quality_city;not null"`
	SellPriceMin     int64      `json:"sell_price_min"`
	SellPriceMinDate *time.Time `json:"sell_price_min_date"`
	SellPriceMax     int64      `json:"sell_price_max"`
	SellPriceMaxDate *time.Time `json:"sell_price_max_date"`
	BuyPriceMin      int64      `json:"buy_price_min"`
	BuyPriceMinDate  *time.Time `json:"buy_price_min_date"`
	BuyPriceMax      int64      `json:"buy_price_max"`
	BuyPriceMaxDate  *time.Time `json:"buy_price_max_date"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	Item *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

// ItemFilter narrows item listings. Zero values mean "any"; Enchantment is
// a pointer because level 0 is a real filter value.
type ItemFilter struct {
	Category    string
	Subcategory string
	Tier        int
	Enchantment *int
	Search      string
}
