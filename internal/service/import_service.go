package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andref/albion-market/internal/catalog"
	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// importIgnoreWords excludes untradable and cosmetic ids from the catalog
// import; nothing downstream can price them.
var importIgnoreWords = []string{
	"NONTRADABLE", "SKIN", "TRASH", "UNIQUE_HIDEOUT", "QUESTITEM_TOKEN_SMUGGLER",
}

// CraftingTargetCategories are the shop categories (or subcategories) whose
// items get their recipes resolved into material edges.
var CraftingTargetCategories = []string{"accessories", "offhand", "armor", "magic", "melee"}

// ImportService loads the game's item and stats dumps into the database and
// resolves crafting recipes into material edges.
type ImportService struct {
	itemRepo     repository.ItemRepository
	statRepo     repository.StatRepository
	materialRepo repository.MaterialRepository
}

func NewImportService(itemRepo repository.ItemRepository, statRepo repository.StatRepository, materialRepo repository.MaterialRepository) *ImportService {
	return &ImportService{
		itemRepo:     itemRepo,
		statRepo:     statRepo,
		materialRepo: materialRepo,
	}
}

// itemDumpEntry is one row of the flat localization dump.
type itemDumpEntry struct {
	UniqueName            string            `json:"UniqueName"`
	LocalizedNames        map[string]string `json:"LocalizedNames"`
	LocalizedDescriptions map[string]string `json:"LocalizedDescriptions"`
}

// ImportItems loads the flat item dump, skipping untradable ids, and
// upserts one Item per remaining entry. Tier and enchantment level come
// from the identifier itself. Returns the number of items imported.
func (s *ImportService) ImportItems(ctx context.Context, r io.Reader) (int, error) {
	var entries []itemDumpEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("decode item dump: %w", err)
	}

	items := make([]*domain.Item, 0, len(entries))
	for _, e := range entries {
		if e.UniqueName == "" || containsAny(e.UniqueName, importIgnoreWords) {
			continue
		}
		items = append(items, &domain.Item{
			UniqueName:       e.UniqueName,
			NiceName:         e.LocalizedNames["EN-US"],
			Description:      e.LocalizedDescriptions["EN-US"],
			Tier:             domain.ParseTier(e.UniqueName),
			EnchantmentLevel: domain.ParseEnchantment(e.UniqueName),
		})
	}

	if err := s.itemRepo.UpsertMany(ctx, items); err != nil {
		return 0, fmt.Errorf("storing items: %w", err)
	}
	return len(items), nil
}

// ImportStats resolves the stat record of every stored item against the
// nested stats catalog, filling the item's shop and crafting columns and
// storing the raw record JSON for later recipe processing. Items without a
// catalog record keep whatever they had. Returns the number of items that
// resolved.
func (s *ImportService) ImportStats(ctx context.Context, cat *catalog.Catalog) (int, error) {
	items, err := s.itemRepo.List(ctx, domain.ItemFilter{})
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, item := range items {
		rec, ok := cat.FindStats(item.UniqueName)
		if !ok {
			continue
		}

		applyStatColumns(item, rec)
		if err := s.itemRepo.Upsert(ctx, item); err != nil {
			return resolved, fmt.Errorf("updating %s: %w", item.UniqueName, err)
		}

		stat, err := statRecordRow(item.ID, rec)
		if err != nil {
			log.Warn().Err(err).Str("item", item.UniqueName).Msg("encoding stat record failed")
			continue
		}
		if err := s.statRepo.Upsert(ctx, stat); err != nil {
			return resolved, fmt.Errorf("storing stats for %s: %w", item.UniqueName, err)
		}
		resolved++
	}
	return resolved, nil
}

// ProcessCrafting resolves recipes for every item in the crafting target
// categories, replacing each item's material edges. Unknown materials get
// stub items so the edge can still be stored; their prices arrive on the
// next refresh. Returns the number of items that got a recipe.
func (s *ImportService) ProcessCrafting(ctx context.Context) (int, error) {
	processed := 0
	seen := make(map[uint]bool)
	for _, category := range CraftingTargetCategories {
		for _, filter := range []domain.ItemFilter{{Category: category}, {Subcategory: category}} {
			items, err := s.itemRepo.List(ctx, filter)
			if err != nil {
				return processed, err
			}
			for _, item := range items {
				if seen[item.ID] {
					continue
				}
				seen[item.ID] = true
				ok, err := s.processItemCrafting(ctx, item)
				if err != nil {
					return processed, err
				}
				if ok {
					processed++
				}
			}
		}
	}
	return processed, nil
}

// ProcessItemCrafting resolves one item's recipe into material edges.
func (s *ImportService) ProcessItemCrafting(ctx context.Context, item *domain.Item) error {
	_, err := s.processItemCrafting(ctx, item)
	return err
}

func (s *ImportService) processItemCrafting(ctx context.Context, item *domain.Item) (bool, error) {
	stat, err := s.statRepo.GetByItemID(ctx, item.ID)
	if err != nil {
		return false, err
	}
	if stat == nil || len(stat.CraftingRequirements) == 0 {
		return false, nil
	}

	recipe := catalog.ParseRecipe(stat.CraftingRequirements)
	materials := recipe.Materials()
	if len(materials) == 0 {
		return false, nil
	}

	edges := make([]*domain.ItemMaterial, 0, len(materials))
	for _, m := range materials {
		mat, err := s.resolveMaterial(ctx, m.UniqueName)
		if err != nil {
			return false, err
		}
		edges = append(edges, &domain.ItemMaterial{
			MaterialID:      mat.ID,
			Amount:          m.Amount,
			MaxReturnAmount: m.MaxReturnAmount,
		})
	}

	if err := s.materialRepo.ReplaceForItem(ctx, item.ID, edges); err != nil {
		return false, fmt.Errorf("storing materials for %s: %w", item.UniqueName, err)
	}
	return true, nil
}

// resolveMaterial finds the material item, creating a stub when the dump
// never listed it. Stubs default to tier 1 when the identifier carries no
// tier prefix.
func (s *ImportService) resolveMaterial(ctx context.Context, uniqueName string) (*domain.Item, error) {
	mat, err := s.itemRepo.GetByUniqueName(ctx, uniqueName)
	if err == nil {
		return mat, nil
	}
	if err != domain.ErrItemNotFound {
		return nil, err
	}

	tier := domain.ParseTier(uniqueName)
	if tier == 0 {
		tier = 1
	}
	stub := &domain.Item{
		UniqueName:       uniqueName,
		NiceName:         uniqueName,
		Tier:             tier,
		EnchantmentLevel: domain.ParseEnchantment(uniqueName),
	}
	if err := s.itemRepo.Upsert(ctx, stub); err != nil {
		return nil, fmt.Errorf("creating stub material %s: %w", uniqueName, err)
	}
	log.Debug().Str("material", uniqueName).Msg("created stub material item")
	return s.itemRepo.GetByUniqueName(ctx, uniqueName)
}

// applyStatColumns copies the queryable attributes out of the stat record.
// The enchantment sub-record wins for item power when present.
func applyStatColumns(item *domain.Item, rec catalog.StatRecord) {
	n := rec.Node
	if v := n.Str("@shopcategory"); v != "" {
		item.ShopCategory = v
	}
	if v := n.Str("@shopsubcategory1"); v != "" {
		item.ShopSubcategory1 = v
	}
	if v := n.Str("@slottype"); v != "" {
		item.SlotType = v
	}
	if v := n.Str("@craftingcategory"); v != "" {
		item.CraftingCategory = v
	}
	if v := n.Int("@tier"); v > 0 {
		item.Tier = v
	}
	if v := n.Int("@itempower"); v > 0 {
		item.ItemPower = v
	}
	if rec.Enchantment != nil {
		if v := rec.Enchantment.Int("@itempower"); v > 0 {
			item.ItemPower = v
		}
	}
}

// statRecordRow builds the jsonb stat row. Crafting requirements come from
// the enchantment sub-record when one applies, since enchanted variants
// craft from enchanted materials.
func statRecordRow(itemID uint, rec catalog.StatRecord) (*domain.ItemStat, error) {
	stat := &domain.ItemStat{ItemID: itemID}

	data, err := json.Marshal(rec.Node)
	if err != nil {
		return nil, err
	}
	stat.StatsData = datatypes.JSON(data)

	if rec.Enchantment != nil {
		ench, err := json.Marshal(rec.Enchantment)
		if err != nil {
			return nil, err
		}
		stat.Enchantment = datatypes.JSON(ench)
	}

	crafting := craftingSource(rec)
	if crafting != nil {
		raw, err := json.Marshal(crafting)
		if err != nil {
			return nil, err
		}
		stat.CraftingRequirements = datatypes.JSON(raw)
	}

	if upgrade, ok := rec.UpgradeRequirements(); ok {
		raw, err := json.Marshal(upgrade)
		if err != nil {
			return nil, err
		}
		stat.UpgradeRequirements = datatypes.JSON(raw)
	}

	return stat, nil
}

func craftingSource(rec catalog.StatRecord) any {
	if rec.Enchantment != nil {
		if v, ok := rec.Enchantment["craftingrequirements"]; ok {
			return v
		}
	}
	if v, ok := rec.Node["craftingrequirements"]; ok {
		return v
	}
	return nil
}
