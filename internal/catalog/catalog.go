package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/andref/albion-market/internal/domain"
)

// ImportCategories is the allowlist of stat-dump categories worth importing.
// Everything else (spells, buildings, loot chests) never shows up on the
// market.
var ImportCategories = []string{
	"trackingitem",
	"farmableitem",
	"simpleitem",
	"consumableitem",
	"equipmentitem",
	"weapon",
	"mount",
	"furnitureitem",
	"consumablefrominventoryitem",
	"mountskin",
	"journalitem",
	"labourercontract",
	"transformationweapon",
	"crystalleagueitem",
	"siegebanner",
	"killtrophy",
}

// maxSearchDepth bounds the recursive catalog walk. The records we care
// about sit two levels under the category map; callers must not rely on
// deeper nesting being searched.
const maxSearchDepth = 2

// StatRecord is the resolved stat entry for one item identifier.
type StatRecord struct {
	Node        Node // the matched catalog record
	Enchantment Node // enchantment-specific sub-record, nil when none applies
}

// UpgradeRequirements returns the upgrade requirements embedded in the
// enchantment sub-record, if any.
func (r StatRecord) UpgradeRequirements() (Node, bool) {
	if r.Enchantment == nil {
		return nil, false
	}
	return r.Enchantment.Node("upgraderequirements")
}

// Catalog is the merged, category-filtered stats document.
type Catalog struct {
	items Node
}

// New builds a catalog from an already decoded stats document, keeping only
// the allowlisted categories.
func New(items map[string]any) *Catalog {
	allowed := make(map[string]bool, len(ImportCategories))
	for _, c := range ImportCategories {
		allowed[c] = true
	}

	merged := Node{}
	for name, v := range items {
		if allowed[name] {
			merged[name] = v
		}
	}
	return &Catalog{items: merged}
}

// Load decodes a stats dump of the shape {"items": {category: [...], ...}}.
func Load(r io.Reader) (*Catalog, error) {
	var doc struct {
		Items map[string]any `json:"items"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode stats dump: %w", err)
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("stats dump has no items section: %w", domain.ErrMalformedCatalog)
	}
	return New(doc.Items), nil
}

// FindStats resolves the stat record for a full item identifier. The
// enchantment suffix and container-state markers are stripped before the
// lookup; when the identifier encodes an enchantment level the matching
// entry of the record's enchantments sub-tree is attached, otherwise the
// first enchantment entry (when present) is used.
//
// A missing record is a normal case, reported via ok=false, never an error.
func (c *Catalog) FindStats(id string) (StatRecord, bool) {
	level := domain.ParseEnchantment(id)
	base := domain.NormalizeContainerID(domain.BaseID(id))

	node, ok := findByKey(c.items, "@uniquename", base, maxSearchDepth)
	if !ok {
		return StatRecord{}, false
	}

	rec := StatRecord{Node: node}
	if ench, hasEnch := node.Node("enchantments"); hasEnch {
		if level > 0 {
			if e, found := findByKey(ench, "@enchantmentlevel", strconv.Itoa(level), maxSearchDepth); found {
				rec.Enchantment = e
			}
		} else if entries := ench.List("enchantment"); len(entries) > 0 {
			rec.Enchantment = entries[0]
		}
	}
	return rec, true
}

// findByKey walks maps and lists looking for an object whose attribute
// equals want, descending at most depth levels below the given container.
func findByKey(container any, key, want string, depth int) (Node, bool) {
	var children []any
	switch vv := container.(type) {
	case map[string]any:
		children = make([]any, 0, len(vv))
		for _, v := range vv {
			children = append(children, v)
		}
	case Node:
		children = make([]any, 0, len(vv))
		for _, v := range vv {
			children = append(children, v)
		}
	case []any:
		children = vv
	default:
		return nil, false
	}

	for _, child := range children {
		if m, ok := child.(map[string]any); ok {
			if attrEquals(m[key], want) {
				return Node(m), true
			}
		}
		if depth > 0 {
			if found, ok := findByKey(child, key, want, depth-1); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// attrEquals compares an attribute value against its string form; the dump
// encodes numbers inconsistently as strings or JSON numbers.
func attrEquals(v any, want string) bool {
	switch vv := v.(type) {
	case string:
		return vv == want
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64) == want
	default:
		return false
	}
}
