package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Item identifiers encode tier and enchantment: "T4_BAG@2" is the tier-4 bag
// at enchantment level 2. The stat and price catalogs key on the base form
// without the "@N" suffix.

var (
	tierPattern        = regexp.MustCompile(`^T(\d)_`)
	enchantmentPattern = regexp.MustCompile(`@(\d)$`)
)

// ParseTier extracts the leading tier marker ("T4_..." -> 4).
// Returns 0 when the identifier carries no tier prefix.
func ParseTier(id string) int {
	m := tierPattern.FindStringSubmatch(id)
	if m == nil {
		return 0
	}
	tier, _ := strconv.Atoi(m[1])
	return tier
}

// ParseEnchantment extracts the trailing enchantment marker ("...@2" -> 2).
// Returns 0 when no suffix is present.
func ParseEnchantment(id string) int {
	m := enchantmentPattern.FindStringSubmatch(id)
	if m == nil {
		return 0
	}
	level, _ := strconv.Atoi(m[1])
	return level
}

// BaseID strips the enchantment suffix, returning the canonical identifier
// the catalogs key on.
func BaseID(id string) string {
	return enchantmentPattern.ReplaceAllString(id, "")
}

// WithTier prefixes a base name with a tier marker, inverse of ParseTier.
func WithTier(base string, tier int) string {
	return fmt.Sprintf("T%d_%s", tier, base)
}

// WithEnchantment appends the enchantment suffix to a base identifier,
// inverse of ParseEnchantment. Level 0 is encoded as no suffix.
func WithEnchantment(baseID string, level int) string {
	if level <= 0 {
		return baseID
	}
	return fmt.Sprintf("%s@%d", baseID, level)
}

// NormalizeContainerID removes container-state markers. Filled and empty
// container variants ("..._EMPTY", "..._FULL") share the stat and price
// records of the unmarked form.
func NormalizeContainerID(id string) string {
	id = strings.ReplaceAll(id, "_EMPTY", "")
	return strings.ReplaceAll(id, "_FULL", "")
}
