package catalog

import "encoding/json"

// Material is one entry of a crafting recipe.
type Material struct {
	UniqueName      string
	Amount          int
	MaxReturnAmount int
}

// Recipe is the parsed craftingrequirements payload. The dump uses two
// shapes: a single recipe with a direct craftresource entry-or-list, or a
// recipes list where each element carries its own craftresource. Resolution
// always uses the first recipe; the others stay available through All so a
// caller can offer alternatives without re-parsing raw stats.
type Recipe struct {
	lists    [][]Material
	multiple bool
}

// Materials returns the material list of the selected (first) recipe.
// Degenerate payloads resolve to an empty list.
func (r Recipe) Materials() []Material {
	if len(r.lists) == 0 {
		return nil
	}
	return r.lists[0]
}

// All returns every parsed material list, one per recipe.
func (r Recipe) All() [][]Material {
	return r.lists
}

// Multiple reports whether the payload declared alternative recipes.
func (r Recipe) Multiple() bool {
	return r.multiple
}

// Empty reports whether no usable recipe was found.
func (r Recipe) Empty() bool {
	return len(r.lists) == 0 || len(r.lists[0]) == 0
}

// ParseRecipe decodes a raw craftingrequirements JSON column. Malformed or
// unexpected shapes yield an empty recipe, never an error; items without
// usable crafting data are a normal case.
func ParseRecipe(raw []byte) Recipe {
	if len(raw) == 0 {
		return Recipe{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Recipe{}
	}
	return RecipeFromNode(Node(m))
}

// RecipeFromNode parses a craftingrequirements node from the stats catalog.
func RecipeFromNode(n Node) Recipe {
	if n == nil {
		return Recipe{}
	}
	if n.Has("craftresource") {
		return Recipe{lists: [][]Material{materialsOf(n)}}
	}
	if recipes := n.List("recipes"); len(recipes) > 0 {
		lists := make([][]Material, 0, len(recipes))
		for _, rec := range recipes {
			lists = append(lists, materialsOf(rec))
		}
		return Recipe{lists: lists, multiple: true}
	}
	return Recipe{}
}

func materialsOf(n Node) []Material {
	entries := n.List("craftresource")
	materials := make([]Material, 0, len(entries))
	for _, e := range entries {
		name := e.Str("@uniquename")
		if name == "" {
			continue
		}
		amount := e.Int("@count")
		if amount == 0 {
			amount = 1
		}
		materials = append(materials, Material{
			UniqueName:      name,
			Amount:          amount,
			MaxReturnAmount: e.Int("@maxreturnamount"),
		})
	}
	return materials
}
