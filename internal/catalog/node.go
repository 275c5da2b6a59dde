// Package catalog reads the game-data stat dump: a nested, externally defined
// JSON document with "@"-prefixed attribute keys. The shape is variant (the
// same key may hold an object or a list of objects, numbers arrive as strings),
// so access goes through Node helpers instead of typed structs.
package catalog

import (
	"fmt"
	"strconv"
)

// Node is one object of the stats document.
type Node map[string]any

// Str returns the string form of an attribute, or "" when absent.
func (n Node) Str(key string) string {
	v, ok := n[key]
	if !ok || v == nil {
		return ""
	}
	switch vv := v.(type) {
	case string:
		return vv
	case float64:
		// JSON numbers; attribute values are integral in this dump.
		return strconv.FormatFloat(vv, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// Int parses an attribute as an integer, tolerating both string and number
// encodings. Returns 0 when absent or unparsable.
func (n Node) Int(key string) int {
	switch vv := n[key].(type) {
	case float64:
		return int(vv)
	case string:
		i, err := strconv.Atoi(vv)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Has reports whether the key is present with a non-nil value.
func (n Node) Has(key string) bool {
	v, ok := n[key]
	return ok && v != nil
}

// Node returns a child object.
func (n Node) Node(key string) (Node, bool) {
	m, ok := n[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Node(m), true
}

// List returns the child under key as a slice of Nodes. A single object is
// wrapped into a one-element slice; the dump flattens one-element XML lists
// into plain objects.
func (n Node) List(key string) []Node {
	switch vv := n[key].(type) {
	case map[string]any:
		return []Node{Node(vv)}
	case []any:
		nodes := make([]Node, 0, len(vv))
		for _, e := range vv {
			if m, ok := e.(map[string]any); ok {
				nodes = append(nodes, Node(m))
			}
		}
		return nodes
	default:
		return nil
	}
}
