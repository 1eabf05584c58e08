package site

import "git.home.luguber.info/inful/makesite/internal/content"

// Grouping maps categories to their items, remembering the order categories were
// first seen.
type Grouping struct {
	order []string
	items map[string][]*content.Item
}

// ByCategory partitions items by category in a single pass. Item order within a
// category follows the input order.
func ByCategory(items []*content.Item) *Grouping {
	g := &Grouping{items: make(map[string][]*content.Item)}
	for _, item := range items {
		if _, ok := g.items[item.Category]; !ok {
			g.order = append(g.order, item.Category)
		}
		g.items[item.Category] = append(g.items[item.Category], item)
	}
	return g
}

// Categories returns the categories in first-seen order.
func (g *Grouping) Categories() []string {
	return append([]string(nil), g.order...)
}

// Items returns the items of one category.
func (g *Grouping) Items(category string) []*content.Item {
	return g.items[category]
}

// Len returns the number of items across all categories.
func (g *Grouping) Len() int {
	n := 0
	for _, items := range g.items {
		n += len(items)
	}
	return n
}
