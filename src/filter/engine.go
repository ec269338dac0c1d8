package filter

import (
	"fmt"
	"strings"

	"mcnutrition/src/domain"
)

// Range represents the active bounds of a nutritional criterion.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// State represents the three filter dimensions. Category and criterion
// compose by AND; the search term narrows further by substring match.
// Range is meaningful only while a criterion is active.
type State struct {
	Category   string
	Criterion  string
	Rng        Range
	SearchTerm string
}

// Highlight carries the qualifying value shown next to an item when the
// active criterion's notable threshold is met. Presentational only.
type Highlight struct {
	Field string  `json:"field"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// ResultItem represents one item in a computed group.
type ResultItem struct {
	ID        string          `json:"id"`
	Item      domain.MenuItem `json:"item"`
	Highlight *Highlight      `json:"highlight,omitempty"`
}

// Group represents the filtered items of one category, in original order.
type Group struct {
	Category    string       `json:"category"`
	DisplayName string       `json:"displayName"`
	Items       []ResultItem `json:"items"`
}

// Result represents a full computation: groups in first-appearance order,
// or an explanatory message when nothing matched.
type Result struct {
	Groups    []Group `json:"groups"`
	NoResults string  `json:"noResults,omitempty"`
}

// Engine combines the catalog with the current filter state. It is not
// goroutine safe; callers own one engine per page session.
type Engine struct {
	items []domain.MenuItem
	state State
}

// NewEngine creates a filter engine over the given catalog snapshot.
func NewEngine(items []domain.MenuItem) *Engine {
	return &Engine{items: items}
}

// State returns a copy of the current filter state.
func (e *Engine) State() State {
	return e.state
}

// SetCategory replaces the active category. The nutritional criterion and
// search term are untouched. Empty means "all categories".
func (e *Engine) SetCategory(category string) {
	e.state.Category = category
}

// SetCriterion activates a nutritional criterion, replacing any previously
// active one. Only one criterion can be active at a time. An empty key
// deactivates and clears the range.
func (e *Engine) SetCriterion(key string, min, max int) error {
	if key == "" {
		e.state.Criterion = ""
		e.state.Rng = Range{}
		return nil
	}
	c, ok := CriterionByKey(key)
	if !ok {
		return fmt.Errorf("unknown filter criterion: %s", key)
	}
	e.state.Criterion = key
	e.state.Rng = clampRange(c, min, max)
	return nil
}

// SetRange updates the bounds of the active criterion. Without an active
// criterion this is a no-op. Whichever handle moved is clamped to the
// other handle's value, so min <= max always holds afterwards.
func (e *Engine) SetRange(min, max int) {
	if e.state.Criterion == "" {
		return
	}
	c, _ := CriterionByKey(e.state.Criterion)
	if min > max {
		// 動かしたハンドルをもう一方の値まで戻す
		if min != e.state.Rng.Min {
			min = max
		} else {
			max = min
		}
	}
	e.state.Rng = clampRange(c, min, max)
}

// SetSearchTerm sets the free-text search. Matching is a case-insensitive
// substring test on the item name; empty means "all".
func (e *Engine) SetSearchTerm(term string) {
	e.state.SearchTerm = strings.TrimSpace(term)
}

func clampRange(c *Criterion, min, max int) Range {
	if min < c.Min {
		min = c.Min
	}
	if max > c.Max {
		max = c.Max
	}
	if min > max {
		min = max
	}
	return Range{Min: min, Max: max}
}

// Compute applies every active predicate by logical AND and groups the
// surviving items by category, preserving original item order within each
// group and first-appearance order across groups. Empty groups are a
// valid result; NoResults then names the filters that produced them.
func (e *Engine) Compute() Result {
	var crit *Criterion
	if e.state.Criterion != "" {
		crit, _ = CriterionByKey(e.state.Criterion)
	}
	term := strings.ToLower(e.state.SearchTerm)

	groups := make(map[string]*Group)
	var order []string
	counters := make(map[string]int)

	for _, item := range e.items {
		// カテゴリ内の連番がリスティングIDになる（絞り込みの有無に依存しない）
		index := counters[item.Category]
		counters[item.Category]++

		if e.state.Category != "" && item.Category != e.state.Category {
			continue
		}
		if crit != nil && !crit.Matches(item, e.state.Rng.Min, e.state.Rng.Max) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(item.Name), term) {
			continue
		}

		g, ok := groups[item.Category]
		if !ok {
			g = &Group{
				Category:    item.Category,
				DisplayName: domain.CategoryDisplayName(item.Category),
			}
			groups[item.Category] = g
			order = append(order, item.Category)
		}

		ri := ResultItem{
			ID:   fmt.Sprintf("%s-%d", item.Category, index),
			Item: item,
		}
		if crit != nil {
			if value, notable := crit.Notable(item); notable {
				ri.Highlight = &Highlight{Field: crit.Field, Unit: crit.Unit, Value: value}
			}
		}
		g.Items = append(g.Items, ri)
	}

	result := Result{}
	for _, cat := range order {
		result.Groups = append(result.Groups, *groups[cat])
	}
	if len(result.Groups) == 0 {
		result.NoResults = e.noResultsMessage(crit)
	}
	return result
}

// noResultsMessage names every active dimension so the caller can explain
// an empty result.
func (e *Engine) noResultsMessage(crit *Criterion) string {
	var parts []string
	if e.state.Category != "" {
		parts = append(parts, fmt.Sprintf("category %s", domain.CategoryDisplayName(e.state.Category)))
	}
	if crit != nil {
		parts = append(parts, fmt.Sprintf("%s %d-%d %s", crit.Name, e.state.Rng.Min, e.state.Rng.Max, crit.Unit))
	}
	if e.state.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search %q", e.state.SearchTerm))
	}
	if len(parts) == 0 {
		return "No menu items available"
	}
	return "No items found matching " + strings.Join(parts, ", ")
}
