// Package listing prepares menu items for display: it strips the weight
// or volume suffix embedded in item names and decides which quantity to
// show. It performs no rendering itself.
package listing

import (
	"regexp"
	"strings"
)

// DisplayName represents a parsed item name.
type DisplayName struct {
	Name   string `json:"name"`
	Grams  string `json:"grams,omitempty"`
	Ounces string `json:"ounces,omitempty"`
}

// 末尾パターンは優先順で試す。最初にマッチしたものだけ適用する
var namePatterns = []struct {
	re     *regexp.Regexp
	grams  int // サブマッチ番号（0は無し）
	ounces int
}{
	{regexp.MustCompile(`\s*([\d.]+)\s*(?:fl\s*)?oz\s*(?:cup\s*)?\((\d+)\s*g\)\s*$`), 2, 1}, // "5.0 oz (250 g)"
	{regexp.MustCompile(`\s*\((\d+)\s*g\)\s*$`), 1, 0},                                      // "(5g)"
	{regexp.MustCompile(`\s+(\d+)\s*g\s*$`), 1, 0},                                          // "5g"
	{regexp.MustCompile(`\s*\(([\d.]+)\s*(?:fl\s*)?oz(?:\s*cup)?\)\s*$`), 0, 1},             // "(5 fl oz cup)"
	{regexp.MustCompile(`\s+([\d.]+)\s*(?:fl\s*)?oz\s*$`), 0, 1},                            // "5oz"
}

// ParseName strips the first matching weight/volume suffix from an item
// name and surfaces the extracted quantities. Unmatched names pass
// through unchanged.
func ParseName(raw string) DisplayName {
	for _, p := range namePatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		d := DisplayName{Name: strings.TrimSpace(p.re.ReplaceAllString(raw, ""))}
		if p.grams > 0 {
			d.Grams = m[p.grams]
		}
		if p.ounces > 0 {
			d.Ounces = m[p.ounces]
		}
		return d
	}
	return DisplayName{Name: raw}
}

// 液量・オンス表示を優先するカテゴリ
var ounceCategories = map[string]bool{
	"BEVERAGE":     true,
	"MCCAFE":       true,
	"DESSERTSHAKE": true,
	"CONDIMENT":    true,
}

// PreferredQuantity returns the quantity string to display for an item of
// the given category: grams when both are present, except beverage,
// dessert and condiment categories, which prefer ounces.
func PreferredQuantity(d DisplayName, category string) string {
	if ounceCategories[category] {
		if d.Ounces != "" {
			return d.Ounces + "oz"
		}
		if d.Grams != "" {
			return d.Grams + "g"
		}
		return ""
	}
	if d.Grams != "" {
		return d.Grams + "g"
	}
	if d.Ounces != "" {
		return d.Ounces + "oz"
	}
	return ""
}
