package listing_test

import (
	"testing"

	"mcnutrition/src/listing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected listing.DisplayName
	}{
		{
			name:     "ounces with grams",
			raw:      "Minute Maid Orange Juice 12 fl oz (340 g)",
			expected: listing.DisplayName{Name: "Minute Maid Orange Juice", Grams: "340", Ounces: "12"},
		},
		{
			name:     "parenthesized grams",
			raw:      "World Famous Fries (71g)",
			expected: listing.DisplayName{Name: "World Famous Fries", Grams: "71"},
		},
		{
			name:     "bare grams suffix",
			raw:      "Hamburger 100g",
			expected: listing.DisplayName{Name: "Hamburger", Grams: "100"},
		},
		{
			name:     "parenthesized fluid ounce cup",
			raw:      "Premium Roast Coffee (12 fl oz cup)",
			expected: listing.DisplayName{Name: "Premium Roast Coffee", Ounces: "12"},
		},
		{
			name:     "bare ounce suffix",
			raw:      "Chocolate Shake 22 oz",
			expected: listing.DisplayName{Name: "Chocolate Shake", Ounces: "22"},
		},
		{
			name:     "decimal ounces",
			raw:      "Ketchup Packet 0.4 oz",
			expected: listing.DisplayName{Name: "Ketchup Packet", Ounces: "0.4"},
		},
		{
			name:     "no suffix passes through",
			raw:      "Big Mac",
			expected: listing.DisplayName{Name: "Big Mac"},
		},
		{
			name:     "grams mid-name are not stripped",
			raw:      "10g Protein Wrap Deluxe",
			expected: listing.DisplayName{Name: "10g Protein Wrap Deluxe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, listing.ParseName(tt.raw))
		})
	}
}

func TestPreferredQuantity(t *testing.T) {
	both := listing.DisplayName{Name: "X", Grams: "340", Ounces: "12"}
	gramsOnly := listing.DisplayName{Name: "X", Grams: "71"}
	ouncesOnly := listing.DisplayName{Name: "X", Ounces: "22"}
	neither := listing.DisplayName{Name: "X"}

	tests := []struct {
		name     string
		parsed   listing.DisplayName
		category string
		expected string
	}{
		{name: "food prefers grams", parsed: both, category: "BURGERSANDWICH", expected: "340g"},
		{name: "beverage prefers ounces", parsed: both, category: "BEVERAGE", expected: "12oz"},
		{name: "mccafe prefers ounces", parsed: both, category: "MCCAFE", expected: "12oz"},
		{name: "dessert prefers ounces", parsed: both, category: "DESSERTSHAKE", expected: "12oz"},
		{name: "condiment prefers ounces", parsed: both, category: "CONDIMENT", expected: "12oz"},
		{name: "beverage falls back to grams", parsed: gramsOnly, category: "BEVERAGE", expected: "71g"},
		{name: "food falls back to ounces", parsed: ouncesOnly, category: "SALAD", expected: "22oz"},
		{name: "nothing to show", parsed: neither, category: "BREAKFAST", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, listing.PreferredQuantity(tt.parsed, tt.category))
		})
	}
}
