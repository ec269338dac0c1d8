package domain_test

import (
	"testing"

	"mcnutrition/src/domain"

	"github.com/stretchr/testify/assert"
)

func TestNumericField(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{name: "integer value", value: "290", expected: 290},
		{name: "decimal value", value: "1.5", expected: 1.5},
		{name: "surrounding whitespace", value: " 12 ", expected: 12},
		{name: "empty value", value: "", expected: 0},
		{name: "non numeric value", value: "N/A", expected: 0},
		{name: "negative value", value: "-5", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NumericField(tt.value))
		})
	}
}

func TestNutritionAdd(t *testing.T) {
	var totals domain.Nutrition

	totals.Add(domain.MenuItem{
		Calories: "550",
		Protein:  "25",
		Carbs:    "46",
		Fat:      "30",
		Sodium:   "1.2",
	})
	totals.Add(domain.MenuItem{
		Calories: "150",
		Protein:  "invalid", // 不正値は0として加算される
		Carbs:    "20",
		Sugar:    "10",
	})

	assert.Equal(t, 700.0, totals.Calories)
	assert.Equal(t, 25.0, totals.Protein)
	assert.Equal(t, 66.0, totals.Carbs)
	assert.Equal(t, 30.0, totals.Fat)
	assert.Equal(t, 1.2, totals.Sodium)
	assert.Equal(t, 10.0, totals.Sugar)
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "Burgers & Sandwiches", domain.CategoryDisplayName("BURGERSANDWICH"))
	assert.Equal(t, "McCafé", domain.CategoryDisplayName("MCCAFE"))
	// 未知のキーはそのまま返す
	assert.Equal(t, "MYSTERY", domain.CategoryDisplayName("MYSTERY"))
}

func TestIsKnownCategory(t *testing.T) {
	assert.True(t, domain.IsKnownCategory("BEVERAGE"))
	assert.True(t, domain.IsKnownCategory("ALLDAYBREAKFAST"))
	assert.False(t, domain.IsKnownCategory("beverage"))
	assert.False(t, domain.IsKnownCategory(""))
}
