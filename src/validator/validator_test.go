package validator_test

import (
	"testing"

	"mcnutrition/src/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type menuItemInput struct {
	Name     string `validate:"required,max=200,safe_text,no_sql_injection"`
	Category string `validate:"omitempty,menu_category"`
	Calories string `validate:"omitempty,nutrition_value"`
}

func TestCustomValidator_MenuCategory(t *testing.T) {
	cv := validator.NewCustomValidator()

	tests := []struct {
		name     string
		category string
		valid    bool
	}{
		{name: "known category", category: "BURGERSANDWICH", valid: true},
		{name: "mccafe", category: "MCCAFE", valid: true},
		{name: "empty is allowed", category: "", valid: true},
		{name: "unknown category", category: "PIZZA", valid: false},
		{name: "lowercase is rejected", category: "beverage", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(menuItemInput{Name: "Big Mac", Category: tt.category})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCustomValidator_NutritionValue(t *testing.T) {
	cv := validator.NewCustomValidator()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "integer", value: "550", valid: true},
		{name: "decimal", value: "1.5", valid: true},
		{name: "empty is unmeasured", value: "", valid: true},
		{name: "negative", value: "-5", valid: false},
		{name: "text", value: "lots", valid: false},
		{name: "trailing garbage", value: "12g", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(menuItemInput{Name: "Big Mac", Calories: tt.value})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCustomValidator_SafeText(t *testing.T) {
	cv := validator.NewCustomValidator()

	assert.NoError(t, cv.Validate(menuItemInput{Name: "Bacon, Egg & Cheese Biscuit"}))
	assert.Error(t, cv.Validate(menuItemInput{Name: "x'; DROP TABLE menu_items; --"}))
	assert.Error(t, cv.Validate(menuItemInput{Name: "evil\x00name"}))
}

func TestCustomValidator_ValidateID(t *testing.T) {
	cv := validator.NewCustomValidator()

	id, err := cv.ValidateID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "abc", "-1", "0", "1 OR 1=1", "12345678901"} {
		_, err := cv.ValidateID(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestCustomValidator_SanitizeInput(t *testing.T) {
	cv := validator.NewCustomValidator()

	assert.Equal(t, "Big Mac", cv.SanitizeInput("  Big   Mac  "))
	assert.Equal(t, "&lt;b&gt;Big Mac&lt;/b&gt;", cv.SanitizeInput("<b>Big Mac</b>"))
}
