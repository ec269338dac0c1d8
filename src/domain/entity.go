package domain

import (
	"strconv"
	"strings"
	"time"
)

// MenuItem represents a single menu record. Nutrition fields keep the
// string encoding of the source data; absent or unparseable values count
// as 0 wherever they are summed or compared.
type MenuItem struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"ITEM"`
	Category     string `json:"CATEGORY"`
	Calories     string `json:"CAL"`
	Protein      string `json:"PRO"`
	Carbs        string `json:"CARB"`
	Fat          string `json:"FAT"`
	SaturatedFat string `json:"SFAT"`
	TransFat     string `json:"TFAT"`
	Cholesterol  string `json:"CHOL"`
	Sodium       string `json:"SALT"`
	Fiber        string `json:"FBR"`
	Sugar        string `json:"SGR"`
}

// NumericField 文字列エンコードされた栄養値を数値として取得（不正値は0）
func NumericField(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Nutrition represents summed nutrition values across planner entries.
type Nutrition struct {
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	SaturatedFat float64 `json:"saturatedFat"`
	TransFat     float64 `json:"transFat"`
	Cholesterol  float64 `json:"cholesterol"`
	Sodium       float64 `json:"sodium"`
	Fiber        float64 `json:"fiber"`
	Sugar        float64 `json:"sugar"`
}

// Add accumulates one item's nutrition fields into the totals.
func (n *Nutrition) Add(item MenuItem) {
	n.Calories += NumericField(item.Calories)
	n.Protein += NumericField(item.Protein)
	n.Carbs += NumericField(item.Carbs)
	n.Fat += NumericField(item.Fat)
	n.SaturatedFat += NumericField(item.SaturatedFat)
	n.TransFat += NumericField(item.TransFat)
	n.Cholesterol += NumericField(item.Cholesterol)
	n.Sodium += NumericField(item.Sodium)
	n.Fiber += NumericField(item.Fiber)
	n.Sugar += NumericField(item.Sugar)
}

// PlannerEntry represents one selected item. The ID is the per-listing
// identifier and stays stable across re-renders.
type PlannerEntry struct {
	ID   string   `json:"id"`
	Item MenuItem `json:"data"`
}

// PlannerState represents the live planner for one identity.
type PlannerState struct {
	Entries  []PlannerEntry `json:"items"`
	MealName string         `json:"mealName"`
	Totals   Nutrition      `json:"totalNutrition"`
}

// DefaultMealName 名前が未設定・空白のみの場合に使うプランナー名
const DefaultMealName = "My Meal Planner"

// SavedMeal represents an immutable snapshot of a planner at save time.
type SavedMeal struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	MealName  string         `json:"mealName"`
	Entries   []PlannerEntry `json:"items"`
	Totals    Nutrition      `json:"totalNutrition"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Identity represents who owns a planner: an authenticated user or an
// anonymous session. Exactly one mode is active per request.
type Identity struct {
	Authenticated bool
	Key           string
	DisplayName   string
}

// MenuFilter represents filter criteria for admin menu queries.
type MenuFilter struct {
	Category string
	Search   string
	Limit    int
}

// カテゴリ表示名。キー集合は固定
var categoryNames = map[string]string{
	"BURGERSANDWICH":  "Burgers & Sandwiches",
	"CHICKENFISH":     "Chicken & Fish",
	"BREAKFAST":       "Breakfast",
	"SALAD":           "Salads",
	"SNACKSIDE":       "Snacks & Sides",
	"BEVERAGE":        "Beverages",
	"MCCAFE":          "McCafé",
	"DESSERTSHAKE":    "Desserts & Shakes",
	"CONDIMENT":       "Condiments",
	"ALLDAYBREAKFAST": "All Day Breakfast",
}

// CategoryDisplayName returns the human-readable name for a category key.
func CategoryDisplayName(key string) string {
	if name, ok := categoryNames[key]; ok {
		return name
	}
	return key
}

// IsKnownCategory reports whether the key belongs to the closed category set.
func IsKnownCategory(key string) bool {
	_, ok := categoryNames[key]
	return ok
}
