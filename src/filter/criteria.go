package filter

import "mcnutrition/src/domain"

// Criterion represents one nutritional filter dimension with a
// user-adjustable range. The registry below is closed: exactly five
// criteria exist and they are mutually exclusive at runtime.
type Criterion struct {
	Key        string
	Name       string
	Field      string
	Unit       string
	Min        int
	Max        int
	DefaultMin int
	DefaultMax int
	// Notable はハイライト用の閾値（絞り込みには影響しない）
	Notable func(item domain.MenuItem) (float64, bool)
	// Matches は現在のレンジで項目を判定する
	Matches func(item domain.MenuItem, min, max int) bool
}

func rangeMatch(value string, min, max int) bool {
	v := domain.NumericField(value)
	return v >= float64(min) && v <= float64(max)
}

// Criteria is the closed criterion registry, in display order.
var Criteria = []Criterion{
	{
		Key:        "calorie-conscious",
		Name:       "Calorie Conscious",
		Field:      "CAL",
		Unit:       "cal",
		Min:        0,
		Max:        1500,
		DefaultMin: 0,
		DefaultMax: 400,
		Notable: func(item domain.MenuItem) (float64, bool) {
			v := domain.NumericField(item.Calories)
			return v, v <= 400
		},
		Matches: func(item domain.MenuItem, min, max int) bool {
			return rangeMatch(item.Calories, min, max)
		},
	},
	{
		Key:        "high-protein",
		Name:       "High Protein",
		Field:      "PRO",
		Unit:       "g protein",
		Min:        0,
		Max:        100,
		DefaultMin: 20,
		DefaultMax: 100,
		Notable: func(item domain.MenuItem) (float64, bool) {
			v := domain.NumericField(item.Protein)
			return v, v >= 20
		},
		Matches: func(item domain.MenuItem, min, max int) bool {
			return rangeMatch(item.Protein, min, max)
		},
	},
	{
		Key:        "low-carb",
		Name:       "Low Carb / Carb Smart",
		Field:      "CARB",
		Unit:       "g carbs",
		Min:        0,
		Max:        150,
		DefaultMin: 0,
		DefaultMax: 20,
		Notable: func(item domain.MenuItem) (float64, bool) {
			v := domain.NumericField(item.Carbs)
			return v, v <= 20
		},
		Matches: func(item domain.MenuItem, min, max int) bool {
			return rangeMatch(item.Carbs, min, max)
		},
	},
	{
		Key:        "low-sugar",
		Name:       "Low Sugar",
		Field:      "SGR",
		Unit:       "g sugar",
		Min:        0,
		Max:        120,
		DefaultMin: 0,
		DefaultMax: 10,
		Notable: func(item domain.MenuItem) (float64, bool) {
			v := domain.NumericField(item.Sugar)
			return v, v <= 10
		},
		Matches: func(item domain.MenuItem, min, max int) bool {
			return rangeMatch(item.Sugar, min, max)
		},
	},
	{
		Key:        "gut-friendly",
		Name:       "Gut Friendly",
		Field:      "FBR",
		Unit:       "g fiber",
		Min:        0,
		Max:        20,
		DefaultMin: 5,
		DefaultMax: 20,
		Notable: func(item domain.MenuItem) (float64, bool) {
			v := domain.NumericField(item.Fiber)
			return v, v >= 5
		},
		Matches: func(item domain.MenuItem, min, max int) bool {
			return rangeMatch(item.Fiber, min, max)
		},
	},
}

// CriterionByKey looks up a criterion in the registry.
func CriterionByKey(key string) (*Criterion, bool) {
	for i := range Criteria {
		if Criteria[i].Key == key {
			return &Criteria[i], true
		}
	}
	return nil, false
}
