package handler

import (
	"mcnutrition/src/domain"
	"mcnutrition/src/filter"
)

// MenuItemRequestDTO represents HTTP request for creating or updating a
// menu item. Nutrition values are string encoded, empty means unmeasured.
type MenuItemRequestDTO struct {
	Name         string `json:"ITEM" binding:"required,max=200,min=1" validate:"required,max=200,min=1,safe_text,no_sql_injection"`
	Category     string `json:"CATEGORY" binding:"required" validate:"required,menu_category"`
	Calories     string `json:"CAL" validate:"omitempty,nutrition_value"`
	Protein      string `json:"PRO" validate:"omitempty,nutrition_value"`
	Carbs        string `json:"CARB" validate:"omitempty,nutrition_value"`
	Fat          string `json:"FAT" validate:"omitempty,nutrition_value"`
	SaturatedFat string `json:"SFAT" validate:"omitempty,nutrition_value"`
	TransFat     string `json:"TFAT" validate:"omitempty,nutrition_value"`
	Cholesterol  string `json:"CHOL" validate:"omitempty,nutrition_value"`
	Sodium       string `json:"SALT" validate:"omitempty,nutrition_value"`
	Fiber        string `json:"FBR" validate:"omitempty,nutrition_value"`
	Sugar        string `json:"SGR" validate:"omitempty,nutrition_value"`
}

// MenuQueryDTO represents HTTP query parameters for the public menu view.
// Min and Max apply to the active criterion only; absent values fall back
// to the criterion's defaults.
type MenuQueryDTO struct {
	Category  string `form:"category" validate:"omitempty,menu_category"`
	Criterion string `form:"criterion" validate:"omitempty,max=50"`
	Min       *int   `form:"min"`
	Max       *int   `form:"max"`
	Search    string `form:"search" validate:"omitempty,max=200,safe_text,no_sql_injection"`
}

// AdminMenuFilterDTO represents HTTP query parameters for admin listing.
type AdminMenuFilterDTO struct {
	Category string `form:"category" validate:"omitempty,menu_category"`
	Search   string `form:"search" validate:"omitempty,max=200,safe_text,no_sql_injection"`
	Limit    int    `form:"limit,default=0" binding:"min=0,max=100" validate:"min=0,max=100"`
}

// MenuResultItemDTO represents one listed item with its parsed display
// name and the quantity string chosen for its category.
type MenuResultItemDTO struct {
	ID          string            `json:"id"`
	Item        domain.MenuItem   `json:"item"`
	DisplayName string            `json:"displayName"`
	Quantity    string            `json:"quantity,omitempty"`
	Highlight   *filter.Highlight `json:"highlight,omitempty"`
}

// MenuGroupDTO represents one category group of the computed menu view.
type MenuGroupDTO struct {
	Category    string              `json:"category"`
	DisplayName string              `json:"displayName"`
	Items       []MenuResultItemDTO `json:"items"`
}

// MenuResponseDTO represents the computed menu view.
type MenuResponseDTO struct {
	Groups    []MenuGroupDTO `json:"groups"`
	NoResults string         `json:"noResults,omitempty"`
}

// CriterionDTO describes one selectable nutritional filter.
type CriterionDTO struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Min        int    `json:"min"`
	Max        int    `json:"max"`
	DefaultMin int    `json:"defaultMin"`
	DefaultMax int    `json:"defaultMax"`
}

// ToggleRequestDTO represents a planner toggle command. The item payload
// travels with the command so the planner needs no catalog lookup.
type ToggleRequestDTO struct {
	ID   string          `json:"id" binding:"required,max=100" validate:"required,max=100,safe_text"`
	Item domain.MenuItem `json:"item" binding:"required"`
}

// RemoveRequestDTO represents a planner remove command.
type RemoveRequestDTO struct {
	ID string `json:"id" binding:"required,max=100" validate:"required,max=100,safe_text"`
}

// RenameRequestDTO represents a planner rename command.
type RenameRequestDTO struct {
	Name string `json:"name" validate:"omitempty,max=100,safe_text,no_sql_injection"`
}

// ToggleResponseDTO reports the toggle outcome with the updated planner.
type ToggleResponseDTO struct {
	Selected bool                `json:"selected"`
	Planner  domain.PlannerState `json:"planner"`
}

// SessionResponseDTO carries a freshly issued anonymous session key.
type SessionResponseDTO struct {
	SessionKey string `json:"sessionKey"`
}

// UserResponseDTO describes the caller's resolved identity.
type UserResponseDTO struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
	Name          string `json:"name,omitempty"`
}

// ErrorResponseDTO represents HTTP error response
type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
