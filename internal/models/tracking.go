package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MealType describes when a meal is eaten.
type MealType = string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// KnownMealType reports whether t is one of the supported meal types.
func KnownMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Meal is a single logged or planned meal.
type Meal struct {
	bun.BaseModel `bun:"table:meals,alias:ml"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"userId"`
	User      *User     `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Name      string    `bun:"name,notnull" json:"name"`
	Calories  int       `bun:"calories,notnull" json:"calories"`
	Protein   int       `bun:"protein,notnull" json:"protein"`
	Carbs     int       `bun:"carbs,notnull" json:"carbs"`
	Fat       int       `bun:"fat,notnull" json:"fat"`
	Date      time.Time `bun:"date,notnull" json:"date"`
	Type      MealType  `bun:"type,notnull" json:"type"`
	IsPlanned bool      `bun:"is_planned,notnull,default:false" json:"isPlanned"`
}

// NutritionEntry holds a day's nutrition totals.
type NutritionEntry struct {
	bun.BaseModel `bun:"table:nutrition,alias:ntr"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"userId"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Date          time.Time `bun:"date,notnull" json:"date"`
	TotalCalories int       `bun:"total_calories,notnull" json:"totalCalories"`
	TotalProtein  int       `bun:"total_protein,notnull" json:"totalProtein"`
	TotalCarbs    int       `bun:"total_carbs,notnull" json:"totalCarbs"`
	TotalFat      int       `bun:"total_fat,notnull" json:"totalFat"`
	Weight        *int      `bun:"weight" json:"weight,omitempty"`
}
