package database

import (
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/model"
)

// Migrate runs GORM auto-migration for the full schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Rating{},
		&model.MealPlan{},
		&model.MealPlanRecipe{},
		&model.ShoppingListItem{},
	)
}
