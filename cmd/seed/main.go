package main

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mealforge/backend/config"
	"github.com/mealforge/backend/internal/database"
	"github.com/mealforge/backend/internal/model"
)

// Seeds the ingredient reference catalogue. Safe to re-run: existing names
// are left untouched.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	created := 0
	for _, ing := range catalogue() {
		result := db.Where("name = ?", ing.Name).FirstOrCreate(&ing)
		if result.Error != nil {
			log.Fatalf("Failed to seed ingredient %q: %v", ing.Name, result.Error)
		}
		if result.RowsAffected > 0 {
			created++
		}
	}
	log.Printf("Seeded %d new ingredients (%d total in catalogue)", created, len(catalogue()))

	seedDemoRecipe(db)
}

func catalogue() []model.Ingredient {
	return []model.Ingredient{
		{Name: "Chicken Breast", Category: "meat", CaloriesPer100: 165, ProteinPer100: 31, CarbsPer100: 0, FatPer100: 3.6},
		{Name: "Ground Beef", Category: "meat", CaloriesPer100: 250, ProteinPer100: 26, CarbsPer100: 0, FatPer100: 15},
		{Name: "Salmon Fillet", Category: "meat", CaloriesPer100: 208, ProteinPer100: 20, CarbsPer100: 0, FatPer100: 13},
		{Name: "Egg", Category: "dairy", CaloriesPer100: 155, ProteinPer100: 13, CarbsPer100: 1.1, FatPer100: 11},
		{Name: "Milk", Category: "dairy", CaloriesPer100: 42, ProteinPer100: 3.4, CarbsPer100: 5, FatPer100: 1},
		{Name: "Greek Yogurt", Category: "dairy", CaloriesPer100: 59, ProteinPer100: 10, CarbsPer100: 3.6, FatPer100: 0.4},
		{Name: "Cheddar", Category: "dairy", CaloriesPer100: 403, ProteinPer100: 25, CarbsPer100: 1.3, FatPer100: 33},
		{Name: "Onion", Category: "veg", CaloriesPer100: 40, ProteinPer100: 1.1, CarbsPer100: 9.3, FatPer100: 0.1},
		{Name: "Garlic", Category: "veg", CaloriesPer100: 149, ProteinPer100: 6.4, CarbsPer100: 33, FatPer100: 0.5},
		{Name: "Tomato", Category: "veg", CaloriesPer100: 18, ProteinPer100: 0.9, CarbsPer100: 3.9, FatPer100: 0.2},
		{Name: "Spinach", Category: "veg", CaloriesPer100: 23, ProteinPer100: 2.9, CarbsPer100: 3.6, FatPer100: 0.4},
		{Name: "Bell Pepper", Category: "veg", CaloriesPer100: 31, ProteinPer100: 1, CarbsPer100: 6, FatPer100: 0.3},
		{Name: "Rice", Category: "grains", CaloriesPer100: 130, ProteinPer100: 2.7, CarbsPer100: 28, FatPer100: 0.3},
		{Name: "Pasta", Category: "grains", CaloriesPer100: 131, ProteinPer100: 5, CarbsPer100: 25, FatPer100: 1.1},
		{Name: "Oats", Category: "grains", CaloriesPer100: 389, ProteinPer100: 16.9, CarbsPer100: 66, FatPer100: 6.9},
		{Name: "Olive Oil", Category: "oils", CaloriesPer100: 884, ProteinPer100: 0, CarbsPer100: 0, FatPer100: 100},
		{Name: "Butter", Category: "oils", CaloriesPer100: 717, ProteinPer100: 0.9, CarbsPer100: 0.1, FatPer100: 81},
	}
}

// seedDemoRecipe creates one sample recipe wired through the catalogue so a
// fresh environment has something to browse. Skipped if any recipe exists.
func seedDemoRecipe(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.Recipe{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count recipes: %v", err)
	}
	if count > 0 {
		return
	}

	var demo model.User
	err := db.Where("email = ?", "demo@mealforge.dev").
		Attrs(model.User{Name: "Demo", Email: "demo@mealforge.dev", PasswordHash: "!"}).
		FirstOrCreate(&demo).Error
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	var chicken, rice, onion, oil model.Ingredient
	for name, dst := range map[string]*model.Ingredient{
		"Chicken Breast": &chicken,
		"Rice":           &rice,
		"Onion":          &onion,
		"Olive Oil":      &oil,
	} {
		if err := db.Where("name = ?", name).First(dst).Error; err != nil {
			log.Fatalf("Failed to look up %q: %v", name, err)
		}
	}

	g := "g"
	ml := "ml"
	recipe := model.Recipe{
		UserID:       demo.ID,
		Name:         "Chicken and Rice",
		Description:  "Weeknight one-pan chicken with rice.",
		BaseServings: 4,
		Ingredients: []model.RecipeIngredient{
			{IngredientID: chicken.ID, Quantity: decimal.NewFromInt(600), Unit: &g},
			{IngredientID: rice.ID, Quantity: decimal.NewFromInt(300), Unit: &g},
			{IngredientID: onion.ID, Quantity: decimal.NewFromInt(150), Unit: &g},
			{IngredientID: oil.ID, Quantity: decimal.NewFromInt(30), Unit: &ml},
		},
	}
	if err := db.Create(&recipe).Error; err != nil {
		log.Fatalf("Failed to seed demo recipe: %v", err)
	}
	log.Printf("Seeded demo recipe %q", recipe.Name)
}
