package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/model"
	"github.com/mealforge/backend/internal/scaling"
)

// RecipeCatalog exposes recipe ingredient data to the shopping-list
// generator.
type RecipeCatalog interface {
	GetIngredientLines(ctx context.Context, recipeID uuid.UUID) ([]scaling.IngredientLine, error)
}

// MealPlanCatalog exposes meal-plan membership data to the shopping-list
// generator.
type MealPlanCatalog interface {
	GetMealPlan(ctx context.Context, id uuid.UUID) (*model.MealPlan, error)
	GetActiveRecipeIDs(ctx context.Context, mealPlanID uuid.UUID) ([]uuid.UUID, error)
}

// RecipeCatalogService reads recipe ingredient lines joined with the
// ingredient reference catalogue.
type RecipeCatalogService struct {
	db *gorm.DB
}

func NewRecipeCatalogService(db *gorm.DB) *RecipeCatalogService {
	return &RecipeCatalogService{db: db}
}

// GetIngredientLines returns the recipe's lines with ingredient name,
// category and nutrient reference values resolved, ordered by line creation
// so downstream tie-breaks are deterministic.
func (s *RecipeCatalogService) GetIngredientLines(ctx context.Context, recipeID uuid.UUID) ([]scaling.IngredientLine, error) {
	var rows []model.RecipeIngredient
	err := s.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient lines: %w", err)
	}

	lines := make([]scaling.IngredientLine, 0, len(rows))
	for _, row := range rows {
		if row.Ingredient == nil {
			continue
		}
		lines = append(lines, scaling.IngredientLine{
			Name:           row.Ingredient.Name,
			Category:       row.Ingredient.Category,
			Quantity:       row.Quantity,
			Unit:           row.Unit,
			CaloriesPer100: row.Ingredient.CaloriesPer100,
			ProteinPer100:  row.Ingredient.ProteinPer100,
			CarbsPer100:    row.Ingredient.CarbsPer100,
			FatPer100:      row.Ingredient.FatPer100,
		})
	}
	return lines, nil
}

// MealPlanCatalogService reads meal plans and their live recipe memberships.
type MealPlanCatalogService struct {
	db *gorm.DB
}

func NewMealPlanCatalogService(db *gorm.DB) *MealPlanCatalogService {
	return &MealPlanCatalogService{db: db}
}

func (s *MealPlanCatalogService) GetMealPlan(ctx context.Context, id uuid.UUID) (*model.MealPlan, error) {
	var plan model.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}
	return &plan, nil
}

// GetActiveRecipeIDs returns the plan's recipe ids, excluding soft-deleted
// memberships, in membership creation order.
func (s *MealPlanCatalogService) GetActiveRecipeIDs(ctx context.Context, mealPlanID uuid.UUID) ([]uuid.UUID, error) {
	var memberships []model.MealPlanRecipe
	err := s.db.WithContext(ctx).
		Where("meal_plan_id = ?", mealPlanID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan recipes: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.RecipeID)
	}
	return ids, nil
}
