package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealforge/backend/internal/scaling"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type IngredientLineRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Unit         *string         `json:"unit"`
}

type CreateRecipeRequest struct {
	Name         string                  `json:"name" binding:"required"`
	Description  string                  `json:"description"`
	BaseServings int                     `json:"base_servings" binding:"required,min=1"`
	Ingredients  []IngredientLineRequest `json:"ingredients"`
}

type CreateMealPlanRequest struct {
	Name     string     `json:"name" binding:"required"`
	StartsOn *time.Time `json:"starts_on"`
}

type AddPlanRecipeRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
}

// GenerateListRequest maps recipe ids to serving multipliers. Recipes in the
// plan but absent from the map default to a multiplier of 1.
type GenerateListRequest struct {
	Servings map[uuid.UUID]int `json:"servings"`
}

type SaveListItemRequest struct {
	Category string           `json:"category" binding:"required"`
	Name     string           `json:"name"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit"`
}

type SaveListRequest struct {
	// Items is the edited list. When absent entirely, the last generated
	// draft is saved as-is.
	Items []SaveListItemRequest `json:"items"`
}

type RateRecipeRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ScaledIngredient is one recipe line with its quantity scaled to the
// requested serving count.
type ScaledIngredient struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     *string         `json:"unit"`
}

// RecipeDetailResponse is the recipe view payload. Ingredient quantities are
// scaled to RequestedServings; Macros stay fixed at the recipe's base batch
// regardless of the serving selection. That asymmetry is intentional.
type RecipeDetailResponse struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	BaseServings      int                `json:"base_servings"`
	RequestedServings int                `json:"requested_servings"`
	Ingredients       []ScaledIngredient `json:"ingredients"`
	Macros            scaling.Macros     `json:"macros"`
}
