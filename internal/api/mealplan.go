package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/model"
	"github.com/mealforge/backend/internal/service"
)

type MealPlanHandler struct {
	db           *gorm.DB
	shoppingList *service.ShoppingListService
	drafts       *service.ListDraftService
}

func NewMealPlanHandler(db *gorm.DB, shoppingList *service.ShoppingListService, drafts *service.ListDraftService) *MealPlanHandler {
	return &MealPlanHandler{
		db:           db,
		shoppingList: shoppingList,
		drafts:       drafts,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/mealplans")
	{
		plans.GET("", h.ListMealPlans)
		plans.POST("", h.CreateMealPlan)
		plans.GET("/:id", h.GetMealPlan)
		plans.DELETE("/:id", h.DeleteMealPlan)
		plans.POST("/:id/recipes", h.AddRecipe)
		plans.DELETE("/:id/recipes/:recipeId", h.RemoveRecipe)
		plans.POST("/:id/shopping-list", h.GenerateShoppingList)
	}
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var plans []model.MealPlan
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_plans": plans})
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	var req CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	plan := model.MealPlan{
		UserID:   userID,
		Name:     req.Name,
		StartsOn: req.StartsOn,
	}
	if err := h.db.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	plan, ok := h.ownedPlan(c)
	if !ok {
		return
	}

	var memberships []model.MealPlanRecipe
	if err := h.db.Where("meal_plan_id = ?", plan.ID).Order("created_at ASC").Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plan recipes"})
		return
	}
	plan.Recipes = memberships

	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	plan, ok := h.ownedPlan(c)
	if !ok {
		return
	}

	if err := h.db.Delete(plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal plan deleted successfully", "id": plan.ID})
}

func (h *MealPlanHandler) AddRecipe(c *gin.Context) {
	plan, ok := h.ownedPlan(c)
	if !ok {
		return
	}

	var req AddPlanRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	membership := model.MealPlanRecipe{
		MealPlanID: plan.ID,
		RecipeID:   recipe.ID,
	}
	if err := h.db.Create(&membership).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add recipe to meal plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"membership": membership})
}

func (h *MealPlanHandler) RemoveRecipe(c *gin.Context) {
	plan, ok := h.ownedPlan(c)
	if !ok {
		return
	}

	recipeID, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	// Soft delete: aggregation ignores removed memberships.
	result := h.db.Where("meal_plan_id = ? AND recipe_id = ?", plan.ID, recipeID).Delete(&model.MealPlanRecipe{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove recipe from meal plan"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not in meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from meal plan"})
}

// GenerateShoppingList aggregates the plan's recipes into a consolidated
// list, stashes it as the user's draft and returns it. The body may supply
// per-recipe serving multipliers; unlisted recipes use 1.
func (h *MealPlanHandler) GenerateShoppingList(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return
	}

	var req GenerateListRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	list, err := h.shoppingList.Generate(c.Request.Context(), userID, planID, req.Servings)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	if h.drafts != nil {
		if err := h.drafts.PutDraft(c.Request.Context(), userID, list); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stash shopping list draft"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"shopping_list": list})
}

// ownedPlan loads the :id plan and enforces ownership, writing the error
// response itself on failure.
func (h *MealPlanHandler) ownedPlan(c *gin.Context) (*model.MealPlan, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal plan id"})
		return nil, false
	}

	var plan model.MealPlan
	if err := h.db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plan"})
		}
		return nil, false
	}
	if plan.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your meal plan"})
		return nil, false
	}
	return &plan, true
}
