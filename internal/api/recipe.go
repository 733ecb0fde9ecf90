package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/model"
	"github.com/mealforge/backend/internal/scaling"
	"github.com/mealforge/backend/internal/service"
)

// Serving slider bounds enforced at the edge; the scaling primitives reject
// non-positive values regardless.
const (
	minServings = 1
	maxServings = 12
)

type RecipeHandler struct {
	db      *gorm.DB
	catalog service.RecipeCatalog
}

func NewRecipeHandler(db *gorm.DB, catalog service.RecipeCatalog) *RecipeHandler {
	return &RecipeHandler{db: db, catalog: catalog}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/ratings", h.RateRecipe)
		recipes.GET("/:id/ratings", h.ListRatings)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var recipes []model.Recipe

	query := h.db
	if userID, ok := middleware.UserID(c); ok && c.Query("mine") == "true" {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns the recipe detail view. The optional servings query
// parameter scales ingredient quantities; the macro totals in the response
// always describe the base batch and do not follow the serving selection.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	requested := recipe.BaseServings
	if raw := c.Query("servings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "servings must be an integer"})
			return
		}
		requested = clampServings(n)
	}

	lines, err := h.catalog.GetIngredientLines(c.Request.Context(), recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
		return
	}

	scaled := make([]ScaledIngredient, 0, len(lines))
	for _, line := range lines {
		qty, err := scaling.ScaleQuantity(line.Quantity, recipe.BaseServings, requested)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		scaled = append(scaled, ScaledIngredient{
			Name:     line.Name,
			Category: line.Category,
			Quantity: qty,
			Unit:     line.Unit,
		})
	}

	c.JSON(http.StatusOK, RecipeDetailResponse{
		ID:                recipe.ID,
		Name:              recipe.Name,
		Description:       recipe.Description,
		BaseServings:      recipe.BaseServings,
		RequestedServings: requested,
		Ingredients:       scaled,
		Macros:            scaling.ComputeNutritionTotals(lines),
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipe := model.Recipe{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		BaseServings: req.BaseServings,
	}
	for _, line := range req.Ingredients {
		if line.Quantity.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient quantity must be positive"})
			return
		}
		recipe.Ingredients = append(recipe.Ingredients, model.RecipeIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		})
	}

	if err := h.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if recipe.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your recipe"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":          req.Name,
			"description":   req.Description,
			"base_servings": req.BaseServings,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		if req.Ingredients == nil {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for _, line := range req.Ingredients {
			row := model.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: line.IngredientID,
				Quantity:     line.Quantity,
				Unit:         line.Unit,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully", "id": id})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Recipe{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully", "id": id})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var recipe model.Recipe
	if err := h.db.First(&recipe, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	rating := model.Rating{
		RecipeID: recipe.ID,
		UserID:   userID,
		Score:    req.Score,
		Comment:  req.Comment,
	}
	// One rating per user per recipe; re-rating overwrites.
	err = h.db.Where("recipe_id = ? AND user_id = ?", recipe.ID, userID).
		Assign(map[string]interface{}{"score": req.Score, "comment": req.Comment}).
		FirstOrCreate(&rating).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

func (h *RecipeHandler) ListRatings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var ratings []model.Rating
	if err := h.db.Where("recipe_id = ?", id).Order("created_at DESC").Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

func clampServings(n int) int {
	if n < minServings {
		return minServings
	}
	if n > maxServings {
		return maxServings
	}
	return n
}
