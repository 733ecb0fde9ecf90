package api

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/model"
)

// buildPlanWithDinner creates a recipe and a meal plan containing it,
// returning both ids.
func buildPlanWithDinner(t *testing.T, router *gin.Engine, db *gorm.DB, token string) (planID, recipeID string) {
	chicken, rice := seedCatalogue(t, db)

	g := "g"
	w := doJSON(t, router, "POST", "/api/v1/recipes", token, CreateRecipeRequest{
		Name:         "Chicken and Rice",
		BaseServings: 4,
		Ingredients: []IngredientLineRequest{
			{IngredientID: chicken.ID, Quantity: decimal.NewFromInt(600), Unit: &g},
			{IngredientID: rice.ID, Quantity: decimal.NewFromInt(300), Unit: &g},
		},
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	var created struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	recipeID = created.Recipe.ID.String()

	w = doJSON(t, router, "POST", "/api/v1/mealplans", token, CreateMealPlanRequest{Name: "Week 1"})
	require.Equal(t, 201, w.Code, w.Body.String())
	var planResp struct {
		MealPlan model.MealPlan `json:"meal_plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &planResp))
	planID = planResp.MealPlan.ID.String()

	w = doJSON(t, router, "POST", "/api/v1/mealplans/"+planID+"/recipes", token, AddPlanRecipeRequest{
		RecipeID: created.Recipe.ID,
	})
	require.Equal(t, 201, w.Code, w.Body.String())
	return planID, recipeID
}

func TestGenerateShoppingList(t *testing.T) {
	router, db := setupTestRouter(t)
	token := registerTestUser(t, router, "cook@example.com")
	planID, recipeID := buildPlanWithDinner(t, router, db, token)

	rid, err := uuid.Parse(recipeID)
	require.NoError(t, err)

	w := doJSON(t, router, "POST", "/api/v1/mealplans/"+planID+"/shopping-list", token, GenerateListRequest{
		Servings: map[uuid.UUID]int{rid: 2},
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		ShoppingList map[string]map[string]struct {
			Quantity *decimal.Decimal `json:"quantity"`
			Unit     *string          `json:"unit"`
		} `json:"shopping_list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Contains(t, resp.ShoppingList, "meat")
	chicken := resp.ShoppingList["meat"]["Chicken Breast"]
	require.NotNil(t, chicken.Quantity)
	assert.True(t, chicken.Quantity.Equal(decimal.NewFromInt(1200)), "got %s", chicken.Quantity)

	rice := resp.ShoppingList["grains"]["Rice"]
	require.NotNil(t, rice.Quantity)
	assert.True(t, rice.Quantity.Equal(decimal.NewFromInt(600)), "got %s", rice.Quantity)
}

func TestGenerateShoppingListUnknownPlan(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "cook@example.com")

	w := doJSON(t, router, "POST", "/api/v1/mealplans/"+uuid.NewString()+"/shopping-list", token, nil)
	assert.Equal(t, 404, w.Code, w.Body.String())
}

func TestGenerateShoppingListForeignPlan(t *testing.T) {
	router, db := setupTestRouter(t)
	ownerToken := registerTestUser(t, router, "owner@example.com")
	planID, _ := buildPlanWithDinner(t, router, db, ownerToken)

	intruderToken := registerTestUser(t, router, "intruder@example.com")
	w := doJSON(t, router, "POST", "/api/v1/mealplans/"+planID+"/shopping-list", intruderToken, nil)
	assert.Equal(t, 403, w.Code, w.Body.String())
}

func TestSaveAndShowShoppingList(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "cook@example.com")

	qty := func(n int64) *decimal.Decimal {
		d := decimal.NewFromInt(n)
		return &d
	}
	g := "g"
	w := doJSON(t, router, "PUT", "/api/v1/shopping-list", token, SaveListRequest{
		Items: []SaveListItemRequest{
			{Category: "veg", Name: "Onion", Quantity: qty(125), Unit: &g},
			{Category: "veg", Name: "Tomato", Quantity: qty(0), Unit: &g},
			{Category: model.AdditionalCategory, Name: "Paper Towels", Quantity: qty(2)},
		},
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	w = doJSON(t, router, "GET", "/api/v1/shopping-list", token, nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		ShoppingList map[string]map[string]struct {
			Quantity *decimal.Decimal `json:"quantity"`
			Unit     *string          `json:"unit"`
		} `json:"shopping_list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Contains(t, resp.ShoppingList, "veg")
	assert.Contains(t, resp.ShoppingList["veg"], "Onion")
	// Zeroed rows are dropped on save.
	assert.NotContains(t, resp.ShoppingList["veg"], "Tomato")
	assert.Contains(t, resp.ShoppingList[model.AdditionalCategory], "Paper Towels")
}

func TestSaveWithoutBodyAndNoDraft(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "cook@example.com")

	w := doJSON(t, router, "PUT", "/api/v1/shopping-list", token, nil)
	assert.Equal(t, 400, w.Code, w.Body.String())
}

func TestMarkPurchasedEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "cook@example.com")

	qty := decimal.NewFromInt(50)
	g := "g"
	w := doJSON(t, router, "PUT", "/api/v1/shopping-list", token, SaveListRequest{
		Items: []SaveListItemRequest{
			{Category: "veg", Name: "Onion", Quantity: &qty, Unit: &g},
		},
	})
	require.Equal(t, 200, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/shopping-list/items", token, nil)
	require.Equal(t, 200, w.Code)
	var itemsResp struct {
		Items []model.ShoppingListItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &itemsResp))
	require.Len(t, itemsResp.Items, 1)
	itemID := itemsResp.Items[0].ID.String()

	w = doJSON(t, router, "POST", "/api/v1/shopping-list/items/"+itemID+"/purchase", token, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	w = doJSON(t, router, "GET", "/api/v1/shopping-list", token, nil)
	require.Equal(t, 200, w.Code)
	var resp struct {
		ShoppingList map[string]map[string]json.RawMessage `json:"shopping_list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp.ShoppingList, "veg")
}

func TestClearShoppingList(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "cook@example.com")

	qty := decimal.NewFromInt(50)
	w := doJSON(t, router, "PUT", "/api/v1/shopping-list", token, SaveListRequest{
		Items: []SaveListItemRequest{
			{Category: "veg", Name: "Onion", Quantity: &qty},
		},
	})
	require.Equal(t, 200, w.Code)

	w = doJSON(t, router, "DELETE", "/api/v1/shopping-list", token, nil)
	require.Equal(t, 200, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/shopping-list", token, nil)
	require.Equal(t, 200, w.Code)
	var resp struct {
		ShoppingList map[string]map[string]json.RawMessage `json:"shopping_list"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.ShoppingList)
}
