package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealforge/backend/internal/database"
	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
)

const testJWTSecret = "unit-test-secret"

// setupTestRouter builds the full API over an in-memory sqlite database.
// Drafts are disabled (no redis in unit tests); save requests must carry a
// body.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	authService := service.NewAuthService(db, testJWTSecret)
	recipeCatalog := service.NewRecipeCatalogService(db)
	mealPlanCatalog := service.NewMealPlanCatalogService(db)
	shoppingListService := service.NewShoppingListService(db, recipeCatalog, mealPlanCatalog)

	authHandler := NewAuthHandler(authService)
	recipeHandler := NewRecipeHandler(db, recipeCatalog)
	mealPlanHandler := NewMealPlanHandler(db, shoppingListService, nil)
	shoppingListHandler := NewShoppingListHandler(shoppingListService, nil)

	router := gin.New()
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		recipeHandler.RegisterRoutes(protected)
		mealPlanHandler.RegisterRoutes(protected)
		shoppingListHandler.RegisterRoutes(protected)
	}

	return router, db
}

// registerTestUser registers a user through the API and returns a bearer
// token.
func registerTestUser(t *testing.T, router *gin.Engine, email string) string {
	body, err := json.Marshal(RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response["token"])
	return response["token"]
}

// doJSON performs an authenticated JSON request against the test router.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
