package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
)

// SetupAPI wires services and handlers onto the /api/v1 group.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, jwtSecret string) {
	v1 := router.Group("/api/v1")

	authService := service.NewAuthService(db, jwtSecret)
	recipeCatalog := service.NewRecipeCatalogService(db)
	mealPlanCatalog := service.NewMealPlanCatalogService(db)
	shoppingListService := service.NewShoppingListService(db, recipeCatalog, mealPlanCatalog)

	var draftService *service.ListDraftService
	if redisClient != nil {
		draftService = service.NewListDraftService(redisClient)
	}

	authHandler := NewAuthHandler(authService)
	recipeHandler := NewRecipeHandler(db, recipeCatalog)
	mealPlanHandler := NewMealPlanHandler(db, shoppingListService, draftService)
	shoppingListHandler := NewShoppingListHandler(shoppingListService, draftService)

	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		recipeHandler.RegisterRoutes(protected)
		mealPlanHandler.RegisterRoutes(protected)
		shoppingListHandler.RegisterRoutes(protected)
	}
}

// statusFromError maps service errors onto HTTP statuses. Anything outside
// the taxonomy is a persistence failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
