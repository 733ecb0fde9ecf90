package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealforge/backend/internal/middleware"
	"github.com/mealforge/backend/internal/service"
)

type ShoppingListHandler struct {
	shoppingList *service.ShoppingListService
	drafts       *service.ListDraftService
}

func NewShoppingListHandler(shoppingList *service.ShoppingListService, drafts *service.ListDraftService) *ShoppingListHandler {
	return &ShoppingListHandler{
		shoppingList: shoppingList,
		drafts:       drafts,
	}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	list := router.Group("/shopping-list")
	{
		list.GET("", h.Show)
		list.PUT("", h.Save)
		list.DELETE("", h.Clear)
		list.GET("/items", h.Items)
		list.POST("/items/:id/purchase", h.MarkPurchased)
	}
}

// Show returns the unpurchased list grouped by category.
func (h *ShoppingListHandler) Show(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := h.shoppingList.Show(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shopping_list": list})
}

// Items returns the raw persisted rows, purchased included; the ids here
// feed the purchase endpoint.
func (h *ShoppingListHandler) Items(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.shoppingList.Items(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shopping list items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Save replaces the whole list. With an edited item set in the body the
// edits win; with no body the last generated draft is persisted. Zeroed or
// nameless lines are dropped either way.
func (h *ShoppingListHandler) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var entries []service.ListEntry
	if c.Request.ContentLength > 0 {
		var req SaveListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entries = make([]service.ListEntry, 0, len(req.Items))
		for _, item := range req.Items {
			qty := decimal.NullDecimal{}
			if item.Quantity != nil {
				qty = decimal.NewNullDecimal(*item.Quantity)
			}
			entries = append(entries, service.NewListEntry(item.Category, item.Name, qty, item.Unit))
		}
	} else {
		if h.drafts == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no items supplied"})
			return
		}
		draft, err := h.drafts.GetDraft(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no items supplied and no generated draft to save"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shopping list draft"})
			return
		}
		entries = entriesFromList(draft)
	}

	if err := h.shoppingList.Save(c.Request.Context(), userID, entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shopping list"})
		return
	}

	if h.drafts != nil {
		// Best effort; the draft has served its purpose.
		_ = h.drafts.DeleteDraft(c.Request.Context(), userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping list saved"})
}

func (h *ShoppingListHandler) MarkPurchased(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.shoppingList.MarkPurchased(c.Request.Context(), userID, itemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark item purchased"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item marked purchased", "id": itemID})
}

func (h *ShoppingListHandler) Clear(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.shoppingList.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear shopping list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping list cleared"})
}

// entriesFromList flattens a consolidated map back into list entries for
// persistence.
func entriesFromList(list service.ConsolidatedList) []service.ListEntry {
	var entries []service.ListEntry
	for category, byName := range list {
		for name, amount := range byName {
			entries = append(entries, service.NewListEntry(category, name, amount.Quantity, amount.Unit))
		}
	}
	return entries
}
