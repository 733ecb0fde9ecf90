package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mealforge/backend/internal/model"
)

// ShoppingListService generates consolidated shopping lists from meal plans
// and owns the persisted per-user list.
type ShoppingListService struct {
	db        *gorm.DB
	recipes   RecipeCatalog
	mealPlans MealPlanCatalog
}

func NewShoppingListService(db *gorm.DB, recipes RecipeCatalog, mealPlans MealPlanCatalog) *ShoppingListService {
	return &ShoppingListService{
		db:        db,
		recipes:   recipes,
		mealPlans: mealPlans,
	}
}

// Generate builds the consolidated list for a meal plan. Each recipe's line
// quantities are multiplied by the caller-supplied serving multiplier (a
// plain integer scale factor, defaulting to 1 — this is intentionally not
// the requested/base ratio used on the recipe detail view; the meal-plan
// context records no base serving count). Lines are grouped by
// (category, ingredient name); repeats sum their quantities and keep the
// first-seen unit.
//
// The plan must belong to userID. An empty plan yields an empty list.
func (s *ShoppingListService) Generate(ctx context.Context, userID, mealPlanID uuid.UUID, multipliers map[uuid.UUID]int) (ConsolidatedList, error) {
	plan, err := s.mealPlans.GetMealPlan(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrForbidden
	}
	for id, m := range multipliers {
		if m <= 0 {
			return nil, fmt.Errorf("%w: multiplier for recipe %s must be positive", ErrInvalidArgument, id)
		}
	}

	recipeIDs, err := s.mealPlans.GetActiveRecipeIDs(ctx, mealPlanID)
	if err != nil {
		return nil, err
	}

	list := make(ConsolidatedList)
	for _, recipeID := range recipeIDs {
		lines, err := s.recipes.GetIngredientLines(ctx, recipeID)
		if err != nil {
			return nil, err
		}

		multiplier := int64(1)
		if m, ok := multipliers[recipeID]; ok {
			multiplier = int64(m)
		}

		for _, line := range lines {
			effective := line.Quantity.Mul(decimal.NewFromInt(multiplier))
			list.add(line.Category, line.Name, effective, line.Unit)
		}
	}
	return list, nil
}

// Save replaces the user's entire persisted list with the given entries in
// one transaction. Entries with an empty name or a zero quantity are
// skipped: a zeroed quantity is how the edit UI removes a line. Prior rows
// stay intact if anything fails.
func (s *ShoppingListService) Save(ctx context.Context, userID uuid.UUID, entries []ListEntry) error {
	items := make([]model.ShoppingListItem, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if e.Quantity.Valid && e.Quantity.Decimal.IsZero() {
			continue
		}
		items = append(items, e.toItem(userID))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.ShoppingListItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}

// Show reconstructs the user's unpurchased rows into the consolidated
// category -> name -> amount shape. Quantity is null for additional rows
// saved without one.
func (s *ShoppingListService) Show(ctx context.Context, userID uuid.UUID) (ConsolidatedList, error) {
	items, err := s.listItems(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	list := make(ConsolidatedList)
	for _, item := range items {
		name, qty := itemPayload(item)
		if name == "" {
			continue
		}
		byName, ok := list[item.Category]
		if !ok {
			byName = make(map[string]Amount)
			list[item.Category] = byName
		}
		byName[name] = Amount{Quantity: qty, Unit: item.Unit}
	}
	return list, nil
}

// Items returns the user's rows as stored, unpurchased first. The row ids
// in the result are what MarkPurchased takes.
func (s *ShoppingListService) Items(ctx context.Context, userID uuid.UUID) ([]model.ShoppingListItem, error) {
	return s.listItems(ctx, userID, true)
}

// MarkPurchased flips is_purchased on one of the user's rows. An id that
// matches none of the user's rows is a no-op: the row was already replaced
// or cleared, which is routine, not an error.
func (s *ShoppingListService) MarkPurchased(ctx context.Context, userID, itemID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&model.ShoppingListItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("is_purchased", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark item purchased: %w", result.Error)
	}
	return nil
}

// Clear deletes all of the user's rows.
func (s *ShoppingListService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ShoppingListItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear shopping list: %w", err)
	}
	return nil
}

func (s *ShoppingListService) listItems(ctx context.Context, userID uuid.UUID, includePurchased bool) ([]model.ShoppingListItem, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includePurchased {
		query = query.Where("is_purchased = ?", false)
	}
	var items []model.ShoppingListItem
	if err := query.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	return items, nil
}

// itemPayload picks the populated column group off a persisted row.
func itemPayload(item model.ShoppingListItem) (string, decimal.NullDecimal) {
	if item.Category == model.AdditionalCategory {
		if item.AdditionalName == nil {
			return "", decimal.NullDecimal{}
		}
		return *item.AdditionalName, item.AdditionalQuantity
	}
	if item.IngredientName == nil {
		return "", decimal.NullDecimal{}
	}
	return *item.IngredientName, item.Quantity
}
