package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealforge/backend/internal/model"
)

// Amount is a quantity/unit pair inside a consolidated shopping list.
// Quantity is null for additional items saved without a parsed quantity;
// a nil Unit means count units.
type Amount struct {
	Quantity decimal.NullDecimal `json:"quantity"`
	Unit     *string             `json:"unit"`
}

// ConsolidatedList is the category -> ingredient name -> amount aggregate
// produced by shopping-list generation and reconstructed by Show. Ingredient
// names are unique within a category.
type ConsolidatedList map[string]map[string]Amount

// add folds one line into the list. Quantities for a repeated
// (category, name) pair are summed; the first-seen unit wins. Units are not
// converted or checked for compatibility.
func (l ConsolidatedList) add(category, name string, qty decimal.Decimal, unit *string) {
	byName, ok := l[category]
	if !ok {
		byName = make(map[string]Amount)
		l[category] = byName
	}
	existing, ok := byName[name]
	if !ok {
		byName[name] = Amount{
			Quantity: decimal.NewNullDecimal(qty),
			Unit:     unit,
		}
		return
	}
	existing.Quantity = decimal.NewNullDecimal(existing.Quantity.Decimal.Add(qty))
	byName[name] = existing
}

// EntryKind discriminates the two shapes a shopping-list line can take.
type EntryKind int

const (
	// StandardEntry is a line derived from a recipe ingredient.
	StandardEntry EntryKind = iota
	// AdditionalEntry is a free-form line the user typed in.
	AdditionalEntry
)

// ListEntry is the tagged in-memory form of a shopping-list line. It is
// flattened to the two parallel column groups of model.ShoppingListItem only
// at the storage boundary.
type ListEntry struct {
	Kind     EntryKind
	Category string
	Name     string
	Quantity decimal.NullDecimal
	Unit     *string
}

// NewListEntry builds an entry, deriving its kind from the category
// discriminator.
func NewListEntry(category, name string, quantity decimal.NullDecimal, unit *string) ListEntry {
	kind := StandardEntry
	if category == model.AdditionalCategory {
		kind = AdditionalEntry
	}
	return ListEntry{
		Kind:     kind,
		Category: category,
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	}
}

// toItem flattens the entry to the persisted row shape.
func (e ListEntry) toItem(userID uuid.UUID) model.ShoppingListItem {
	item := model.ShoppingListItem{
		UserID:   userID,
		Category: e.Category,
		Unit:     e.Unit,
	}
	name := e.Name
	switch e.Kind {
	case AdditionalEntry:
		item.AdditionalName = &name
		item.AdditionalQuantity = e.Quantity
	default:
		item.IngredientName = &name
		item.Quantity = e.Quantity
	}
	return item
}
