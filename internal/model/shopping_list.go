package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdditionalCategory discriminates free-form shopping-list rows from rows
// derived from recipe ingredients.
const AdditionalCategory = "Additional"

// ShoppingListItem is one persisted shopping-list line. Exactly one of the
// two column groups is populated per row: (IngredientName, Quantity, Unit)
// for standard rows, (AdditionalName, AdditionalQuantity) for rows with
// Category == AdditionalCategory. Services work with the tagged ListEntry
// shape and flatten to this layout at the storage boundary.
type ShoppingListItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	IsPurchased bool      `gorm:"not null;default:false" json:"is_purchased"`

	IngredientName *string              `gorm:"size:255" json:"ingredient_name,omitempty"`
	Quantity       decimal.NullDecimal  `gorm:"type:decimal(10,2)" json:"quantity,omitempty"`
	Unit           *string              `gorm:"size:20" json:"unit,omitempty"`

	AdditionalName     *string             `gorm:"size:255" json:"additional_name,omitempty"`
	AdditionalQuantity decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"additional_quantity,omitempty"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
