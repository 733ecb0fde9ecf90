package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealPlan struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	StartsOn  *time.Time       `json:"starts_on"`
	Recipes   []MealPlanRecipe `gorm:"constraint:OnDelete:CASCADE" json:"recipes,omitempty"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MealPlanRecipe is a recipe membership row. Removing a recipe from a plan
// soft-deletes the row; aggregation only sees live memberships.
type MealPlanRecipe struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	MealPlanID uuid.UUID      `gorm:"type:uuid;not null;index" json:"meal_plan_id"`
	RecipeID   uuid.UUID      `gorm:"type:uuid;not null" json:"recipe_id"`
}

func (m *MealPlanRecipe) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
