package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a reference catalogue entry. Nutrient columns are per 100
// reference units of the ingredient (g, ml or count, whatever the catalogue
// was authored in).
type Ingredient struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Name           string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category       string    `gorm:"size:50;not null" json:"category"`
	CaloriesPer100 float64   `gorm:"type:float" json:"calories_per_100"`
	ProteinPer100  float64   `gorm:"type:float" json:"protein_per_100"`
	CarbsPer100    float64   `gorm:"type:float" json:"carbs_per_100"`
	FatPer100      float64   `gorm:"type:float" json:"fat_per_100"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
