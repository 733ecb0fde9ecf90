// Package scaling holds the pure serving-scaling and nutrition arithmetic
// shared by the recipe detail view and the shopping-list generator. All
// quantity math is decimal so repeated additions downstream don't accumulate
// binary float error.
package scaling

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidServings is returned when a serving count is zero or negative.
var ErrInvalidServings = errors.New("servings must be a positive integer")

// IngredientLine is the slice of a recipe line the calculators need.
type IngredientLine struct {
	Name           string
	Category       string
	Quantity       decimal.Decimal
	Unit           *string
	CaloriesPer100 float64
	ProteinPer100  float64
	CarbsPer100    float64
	FatPer100      float64
}

// Macros is a nutrition total for a recipe's base batch.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// ScaleQuantity converts a quantity authored for baseServings into the
// quantity for requestedServings: base * requested / base servings.
// Callers clamp requestedServings to a sane UI range before calling;
// non-positive serving counts are rejected here regardless.
func ScaleQuantity(base decimal.Decimal, baseServings, requestedServings int) (decimal.Decimal, error) {
	if baseServings <= 0 || requestedServings <= 0 {
		return decimal.Zero, ErrInvalidServings
	}
	ratio := decimal.NewFromInt(int64(requestedServings)).Div(decimal.NewFromInt(int64(baseServings)))
	return base.Mul(ratio), nil
}

// ComputeNutritionTotals sums nutrient contributions over all ingredient
// lines: (per-100 value / 100) * line quantity. The result is the total for
// the recipe's base batch. It deliberately does not scale with the serving
// slider: on the recipe view the ingredient quantities follow the slider,
// the macro panel stays fixed at the authored batch.
func ComputeNutritionTotals(lines []IngredientLine) Macros {
	var m Macros
	for _, line := range lines {
		qty, _ := line.Quantity.Float64()
		m.Calories += line.CaloriesPer100 / 100 * qty
		m.Protein += line.ProteinPer100 / 100 * qty
		m.Carbs += line.CarbsPer100 / 100 * qty
		m.Fat += line.FatPer100 / 100 * qty
	}
	return m
}
