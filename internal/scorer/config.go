// Package scorer aggregates the TCA scorecard into a weighted composite and
// per-category flags.
package scorer

import (
	"fmt"
	"math"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// WeightTolerance is the allowed drift of a weight sum from 100.
const WeightTolerance = 0.01

// WeightSum returns the sum of all category weights.
func WeightSum(categories []model.TCACategoryScore) float64 {
	var sum float64
	for _, c := range categories {
		sum += c.Weight
	}
	return sum
}

// ValidateWeights checks that every weight is non-negative and that the
// weights sum to 100 within WeightTolerance.
func ValidateWeights(categories []model.TCACategoryScore) error {
	for i, c := range categories {
		if c.Weight < 0 {
			return &model.SchemaMismatchError{
				Module:   model.ModuleTCA,
				Field:    fmt.Sprintf("categories[%d].weight", i),
				Expected: "weight >= 0",
				Actual:   fmt.Sprintf("%g", c.Weight),
			}
		}
	}

	sum := WeightSum(categories)
	if math.Abs(sum-100) > WeightTolerance {
		return &model.SchemaMismatchError{
			Module:   model.ModuleTCA,
			Field:    "categories.weight",
			Expected: "weights summing to 100 ± 0.01",
			Actual:   fmt.Sprintf("sum %.4f", sum),
		}
	}
	return nil
}

// validateCategories checks the scorecard holds each category exactly once.
func validateCategories(categories []model.TCACategoryScore) error {
	if len(categories) != len(model.Categories) {
		return &model.SchemaMismatchError{
			Module:   model.ModuleTCA,
			Field:    "categories",
			Expected: fmt.Sprintf("%d entries", len(model.Categories)),
			Actual:   fmt.Sprintf("%d entries", len(categories)),
		}
	}
	seen := make(map[model.Category]bool, len(categories))
	for _, c := range categories {
		if c.Category.Index() < 0 || seen[c.Category] {
			return &model.SchemaMismatchError{
				Module:   model.ModuleTCA,
				Field:    "categories",
				Expected: "each category exactly once",
				Actual:   fmt.Sprintf("unexpected %q", c.Category),
			}
		}
		seen[c.Category] = true
	}
	return nil
}
