package scorer

import (
	"math"
	"sort"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Aggregate computes the weighted composite and derives each category's
// flag from the policy thresholds. Categories are returned in declaration
// order regardless of input order.
func Aggregate(in model.ScorecardInput, p framework.Policy) (model.Scorecard, error) {
	if err := validateCategories(in.Categories); err != nil {
		return model.Scorecard{}, err
	}
	if err := ValidateWeights(in.Categories); err != nil {
		return model.Scorecard{}, err
	}

	out := model.Scorecard{Categories: make([]model.CategoryFlag, 0, len(in.Categories))}
	var composite float64
	for _, c := range in.Categories {
		composite += c.RawScore * c.Weight / 100
		out.Categories = append(out.Categories, model.CategoryFlag{
			Category: c.Category,
			RawScore: c.RawScore,
			Weight:   c.Weight,
			Flag:     p.Flags.Flag(c.RawScore),
		})
	}
	sort.SliceStable(out.Categories, func(i, j int) bool {
		return out.Categories[i].Category.Index() < out.Categories[j].Category.Index()
	})

	out.Composite = Round2(composite)
	return out, nil
}

// Round2 rounds to two decimal places. It is monotonic non-decreasing.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
