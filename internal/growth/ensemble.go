// Package growth combines the sub-model votes of the growth ensemble into a
// tier classification.
package growth

import (
	"fmt"
	"math"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Votes is the number of sub-models in the ensemble.
const Votes = 6

// WeightTolerance is the allowed drift of the vote weight sum from 100.
const WeightTolerance = 0.01

// WeightedScore returns Σ(score × weight/100) over the votes.
func WeightedScore(votes []model.ModelVote) float64 {
	var total float64
	for _, v := range votes {
		total += v.Score * v.Weight / 100
	}
	return total
}

// Combine classifies the ensemble. Confidence and scenario bands are passed
// through unchanged.
func Combine(in model.GrowthInput, p framework.Policy) (model.GrowthClassification, error) {
	if len(in.Votes) != Votes {
		return model.GrowthClassification{}, &model.SchemaMismatchError{
			Module:   model.ModuleGrowth,
			Field:    "votes",
			Expected: fmt.Sprintf("%d entries", Votes),
			Actual:   fmt.Sprintf("%d entries", len(in.Votes)),
		}
	}

	var sum float64
	for i, v := range in.Votes {
		if v.Weight < 0 {
			return model.GrowthClassification{}, &model.SchemaMismatchError{
				Module:   model.ModuleGrowth,
				Field:    fmt.Sprintf("votes[%d].weight", i),
				Expected: "weight >= 0",
				Actual:   fmt.Sprintf("%g", v.Weight),
			}
		}
		sum += v.Weight
	}
	if math.Abs(sum-100) > WeightTolerance {
		return model.GrowthClassification{}, &model.SchemaMismatchError{
			Module:   model.ModuleGrowth,
			Field:    "votes.weight",
			Expected: "weights summing to 100 ± 0.01",
			Actual:   fmt.Sprintf("sum %.4f", sum),
		}
	}
	if in.Confidence < 0 || in.Confidence > 100 {
		return model.GrowthClassification{}, &model.SchemaMismatchError{
			Module:   model.ModuleGrowth,
			Field:    "confidence",
			Expected: "value in [0,100]",
			Actual:   fmt.Sprintf("%g", in.Confidence),
		}
	}

	score := WeightedScore(in.Votes)
	return model.GrowthClassification{
		Tier:          p.Growth.Tier(score),
		Confidence:    in.Confidence,
		WeightedScore: score,
		Scenarios:     append([]model.Scenario(nil), in.Scenarios...),
		ModelVotes:    append([]model.ModelVote(nil), in.Votes...),
	}, nil
}
