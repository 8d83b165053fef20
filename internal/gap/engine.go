// Package gap diffs the startup's category scores against an ideal
// investor-ready profile and selects the categories that need a roadmap
// action.
package gap

import (
	"fmt"
	"math"
	"sort"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Analyze computes one GapEntry per category, in declaration order, and the
// roadmap of Critical and High gaps ordered by descending |gapValue|.
//
// Actual scores are rescaled from 0-10 to 0-100 before diffing and
// gapValue is actual minus ideal, so a shortfall is negative.
func Analyze(scores model.ScorecardInput, in model.GapInput, p framework.Policy) (model.GapAnalysis, error) {
	actual, err := index(model.ModuleTCA, "categories", len(scores.Categories), func(i int) model.Category {
		return scores.Categories[i].Category
	})
	if err != nil {
		return model.GapAnalysis{}, err
	}
	ideal, err := index(model.ModuleGap, "profile", len(in.Profile), func(i int) model.Category {
		return in.Profile[i].Category
	})
	if err != nil {
		return model.GapAnalysis{}, err
	}

	out := model.GapAnalysis{Gaps: make([]model.GapEntry, 0, len(model.Categories))}
	actions := make(map[model.Category]string)
	for _, c := range model.Categories {
		score := scores.Categories[actual[c]]
		ref := in.Profile[ideal[c]]
		value := round2(score.RawScore * 10)
		gap := round2(value - ref.Ideal)
		out.Gaps = append(out.Gaps, model.GapEntry{
			Category:  c,
			Actual:    value,
			Ideal:     ref.Ideal,
			GapValue:  gap,
			Priority:  p.Gap.Priority(gap),
			Trend:     ref.Trend,
			Direction: direction(ref.Trend),
		})
		actions[c] = ref.Action
	}

	out.Roadmap = roadmap(out.Gaps, actions)
	return out, nil
}

func roadmap(gaps []model.GapEntry, actions map[model.Category]string) []model.RoadmapItem {
	var selected []model.GapEntry
	for _, g := range gaps {
		if g.Priority == model.PriorityCritical || g.Priority == model.PriorityHigh {
			selected = append(selected, g)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		ai, aj := math.Abs(selected[i].GapValue), math.Abs(selected[j].GapValue)
		if ai != aj {
			return ai > aj
		}
		return selected[i].Category.Index() < selected[j].Category.Index()
	})

	items := make([]model.RoadmapItem, 0, len(selected))
	for i, g := range selected {
		items = append(items, model.RoadmapItem{
			Rank:     i + 1,
			Category: g.Category,
			GapValue: g.GapValue,
			Priority: g.Priority,
			Action:   actions[g.Category],
		})
	}
	return items
}

// index maps each category to its position, requiring every category
// exactly once.
func index(module model.Module, field string, n int, at func(int) model.Category) (map[model.Category]int, error) {
	if n != len(model.Categories) {
		return nil, &model.SchemaMismatchError{
			Module:   module,
			Field:    field,
			Expected: fmt.Sprintf("%d entries", len(model.Categories)),
			Actual:   fmt.Sprintf("%d entries", n),
		}
	}
	pos := make(map[model.Category]int, n)
	for i := 0; i < n; i++ {
		c := at(i)
		if _, dup := pos[c]; dup || c.Index() < 0 {
			return nil, &model.SchemaMismatchError{
				Module:   module,
				Field:    field,
				Expected: "each category exactly once",
				Actual:   fmt.Sprintf("unexpected %q", c),
			}
		}
		pos[c] = i
	}
	return pos, nil
}

func direction(trend float64) model.Direction {
	switch {
	case trend > 0:
		return model.DirectionUp
	case trend < 0:
		return model.DirectionDown
	default:
		return model.DirectionFlat
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
