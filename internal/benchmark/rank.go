// Package benchmark ranks startup metrics against sector peer distributions.
package benchmark

import (
	"fmt"
	"math"
	"sort"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Scale bounds of every benchmark value.
const (
	ScaleMin = 0.0
	ScaleMax = 10.0
)

type point struct{ x, y float64 }

// Rank computes deviation and percentile for every metric, preserving input
// order.
func Rank(in model.BenchmarkInput) ([]model.BenchmarkEntry, error) {
	if len(in.Metrics) == 0 {
		return nil, &model.SchemaMismatchError{
			Module:   model.ModuleBenchmark,
			Field:    "metrics",
			Expected: "at least 1 entries",
			Actual:   "0 entries",
		}
	}

	out := make([]model.BenchmarkEntry, 0, len(in.Metrics))
	for i, m := range in.Metrics {
		if err := checkRange(fmt.Sprintf("metrics[%d].score", i), m.Score); err != nil {
			return nil, err
		}
		for j, p := range m.Peers {
			if err := checkRange(fmt.Sprintf("metrics[%d].peers[%d]", i, j), p); err != nil {
				return nil, err
			}
		}
		out = append(out, model.BenchmarkEntry{
			Category:   m.Category,
			Score:      m.Score,
			SectorAvg:  m.SectorAvg,
			Percentile: Percentile(m.Score, m.Peers),
			Deviation:  math.Round((m.Score-m.SectorAvg)*100) / 100,
		})
	}
	return out, nil
}

// Percentile ranks score against peers on a 0-100 scale. Each distinct peer
// value sits at its mid-rank, 100*(below + equal/2)/n, and the curve is
// anchored at (0,0) and (10,100) with linear interpolation in between, so
// the result is strictly increasing in score. With no peers the score is
// mapped linearly onto 0-100.
func Percentile(score float64, peers []float64) float64 {
	score = math.Max(ScaleMin, math.Min(ScaleMax, score))
	if len(peers) == 0 {
		return score * 100 / ScaleMax
	}

	curve := buildCurve(peers)
	if score <= curve[0].x {
		return curve[0].y
	}
	for i := 1; i < len(curve); i++ {
		lo, hi := curve[i-1], curve[i]
		if score <= hi.x {
			return lo.y + (score-lo.x)*(hi.y-lo.y)/(hi.x-lo.x)
		}
	}
	return curve[len(curve)-1].y
}

func buildCurve(peers []float64) []point {
	sorted := make([]float64, len(peers))
	copy(sorted, peers)
	sort.Float64s(sorted)
	n := float64(len(sorted))

	curve := make([]point, 0, len(sorted)+2)
	if sorted[0] > ScaleMin {
		curve = append(curve, point{ScaleMin, 0})
	}
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		below, equal := float64(i), float64(j-i)
		curve = append(curve, point{sorted[i], 100 * (below + equal/2) / n})
		i = j
	}
	if sorted[len(sorted)-1] < ScaleMax {
		curve = append(curve, point{ScaleMax, 100})
	}
	return curve
}

func checkRange(field string, v float64) error {
	if v < ScaleMin || v > ScaleMax || math.IsNaN(v) {
		return &model.SchemaMismatchError{
			Module:   model.ModuleBenchmark,
			Field:    field,
			Expected: "value in [0,10]",
			Actual:   fmt.Sprintf("%g", v),
		}
	}
	return nil
}
