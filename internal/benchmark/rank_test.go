package benchmark

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/sample"
)

func TestRank_Sample(t *testing.T) {
	out, err := Rank(sample.Benchmark())
	require.NoError(t, err)
	require.Len(t, out, 3)

	rg := out[0]
	assert.Equal(t, "revenue_growth", rg.Category)
	assert.Equal(t, 2.0, rg.Deviation)
	// 8.5 sits halfway between peers 8.0 (mid-rank 5.5/7) and 9.0 (6.5/7).
	assert.InDelta(t, 100*6.0/7, rg.Percentile, 1e-9)

	assert.Equal(t, -0.2, out[1].Deviation)
	assert.Equal(t, 0.5, out[2].Deviation)
	assert.InDelta(t, 74.0, out[2].Percentile, 1e-9, "no peers maps score linearly")
}

func TestPercentile_StrictlyIncreasing(t *testing.T) {
	distributions := [][]float64{
		{4.0, 5.5, 6.0, 6.5, 7.0, 8.0, 9.0},
		{5, 5, 5, 5},
		{0, 10},
		{0, 0, 3, 10, 10},
		{7.25},
		nil,
	}
	for _, peers := range distributions {
		prev := Percentile(0, peers)
		for s := 0.05; s <= 10.0001; s += 0.05 {
			p := Percentile(s, peers)
			assert.Greater(t, p, prev, "peers %v score %.2f", peers, s)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
			prev = p
		}
	}
}

func TestPercentile_Deterministic(t *testing.T) {
	peers := []float64{9, 3, 6, 6, 1}
	first := Percentile(6.3, peers)
	for range 10 {
		assert.Equal(t, first, Percentile(6.3, peers))
	}
	assert.Equal(t, []float64{9, 3, 6, 6, 1}, peers, "input not reordered")
}

func TestPercentile_MidRank(t *testing.T) {
	peers := []float64{2, 4, 6, 8}
	assert.InDelta(t, 12.5, Percentile(2, peers), 1e-9)
	assert.InDelta(t, 37.5, Percentile(4, peers), 1e-9)
	assert.InDelta(t, 50.0, Percentile(5, peers), 1e-9)
	assert.InDelta(t, 87.5, Percentile(8, peers), 1e-9)
	assert.InDelta(t, 0.0, Percentile(0, peers), 1e-9)
	assert.InDelta(t, 100.0, Percentile(10, peers), 1e-9)
}

func TestRank_Empty(t *testing.T) {
	_, err := Rank(model.BenchmarkInput{})
	var sm *model.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "metrics", sm.Field)
}

func TestRank_PeerOutOfRange(t *testing.T) {
	in := model.BenchmarkInput{Metrics: []model.BenchmarkMetric{
		{Category: "arr", Score: 5, SectorAvg: 5, Peers: []float64{3, 12}},
	}}
	_, err := Rank(in)
	var sm *model.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "metrics[0].peers[1]", sm.Field)
}
