package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/sample"
)

func TestDisplayPercent(t *testing.T) {
	assert.Equal(t, 0.0, DisplayPercent(-5))
	assert.Equal(t, 50.0, DisplayPercent(0))
	assert.Equal(t, 80.0, DisplayPercent(3))
	assert.Equal(t, 100.0, DisplayPercent(5))
	assert.Equal(t, 100.0, DisplayPercent(7), "clamped")
}

func TestMacro(t *testing.T) {
	out, err := Macro(sample.Macro())
	require.NoError(t, err)
	// (6.5+7+7.5+8.5+6+5.5)/6 = 6.8333
	assert.Equal(t, 6.83, out.Alignment)
	require.Len(t, out.Factors, 6)
	assert.Equal(t, model.FactorPolitical, out.Factors[0].Factor)
	assert.Equal(t, 40.0, out.Factors[0].DisplayPercent)
	assert.Equal(t, 80.0, out.Factors[3].DisplayPercent)
}

func TestMacro_ReordersAndRejectsDuplicates(t *testing.T) {
	in := sample.Macro()
	in.Factors[0], in.Factors[5] = in.Factors[5], in.Factors[0]
	out, err := Macro(in)
	require.NoError(t, err)
	assert.Equal(t, model.FactorLegal, out.Factors[5].Factor)

	in.Factors[1].Factor = in.Factors[0].Factor
	_, err = Macro(in)
	var sm *model.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
}

func TestTeam(t *testing.T) {
	out, err := Team(sample.Team())
	require.NoError(t, err)
	assert.Equal(t, 7.9, out.AverageScore)
	assert.Equal(t, 21.0, out.TotalExperienceYears)

	_, err = Team(model.TeamInput{})
	var sm *model.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "members", sm.Field)
}

func TestStrategic(t *testing.T) {
	out, err := Strategic(sample.Strategic())
	require.NoError(t, err)
	assert.Equal(t, model.PathwayPartner, out.Recommended)
	assert.Equal(t, model.PathwayBuild, out.Pathways[0].Pathway)
}

func TestStrategic_TieGoesToEarlierPathway(t *testing.T) {
	in := model.StrategicInput{Pathways: []model.StrategicFitScore{
		{Pathway: model.PathwayPartner, FitScore: 7},
		{Pathway: model.PathwayBuy, FitScore: 7},
		{Pathway: model.PathwayBuild, FitScore: 3},
	}}
	out, err := Strategic(in)
	require.NoError(t, err)
	assert.Equal(t, model.PathwayBuy, out.Recommended)
}

func TestStrategic_Duplicate(t *testing.T) {
	in := sample.Strategic()
	in.Pathways[1].Pathway = model.PathwayBuild
	_, err := Strategic(in)
	var sm *model.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
}
