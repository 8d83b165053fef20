package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardinalities(t *testing.T) {
	t.Parallel()
	assert.Len(t, Modules, 9)
	assert.Len(t, Categories, 12)
	assert.Len(t, RiskDomains, 14)
	assert.Len(t, PESTELFactors, 6)
	assert.Len(t, Pathways, 3)
}

func TestIndexes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, CategoryLeadership.Index())
	assert.Equal(t, 11, CategoryExitPotential.Index())
	assert.Equal(t, -1, Category("vibes").Index())
	assert.Equal(t, 13, RiskDataPrivacy.Index())
	assert.Equal(t, -1, RiskDomain("weather").Index())
	assert.Equal(t, 5, FactorLegal.Index())
	assert.Equal(t, 2, PathwayPartner.Index())
	assert.Equal(t, -1, Pathway("Merge").Index())
}

func TestValid(t *testing.T) {
	t.Parallel()
	assert.True(t, ModuleStrategic.Valid())
	assert.False(t, Module("sentiment").Valid())
	assert.True(t, FrameworkMedtech.Valid())
	assert.False(t, FrameworkID("fintech").Valid())
	assert.False(t, FrameworkID("").Valid())
}

func TestFlagSeverity(t *testing.T) {
	t.Parallel()
	assert.Less(t, FlagGreen.Severity(), FlagYellow.Severity())
	assert.Less(t, FlagYellow.Severity(), FlagRed.Severity())
	assert.Equal(t, -1, Flag("amber").Severity())
}

func TestAnalysisRequest_CompanyName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Acme", AnalysisRequest{CompanyData: map[string]any{"name": "Acme"}}.CompanyName())
	assert.Empty(t, AnalysisRequest{}.CompanyName())
	assert.Empty(t, AnalysisRequest{CompanyData: map[string]any{"name": 7}}.CompanyName())
}
