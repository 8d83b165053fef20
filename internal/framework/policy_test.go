package framework

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

func TestFlagThresholds_General(t *testing.T) {
	th := General().Flags
	assert.Equal(t, model.FlagGreen, th.Flag(8.5))
	assert.Equal(t, model.FlagGreen, th.Flag(8.0))
	assert.Equal(t, model.FlagYellow, th.Flag(7.0))
	assert.Equal(t, model.FlagYellow, th.Flag(6.5))
	assert.Equal(t, model.FlagRed, th.Flag(6.49))
	assert.Equal(t, model.FlagRed, th.Flag(5.0))
}

func TestFlagThresholds_Medtech(t *testing.T) {
	th := Medtech().Flags
	assert.Equal(t, model.FlagYellow, th.Flag(8.0))
	assert.Equal(t, model.FlagRed, th.Flag(6.9))
}

func TestGrowthCutoffs(t *testing.T) {
	c := General().Growth
	assert.Equal(t, model.TierHigh, c.Tier(7.5))
	assert.Equal(t, model.TierModerate, c.Tier(7.49))
	assert.Equal(t, model.TierModerate, c.Tier(5))
	assert.Equal(t, model.TierLow, c.Tier(4.99))
}

func TestGapBuckets(t *testing.T) {
	b := General().Gap
	assert.Equal(t, model.PriorityCritical, b.Priority(-25))
	assert.Equal(t, model.PriorityCritical, b.Priority(30))
	assert.Equal(t, model.PriorityHigh, b.Priority(-15))
	assert.Equal(t, model.PriorityMedium, b.Priority(5))
	assert.Equal(t, model.PriorityLow, b.Priority(-4.9))
	assert.Equal(t, model.PriorityLow, b.Priority(0))
}

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, General().Validate())
	require.NoError(t, Medtech().Validate())

	p := General()
	p.Flags = FlagThresholds{Green: 6, Yellow: 7}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flags.green must be > flags.yellow")

	p = General()
	p.Gap = GapBuckets{Critical: 10, High: 15, Medium: 5}
	assert.Error(t, p.Validate())
}

func TestResolve_RejectsBadFramework(t *testing.T) {
	_, err := NewRegistry().Resolve("fintech", "payments")
	require.Error(t, err)

	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "framework", ve.Field)
}

func TestResolve_RejectsEmptySector(t *testing.T) {
	_, err := NewRegistry().Resolve(model.FrameworkMedtech, "  ")
	require.Error(t, err)

	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "sector", ve.Field)
}

func TestResolve_BuiltIns(t *testing.T) {
	p, err := NewRegistry().Resolve(model.FrameworkMedtech, " Diagnostics ")
	require.NoError(t, err)
	assert.Equal(t, model.FrameworkMedtech, p.Framework)
	assert.Equal(t, "Diagnostics", p.Sector)
	assert.Equal(t, 8.5, p.Flags.Green)
}

func TestParse_FrameworkAndSectorOverrides(t *testing.T) {
	data := []byte(`
frameworks:
  general:
    growth:
      high: 8
      moderate: 6
sectors:
  - framework: medtech
    sector: Diagnostics
    flags:
      green: 9
      yellow: 7.5
`)
	r, err := Parse(data)
	require.NoError(t, err)

	g, err := r.Resolve(model.FrameworkGeneral, "saas")
	require.NoError(t, err)
	assert.Equal(t, 8.0, g.Growth.High)
	assert.Equal(t, 8.0, g.Flags.Green, "untouched sections keep built-in values")

	m, err := r.Resolve(model.FrameworkMedtech, "diagnostics")
	require.NoError(t, err)
	assert.Equal(t, 9.0, m.Flags.Green)
	assert.Equal(t, 8.0, m.Growth.High)

	other, err := r.Resolve(model.FrameworkMedtech, "devices")
	require.NoError(t, err)
	assert.Equal(t, 8.5, other.Flags.Green)
}

func TestParse_InvalidOverride(t *testing.T) {
	_, err := Parse([]byte(`
frameworks:
  general:
    flags:
      green: 5
      yellow: 6
`))
	assert.Error(t, err)

	_, err = Parse([]byte(`
frameworks:
  biotech:
    flags:
      green: 9
      yellow: 6
`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frameworks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frameworks: {}\n"), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	p, err := r.Resolve(model.FrameworkGeneral, "saas")
	require.NoError(t, err)
	assert.Equal(t, General().Flags, p.Flags)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPolicy_Fingerprint(t *testing.T) {
	g := General()
	assert.Len(t, g.Fingerprint(), 64)
	assert.Equal(t, g.Fingerprint(), General().Fingerprint())
	assert.NotEqual(t, g.Fingerprint(), Medtech().Fingerprint())

	g.Growth.High = 8
	assert.NotEqual(t, General().Fingerprint(), g.Fingerprint())
}
