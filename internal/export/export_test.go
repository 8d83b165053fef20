package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/report"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/sample"
)

func sampleReport(t *testing.T) *model.Report {
	t.Helper()
	p, err := framework.NewRegistry().Resolve(model.FrameworkMedtech, "diagnostics")
	require.NoError(t, err)
	asm := &report.Assembler{
		Now:   func() time.Time { return time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC) },
		NewID: func() string { return "rep-1" },
	}
	rep, err := asm.Assemble(p, report.Inputs{Outputs: map[model.Module]model.ModuleOutput{
		model.ModuleTCA:       sample.Scorecard(),
		model.ModuleRisk:      sample.Risk(),
		model.ModuleMacro:     sample.Macro(),
		model.ModuleBenchmark: sample.Benchmark(),
		model.ModuleGrowth:    sample.Growth(),
		model.ModuleGap:       sample.Gap(),
		model.ModuleFunder:    sample.Funder(),
		model.ModuleTeam:      sample.Team(),
		model.ModuleStrategic: sample.Strategic(),
	}})
	require.NoError(t, err)
	return rep
}

func TestWorkbook_Sheets(t *testing.T) {
	rep := sampleReport(t)
	f, err := Workbook(rep)
	require.NoError(t, err)

	require.Len(t, f.Sheets, 5)
	names := make([]string, len(f.Sheets))
	for i, s := range f.Sheets {
		names[i] = s.Name
	}
	assert.Equal(t, []string{SheetScorecard, SheetRisk, SheetBenchmark, SheetGaps, SheetFunders}, names)

	// header + 12 categories + composite
	assert.Len(t, f.Sheet[SheetScorecard].Rows, 14)
	assert.Len(t, f.Sheet[SheetRisk].Rows, len(rep.Risk.Flags)+2)
	assert.Len(t, f.Sheet[SheetBenchmark].Rows, len(rep.Benchmark)+1)
	assert.Len(t, f.Sheet[SheetGaps].Rows, len(rep.Gaps.Gaps)+1)
	assert.Len(t, f.Sheet[SheetFunders].Rows, len(rep.FunderMatches)+1)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	rep := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rep))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sc := f.Sheet[SheetScorecard]
	require.NotNil(t, sc)
	assert.Equal(t, "Category", sc.Rows[0].Cells[0].String())
	assert.Equal(t, string(rep.Flags[0].Category), sc.Rows[1].Cells[0].String())
	assert.Equal(t, string(rep.Flags[0].Flag), sc.Rows[1].Cells[3].String())

	last := sc.Rows[len(sc.Rows)-1]
	assert.Equal(t, "Composite", last.Cells[0].String())
	composite, err := last.Cells[1].Float()
	require.NoError(t, err)
	assert.InDelta(t, rep.Composite, composite, 1e-9)

	fs := f.Sheet[SheetFunders]
	require.NotNil(t, fs)
	assert.Equal(t, rep.FunderMatches[0].InvestorName, fs.Rows[1].Cells[0].String())
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, SaveXLSX(path, sampleReport(t)))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Sheets, 5)
}

func TestSaveXLSX_BadPath(t *testing.T) {
	err := SaveXLSX(filepath.Join(t.TempDir(), "missing", "report.xlsx"), sampleReport(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: save")
}

func TestMarkdown(t *testing.T) {
	rep := sampleReport(t)
	md := Markdown(rep, "Acme Diagnostics")

	assert.Contains(t, md, "# TCA Due-Diligence Report: Acme Diagnostics")
	assert.Contains(t, md, "Framework: medtech | Sector: diagnostics")
	assert.Contains(t, md, "Generated: 2026-03-14 14:30 UTC")
	assert.Contains(t, md, "- Composite score: 7.12 / 10")
	assert.Contains(t, md, "| leadership |")
	assert.Contains(t, md, "## Top Funder Matches")
	assert.Contains(t, md, "- Recommended pathway: "+string(rep.StrategicFit.Recommended))
	if len(rep.Gaps.Roadmap) > 0 {
		assert.Contains(t, md, "## Improvement Roadmap")
		assert.Contains(t, md, "1. **"+string(rep.Gaps.Roadmap[0].Category)+"**")
	}
}

func TestMarkdown_EmptyReport(t *testing.T) {
	rep := &model.Report{ID: "rep-9", FrameworkID: model.FrameworkGeneral, SectorID: "fintech"}
	md := Markdown(rep, "")

	assert.Contains(t, md, "# TCA Due-Diligence Report: rep-9")
	assert.Contains(t, md, "No funders matched.")
	assert.Contains(t, md, "0 red, 0 yellow, 0 green")
	assert.NotContains(t, md, "## Improvement Roadmap")
	assert.NotContains(t, md, "## Team")
}

func TestHTML(t *testing.T) {
	page, err := HTML(sampleReport(t), "Acme <Diagnostics>")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, "<title>TCA Report: Acme &lt;Diagnostics&gt;</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>leadership</td>")
	assert.Contains(t, page, "<h2>Scorecard</h2>")
}
