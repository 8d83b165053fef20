// Package export renders assembled reports for people: an XLSX workbook and
// a markdown summary.
package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Sheet names in workbook order.
const (
	SheetScorecard = "Scorecard"
	SheetRisk      = "Risk"
	SheetBenchmark = "Benchmark"
	SheetGaps      = "Gaps"
	SheetFunders   = "Funders"
)

// Workbook builds the XLSX workbook for rep.
func Workbook(rep *model.Report) (*xlsx.File, error) {
	f := xlsx.NewFile()

	sheets := []struct {
		name string
		fill func(*xlsx.Sheet, *model.Report)
	}{
		{SheetScorecard, fillScorecard},
		{SheetRisk, fillRisk},
		{SheetBenchmark, fillBenchmark},
		{SheetGaps, fillGaps},
		{SheetFunders, fillFunders},
	}
	for _, s := range sheets {
		sheet, err := f.AddSheet(s.name)
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: add sheet %s", s.name)
		}
		s.fill(sheet, rep)
	}
	return f, nil
}

// WriteXLSX writes the workbook for rep to w.
func WriteXLSX(w io.Writer, rep *model.Report) error {
	f, err := Workbook(rep)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "xlsx: write workbook")
}

// SaveXLSX writes the workbook for rep to path.
func SaveXLSX(path string, rep *model.Report) error {
	f, err := Workbook(rep)
	if err != nil {
		return err
	}
	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

func fillScorecard(sh *xlsx.Sheet, rep *model.Report) {
	header(sh, "Category", "Raw Score", "Weight", "Flag")
	for _, c := range rep.Flags {
		row := sh.AddRow()
		str(row, string(c.Category))
		num(row, c.RawScore)
		num(row, c.Weight)
		str(row, string(c.Flag))
	}
	row := sh.AddRow()
	str(row, "Composite")
	num(row, rep.Composite)
}

func fillRisk(sh *xlsx.Sheet, rep *model.Report) {
	header(sh, "Domain", "Flag", "Trigger", "Impact", "Mitigation")
	for _, f := range rep.Risk.Flags {
		row := sh.AddRow()
		str(row, string(f.Domain))
		str(row, string(f.Flag))
		str(row, f.Trigger)
		str(row, f.Impact)
		str(row, f.Mitigation)
	}
	row := sh.AddRow()
	str(row, "Overall")
	str(row, string(rep.Risk.Overall))
	str(row, rep.Risk.Summary)
}

func fillBenchmark(sh *xlsx.Sheet, rep *model.Report) {
	header(sh, "Metric", "Score", "Sector Avg", "Percentile", "Deviation")
	for _, b := range rep.Benchmark {
		row := sh.AddRow()
		str(row, b.Category)
		num(row, b.Score)
		num(row, b.SectorAvg)
		num(row, b.Percentile)
		num(row, b.Deviation)
	}
}

func fillGaps(sh *xlsx.Sheet, rep *model.Report) {
	header(sh, "Category", "Actual", "Ideal", "Gap", "Priority", "Trend", "Direction", "Roadmap Rank")
	rank := make(map[model.Category]int, len(rep.Gaps.Roadmap))
	for _, r := range rep.Gaps.Roadmap {
		rank[r.Category] = r.Rank
	}
	for _, g := range rep.Gaps.Gaps {
		row := sh.AddRow()
		str(row, string(g.Category))
		num(row, g.Actual)
		num(row, g.Ideal)
		num(row, g.GapValue)
		str(row, string(g.Priority))
		num(row, g.Trend)
		str(row, string(g.Direction))
		if r, ok := rank[g.Category]; ok {
			row.AddCell().SetInt(r)
		} else {
			str(row, "")
		}
	}
}

func fillFunders(sh *xlsx.Sheet, rep *model.Report) {
	header(sh, "Investor", "Stage", "Match Score", "Thesis Tags")
	for _, m := range rep.FunderMatches {
		row := sh.AddRow()
		str(row, m.InvestorName)
		str(row, m.Stage)
		num(row, m.MatchScore)
		str(row, strings.Join(m.ThesisTags, ", "))
	}
}

func header(sh *xlsx.Sheet, cols ...string) {
	row := sh.AddRow()
	for _, c := range cols {
		str(row, c)
	}
}

func str(row *xlsx.Row, v string) { row.AddCell().SetString(v) }

func num(row *xlsx.Row, v float64) { row.AddCell().SetFloat(v) }
