// Package report joins the scored module outputs into one immutable
// due-diligence report.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/benchmark"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/funder"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/gap"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/growth"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/risk"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/scorer"
)

// Version is stamped on every report.
const Version = "1.0.0"

// Assembler builds reports. The zero value stamps the wall clock in UTC and
// random UUIDs.
type Assembler struct {
	Now   func() time.Time
	NewID func() string
}

// NewAssembler returns an Assembler using the wall clock and random UUIDs.
func NewAssembler() *Assembler {
	return &Assembler{}
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *Assembler) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.NewString()
}

// Inputs carries the validated module outputs and any failures recorded
// upstream (fetch or validation).
type Inputs struct {
	Outputs  map[model.Module]model.ModuleOutput
	Failures []model.ModuleFailure
}

// Assemble runs every component over its module output and joins the
// results. If any module is missing, failed upstream or fails in its
// component, Assemble returns a single *model.AssemblyError naming every
// failing module and no report.
func (a *Assembler) Assemble(p framework.Policy, in Inputs) (*model.Report, error) {
	failed := make(map[model.Module]bool)
	failures := append([]model.ModuleFailure(nil), in.Failures...)
	for _, f := range failures {
		failed[f.Module] = true
	}
	fail := func(m model.Module, err error) {
		if !failed[m] {
			failed[m] = true
			failures = append(failures, model.ModuleFailure{Module: m, Err: err})
		}
	}

	for _, m := range model.Modules {
		if failed[m] {
			continue
		}
		out, ok := in.Outputs[m]
		if !ok || out == nil {
			fail(m, eris.Wrapf(model.ErrMissingModule, "report: %s", m))
			continue
		}
		if out.ModuleName() != m {
			fail(m, &model.ValidationError{Module: m, Field: "$", Reason: "output belongs to module " + string(out.ModuleName())})
		}
	}

	rep := &model.Report{FrameworkID: p.Framework, SectorID: p.Sector, Version: Version}

	if sc, ok := output[model.ScorecardInput](in, model.ModuleTCA, failed); ok {
		scorecard, err := scorer.Aggregate(sc, p)
		if err != nil {
			fail(model.ModuleTCA, err)
		} else {
			rep.Composite = scorecard.Composite
			rep.Flags = scorecard.Categories
		}
		if gi, ok := output[model.GapInput](in, model.ModuleGap, failed); ok && err == nil {
			gaps, err := gap.Analyze(sc, gi, p)
			if err != nil {
				fail(model.ModuleGap, err)
			}
			rep.Gaps = gaps
		}
	}
	if ri, ok := output[model.RiskInput](in, model.ModuleRisk, failed); ok {
		summary, err := risk.Reduce(ri)
		if err != nil {
			fail(model.ModuleRisk, err)
		}
		rep.Risk = summary
	}
	if mi, ok := output[model.MacroInput](in, model.ModuleMacro, failed); ok {
		macro, err := Macro(mi)
		if err != nil {
			fail(model.ModuleMacro, err)
		}
		rep.Macro = macro
	}
	if bi, ok := output[model.BenchmarkInput](in, model.ModuleBenchmark, failed); ok {
		entries, err := benchmark.Rank(bi)
		if err != nil {
			fail(model.ModuleBenchmark, err)
		}
		rep.Benchmark = entries
	}
	if gi, ok := output[model.GrowthInput](in, model.ModuleGrowth, failed); ok {
		cls, err := growth.Combine(gi, p)
		if err != nil {
			fail(model.ModuleGrowth, err)
		}
		rep.Growth = cls
	}
	if fi, ok := output[model.FunderInput](in, model.ModuleFunder, failed); ok {
		matches, err := funder.Match(fi, p.Sector, p)
		if err != nil {
			fail(model.ModuleFunder, err)
		}
		rep.FunderMatches = matches
	}
	if ti, ok := output[model.TeamInput](in, model.ModuleTeam, failed); ok {
		team, err := Team(ti)
		if err != nil {
			fail(model.ModuleTeam, err)
		}
		rep.Team = team
	}
	if si, ok := output[model.StrategicInput](in, model.ModuleStrategic, failed); ok {
		fit, err := Strategic(si)
		if err != nil {
			fail(model.ModuleStrategic, err)
		}
		rep.StrategicFit = fit
	}

	if err := model.NewAssemblyError(failures); err != nil {
		return nil, err
	}

	hash, err := ContentHash(rep)
	if err != nil {
		return nil, err
	}
	rep.ContentHash = hash
	rep.ID = a.newID()
	rep.GeneratedAt = a.now()
	return rep, nil
}

// output extracts the typed output for m unless the module already failed.
func output[T model.ModuleOutput](in Inputs, m model.Module, failed map[model.Module]bool) (T, bool) {
	var zero T
	if failed[m] {
		return zero, false
	}
	v, ok := in.Outputs[m].(T)
	return v, ok
}

// ContentHash returns the hex sha256 of the report's JSON body with the
// per-run stamps (id, generatedAt, contentHash) cleared, so identical
// inputs under the same policy hash identically.
func ContentHash(r *model.Report) (string, error) {
	body := *r
	body.ID = ""
	body.GeneratedAt = time.Time{}
	body.ContentHash = ""
	data, err := json.Marshal(body)
	if err != nil {
		return "", eris.Wrap(err, "report: marshal for hash")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
