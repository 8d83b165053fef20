package report

import (
	"fmt"
	"math"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// DisplayPercent maps a trend overlay in [-5,5] onto a 0-100 display scale.
func DisplayPercent(overlay float64) float64 {
	return math.Max(0, math.Min(100, 10*overlay+50))
}

// Macro derives the PESTEL alignment (mean factor score) and each factor's
// display percentage. Factors are returned in PESTEL order.
func Macro(in model.MacroInput) (model.MacroSummary, error) {
	if len(in.Factors) != len(model.PESTELFactors) {
		return model.MacroSummary{}, &model.SchemaMismatchError{
			Module:   model.ModuleMacro,
			Field:    "factors",
			Expected: fmt.Sprintf("%d entries", len(model.PESTELFactors)),
			Actual:   fmt.Sprintf("%d entries", len(in.Factors)),
		}
	}

	out := model.MacroSummary{Factors: make([]model.MacroFactorResult, len(model.PESTELFactors))}
	filled := make([]bool, len(model.PESTELFactors))
	var total float64
	for _, f := range in.Factors {
		idx := f.Factor.Index()
		if idx < 0 || filled[idx] {
			return model.MacroSummary{}, &model.SchemaMismatchError{
				Module:   model.ModuleMacro,
				Field:    "factors",
				Expected: "each PESTEL factor exactly once",
				Actual:   fmt.Sprintf("unexpected %q", f.Factor),
			}
		}
		filled[idx] = true
		total += f.Score
		out.Factors[idx] = model.MacroFactorResult{MacroFactor: f, DisplayPercent: DisplayPercent(f.TrendOverlay)}
	}
	out.Alignment = round2(total / float64(len(in.Factors)))
	return out, nil
}

// Team copies the member assessments and derives the average score and
// total years of experience.
func Team(in model.TeamInput) (model.TeamAssessment, error) {
	if len(in.Members) == 0 {
		return model.TeamAssessment{}, &model.SchemaMismatchError{
			Module:   model.ModuleTeam,
			Field:    "members",
			Expected: "at least 1 entries",
			Actual:   "0 entries",
		}
	}

	out := model.TeamAssessment{Members: make([]model.TeamMemberAssessment, len(in.Members))}
	var total float64
	for i, m := range in.Members {
		m.Skills = append([]string(nil), m.Skills...)
		out.Members[i] = m
		total += m.Score
		out.TotalExperienceYears += m.ExperienceYears
	}
	out.AverageScore = round2(total / float64(len(in.Members)))
	return out, nil
}

// Strategic returns the Build/Buy/Partner matrix in that order and
// recommends the pathway with the highest fit score. Ties go to the earlier
// pathway.
func Strategic(in model.StrategicInput) (model.StrategicFit, error) {
	if len(in.Pathways) != len(model.Pathways) {
		return model.StrategicFit{}, &model.SchemaMismatchError{
			Module:   model.ModuleStrategic,
			Field:    "pathways",
			Expected: fmt.Sprintf("%d entries", len(model.Pathways)),
			Actual:   fmt.Sprintf("%d entries", len(in.Pathways)),
		}
	}

	out := model.StrategicFit{Pathways: make([]model.StrategicFitScore, len(model.Pathways))}
	filled := make([]bool, len(model.Pathways))
	for _, p := range in.Pathways {
		idx := p.Pathway.Index()
		if idx < 0 || filled[idx] {
			return model.StrategicFit{}, &model.SchemaMismatchError{
				Module:   model.ModuleStrategic,
				Field:    "pathways",
				Expected: "Build, Buy and Partner once each",
				Actual:   fmt.Sprintf("unexpected %q", p.Pathway),
			}
		}
		filled[idx] = true
		out.Pathways[idx] = p
	}

	best := out.Pathways[0]
	for _, p := range out.Pathways[1:] {
		if p.FitScore > best.FitScore {
			best = p
		}
	}
	out.Recommended = best.Pathway
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
