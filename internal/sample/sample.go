// Package sample builds a complete, valid analysis request. The CLI uses it
// to print a starter request and tests use it as a baseline to mutate.
package sample

import (
	"encoding/json"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Scorecard returns a 12-category scorecard whose weights sum to 100.
func Scorecard() model.ScorecardInput {
	raw := []float64{8.5, 7.0, 5.0, 7.5, 6.8, 6.0, 7.2, 8.1, 8.4, 6.9, 7.7, 6.5}
	weights := []float64{10, 10, 10, 8, 8, 8, 8, 8, 8, 8, 7, 7}
	out := model.ScorecardInput{}
	for i, c := range model.Categories {
		out.Categories = append(out.Categories, model.TCACategoryScore{
			Category: c,
			RawScore: raw[i],
			Weight:   weights[i],
		})
	}
	return out
}

// Risk returns all 14 risk domains, green except regulatory (yellow).
func Risk() model.RiskInput {
	out := model.RiskInput{}
	for _, d := range model.RiskDomains {
		f := model.RiskFlag{
			Domain:     d,
			Flag:       model.FlagGreen,
			Trigger:    "no material issues identified for " + string(d),
			Impact:     "low",
			Mitigation: "monitor quarterly",
		}
		if d == model.RiskRegulatoryCompliance {
			f.Flag = model.FlagYellow
			f.Trigger = "510(k) submission pending"
			f.Impact = "launch delay of up to two quarters"
			f.Mitigation = "engage regulatory consultant"
		}
		out.Flags = append(out.Flags, f)
	}
	return out
}

// Macro returns the six PESTEL factors.
func Macro() model.MacroInput {
	scores := []float64{6.5, 7.0, 7.5, 8.5, 6.0, 5.5}
	overlays := []float64{-1, 0.5, 1.5, 3, 0, -2}
	out := model.MacroInput{}
	for i, f := range model.PESTELFactors {
		out.Factors = append(out.Factors, model.MacroFactor{
			Factor:       f,
			Score:        scores[i],
			TrendOverlay: overlays[i],
			Summary:      string(f) + " environment is broadly supportive",
		})
	}
	return out
}

// Benchmark returns three metrics with peer distributions.
func Benchmark() model.BenchmarkInput {
	return model.BenchmarkInput{Metrics: []model.BenchmarkMetric{
		{Category: "revenue_growth", Score: 8.5, SectorAvg: 6.5, Peers: []float64{4.0, 5.5, 6.0, 6.5, 7.0, 8.0, 9.0}},
		{Category: "burn_multiple", Score: 6.0, SectorAvg: 6.2, Peers: []float64{5.0, 6.0, 6.5, 7.5}},
		{Category: "gross_margin", Score: 7.4, SectorAvg: 6.9, Peers: []float64{}},
	}}
}

// Growth returns the six-model ensemble used throughout the docs.
func Growth() model.GrowthInput {
	names := []string{"lstm", "gradient_boost", "random_forest", "bayesian", "monte_carlo", "linear_trend"}
	scores := []float64{8.1, 7.5, 8.0, 7.8, 8.2, 7.9}
	weights := []float64{20, 15, 15, 20, 15, 15}
	out := model.GrowthInput{Confidence: 82}
	for i := range names {
		out.Votes = append(out.Votes, model.ModelVote{Name: names[i], Score: scores[i], Weight: weights[i]})
	}
	out.Scenarios = []model.Scenario{
		{Name: model.ScenarioBest, Growth: 145},
		{Name: model.ScenarioBase, Growth: 85},
		{Name: model.ScenarioWorst, Growth: 20},
	}
	return out
}

// Gap returns an investor-ready ideal profile for every category.
func Gap() model.GapInput {
	out := model.GapInput{}
	for _, c := range model.Categories {
		out.Profile = append(out.Profile, model.IdealScore{Category: c, Ideal: 80, Trend: 0})
	}
	out.Profile[2].Ideal = 85
	out.Profile[2].Trend = 4
	out.Profile[2].Action = "hire a VP of Engineering with regulated-device experience"
	out.Profile[5].Trend = -3
	return out
}

// Funder returns a startup profile and four candidate investors.
func Funder() model.FunderInput {
	return model.FunderInput{
		Startup: model.StartupProfile{Stage: "Seed", ThesisTags: []string{"diagnostics", "ai", "b2b"}},
		Investors: []model.Investor{
			{InvestorName: "Helix Ventures", ThesisTags: []string{"medtech", "diagnostics", "ai"}, Stage: "Seed"},
			{InvestorName: "Northwind Capital", ThesisTags: []string{"fintech", "b2b"}, Stage: "Series A"},
			{InvestorName: "Apex Health Fund", ThesisTags: []string{"medtech", "diagnostics", "ai"}, Stage: "Seed"},
			{InvestorName: "Blue Harbor", ThesisTags: []string{"consumer"}, Stage: "Growth"},
		},
	}
}

// Team returns two assessed founders.
func Team() model.TeamInput {
	return model.TeamInput{Members: []model.TeamMemberAssessment{
		{Name: "Dana Ortiz", Role: "CEO", ExperienceYears: 12, Skills: []string{"operations", "fundraising"}, Score: 8.2},
		{Name: "Sam Lee", Role: "CTO", ExperienceYears: 9, Skills: []string{"ml", "embedded"}, Score: 7.6},
	}}
}

// Strategic returns the Build/Buy/Partner matrix.
func Strategic() model.StrategicInput {
	return model.StrategicInput{Pathways: []model.StrategicFitScore{
		{Pathway: model.PathwayBuild, FitScore: 6.0, Rationale: "core IP but long runway"},
		{Pathway: model.PathwayBuy, FitScore: 5.5},
		{Pathway: model.PathwayPartner, FitScore: 7.8, Rationale: "distribution partner fits channel"},
	}}
}

// Modules returns the nine module payloads as raw JSON.
func Modules() map[model.Module]json.RawMessage {
	return map[model.Module]json.RawMessage{
		model.ModuleTCA:       mustJSON(Scorecard()),
		model.ModuleRisk:      mustJSON(Risk()),
		model.ModuleMacro:     mustJSON(Macro()),
		model.ModuleBenchmark: mustJSON(Benchmark()),
		model.ModuleGrowth:    mustJSON(Growth()),
		model.ModuleGap:       mustJSON(Gap()),
		model.ModuleFunder:    mustJSON(Funder()),
		model.ModuleTeam:      mustJSON(Team()),
		model.ModuleStrategic: mustJSON(Strategic()),
	}
}

// Request returns a complete request for the given framework and sector.
func Request(framework model.FrameworkID, sector string) model.AnalysisRequest {
	return model.AnalysisRequest{
		Framework: framework,
		Sector:    sector,
		CompanyData: map[string]any{
			"name":        "Acme Diagnostics",
			"stage":       "Seed",
			"description": "AI-assisted point-of-care diagnostics",
		},
		Modules: Modules(),
	}
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
