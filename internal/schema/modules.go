package schema

import (
	"encoding/json"
	"fmt"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Cardinality of the fixed-size module collections.
const (
	ScorecardCategories = 12
	RiskDomains         = 14
	MacroFactors        = 6
	GrowthVotes         = 6
	GrowthScenarios     = 3
	StrategicPathways   = 3
)

// Validate checks a raw module output against the schema for module and
// returns its typed form. It is a pure function.
func Validate(module model.Module, raw json.RawMessage) (model.ModuleOutput, error) {
	var (
		out model.ModuleOutput
		err error
	)
	switch module {
	case model.ModuleTCA:
		out, err = ValidateScorecard(raw)
	case model.ModuleRisk:
		out, err = ValidateRisk(raw)
	case model.ModuleMacro:
		out, err = ValidateMacro(raw)
	case model.ModuleBenchmark:
		out, err = ValidateBenchmark(raw)
	case model.ModuleGrowth:
		out, err = ValidateGrowth(raw)
	case model.ModuleGap:
		out, err = ValidateGap(raw)
	case model.ModuleFunder:
		out, err = ValidateFunder(raw)
	case model.ModuleTeam:
		out, err = ValidateTeam(raw)
	case model.ModuleStrategic:
		out, err = ValidateStrategic(raw)
	default:
		return nil, &model.ValidationError{Module: module, Field: "module", Reason: fmt.Sprintf("unknown module %q", module)}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateScorecard validates the tca module: exactly 12 distinct categories.
func ValidateScorecard(raw json.RawMessage) (model.ScorecardInput, error) {
	var w struct {
		Categories *[]struct {
			Category *string  `json:"category"`
			RawScore *float64 `json:"rawScore"`
			Weight   *float64 `json:"weight"`
		} `json:"categories"`
	}
	if err := decodeStrict(model.ModuleTCA, raw, &w); err != nil {
		return model.ScorecardInput{}, err
	}

	c := &check{module: model.ModuleTCA}
	var out model.ScorecardInput
	c.count("categories", w.Categories != nil, lenOf(w.Categories), ScorecardCategories)
	if c.err != nil {
		return model.ScorecardInput{}, c.err
	}

	seen := make(map[model.Category]bool, ScorecardCategories)
	for i, e := range *w.Categories {
		cat := model.Category(c.text(elem("categories", i, "category"), e.Category, true))
		if c.err == nil && cat.Index() < 0 {
			c.invalid(elem("categories", i, "category"), fmt.Sprintf("unknown category %q", cat))
		}
		if c.err == nil && seen[cat] {
			c.mismatch("categories", "12 distinct categories", fmt.Sprintf("duplicate %q", cat))
		}
		seen[cat] = true
		score := c.number(elem("categories", i, "rawScore"), e.RawScore, 0, 10)
		weight := c.number(elem("categories", i, "weight"), e.Weight, 0, 100)
		out.Categories = append(out.Categories, model.TCACategoryScore{Category: cat, RawScore: score, Weight: weight})
	}
	if c.err != nil {
		return model.ScorecardInput{}, c.err
	}
	return out, nil
}

// ValidateRisk validates the risk module: exactly 14 distinct domains.
func ValidateRisk(raw json.RawMessage) (model.RiskInput, error) {
	var w struct {
		Flags *[]struct {
			Domain     *string `json:"domain"`
			Flag       *string `json:"flag"`
			Trigger    *string `json:"trigger"`
			Impact     *string `json:"impact"`
			Mitigation *string `json:"mitigation"`
		} `json:"flags"`
	}
	if err := decodeStrict(model.ModuleRisk, raw, &w); err != nil {
		return model.RiskInput{}, err
	}

	c := &check{module: model.ModuleRisk}
	c.count("flags", w.Flags != nil, lenOf(w.Flags), RiskDomains)
	if c.err != nil {
		return model.RiskInput{}, c.err
	}

	var out model.RiskInput
	seen := make(map[model.RiskDomain]bool, RiskDomains)
	for i, e := range *w.Flags {
		domain := model.RiskDomain(c.text(elem("flags", i, "domain"), e.Domain, true))
		if c.err == nil && domain.Index() < 0 {
			c.invalid(elem("flags", i, "domain"), fmt.Sprintf("unknown risk domain %q", domain))
		}
		if c.err == nil && seen[domain] {
			c.mismatch("flags", "14 distinct domains", fmt.Sprintf("duplicate %q", domain))
		}
		seen[domain] = true
		flag := model.Flag(c.text(elem("flags", i, "flag"), e.Flag, true))
		if c.err == nil && flag.Severity() < 0 {
			c.invalid(elem("flags", i, "flag"), fmt.Sprintf("flag must be green, yellow or red, got %q", flag))
		}
		out.Flags = append(out.Flags, model.RiskFlag{
			Domain:     domain,
			Flag:       flag,
			Trigger:    c.text(elem("flags", i, "trigger"), e.Trigger, false),
			Impact:     c.text(elem("flags", i, "impact"), e.Impact, false),
			Mitigation: c.text(elem("flags", i, "mitigation"), e.Mitigation, false),
		})
	}
	if c.err != nil {
		return model.RiskInput{}, c.err
	}
	return out, nil
}

// ValidateMacro validates the macro module: the six PESTEL factors once each.
func ValidateMacro(raw json.RawMessage) (model.MacroInput, error) {
	var w struct {
		Factors *[]struct {
			Factor       *string  `json:"factor"`
			Score        *float64 `json:"score"`
			TrendOverlay *float64 `json:"trendOverlay"`
			Summary      *string  `json:"summary"`
		} `json:"factors"`
	}
	if err := decodeStrict(model.ModuleMacro, raw, &w); err != nil {
		return model.MacroInput{}, err
	}

	c := &check{module: model.ModuleMacro}
	c.count("factors", w.Factors != nil, lenOf(w.Factors), MacroFactors)
	if c.err != nil {
		return model.MacroInput{}, c.err
	}

	var out model.MacroInput
	seen := make(map[model.PESTELFactor]bool, MacroFactors)
	for i, e := range *w.Factors {
		factor := model.PESTELFactor(c.text(elem("factors", i, "factor"), e.Factor, true))
		if c.err == nil && factor.Index() < 0 {
			c.invalid(elem("factors", i, "factor"), fmt.Sprintf("unknown PESTEL factor %q", factor))
		}
		if c.err == nil && seen[factor] {
			c.mismatch("factors", "6 distinct factors", fmt.Sprintf("duplicate %q", factor))
		}
		seen[factor] = true
		out.Factors = append(out.Factors, model.MacroFactor{
			Factor:       factor,
			Score:        c.number(elem("factors", i, "score"), e.Score, 0, 10),
			TrendOverlay: c.number(elem("factors", i, "trendOverlay"), e.TrendOverlay, -5, 5),
			Summary:      c.text(elem("factors", i, "summary"), e.Summary, false),
		})
	}
	if c.err != nil {
		return model.MacroInput{}, c.err
	}
	return out, nil
}

// ValidateBenchmark validates the benchmark module: one or more metrics,
// every value on the 0-10 scale.
func ValidateBenchmark(raw json.RawMessage) (model.BenchmarkInput, error) {
	var w struct {
		Metrics *[]struct {
			Category  *string    `json:"category"`
			Score     *float64   `json:"score"`
			SectorAvg *float64   `json:"sectorAvg"`
			Peers     *[]float64 `json:"peers"`
		} `json:"metrics"`
	}
	if err := decodeStrict(model.ModuleBenchmark, raw, &w); err != nil {
		return model.BenchmarkInput{}, err
	}

	c := &check{module: model.ModuleBenchmark}
	c.atLeast("metrics", w.Metrics != nil, lenOf(w.Metrics), 1)
	if c.err != nil {
		return model.BenchmarkInput{}, c.err
	}

	var out model.BenchmarkInput
	seen := make(map[string]bool)
	for i, e := range *w.Metrics {
		cat := c.text(elem("metrics", i, "category"), e.Category, true)
		if c.err == nil && seen[cat] {
			c.mismatch("metrics", "distinct metric categories", fmt.Sprintf("duplicate %q", cat))
		}
		seen[cat] = true
		m := model.BenchmarkMetric{
			Category:  cat,
			Score:     c.number(elem("metrics", i, "score"), e.Score, 0, 10),
			SectorAvg: c.number(elem("metrics", i, "sectorAvg"), e.SectorAvg, 0, 10),
		}
		if e.Peers == nil {
			c.missing(elem("metrics", i, "peers"))
		} else {
			m.Peers = make([]float64, len(*e.Peers))
			for j, p := range *e.Peers {
				p := p
				m.Peers[j] = c.number(fmt.Sprintf("metrics[%d].peers[%d]", i, j), &p, 0, 10)
			}
		}
		out.Metrics = append(out.Metrics, m)
	}
	if c.err != nil {
		return model.BenchmarkInput{}, c.err
	}
	return out, nil
}

// ValidateGrowth validates the growth module: six uniquely named votes,
// confidence in [0,100] and the best/base/worst scenario bands.
func ValidateGrowth(raw json.RawMessage) (model.GrowthInput, error) {
	var w struct {
		Votes *[]struct {
			Name   *string  `json:"name"`
			Score  *float64 `json:"score"`
			Weight *float64 `json:"weight"`
		} `json:"votes"`
		Confidence *float64 `json:"confidence"`
		Scenarios  *[]struct {
			Name   *string  `json:"name"`
			Growth *float64 `json:"growth"`
		} `json:"scenarios"`
	}
	if err := decodeStrict(model.ModuleGrowth, raw, &w); err != nil {
		return model.GrowthInput{}, err
	}

	c := &check{module: model.ModuleGrowth}
	c.count("votes", w.Votes != nil, lenOf(w.Votes), GrowthVotes)
	c.count("scenarios", w.Scenarios != nil, lenOf(w.Scenarios), GrowthScenarios)
	if c.err != nil {
		return model.GrowthInput{}, c.err
	}

	var out model.GrowthInput
	names := make(map[string]bool, GrowthVotes)
	for i, v := range *w.Votes {
		name := c.text(elem("votes", i, "name"), v.Name, true)
		if c.err == nil && names[name] {
			c.mismatch("votes", "6 distinct model names", fmt.Sprintf("duplicate %q", name))
		}
		names[name] = true
		out.Votes = append(out.Votes, model.ModelVote{
			Name:   name,
			Score:  c.number(elem("votes", i, "score"), v.Score, 0, 10),
			Weight: c.number(elem("votes", i, "weight"), v.Weight, 0, 100),
		})
	}
	out.Confidence = c.number("confidence", w.Confidence, 0, 100)

	bands := map[string]bool{model.ScenarioBest: false, model.ScenarioBase: false, model.ScenarioWorst: false}
	for i, s := range *w.Scenarios {
		name := c.text(elem("scenarios", i, "name"), s.Name, true)
		seen, known := bands[name]
		switch {
		case c.err != nil:
		case !known:
			c.invalid(elem("scenarios", i, "name"), fmt.Sprintf("scenario must be best, base or worst, got %q", name))
		case seen:
			c.mismatch("scenarios", "best, base and worst once each", fmt.Sprintf("duplicate %q", name))
		}
		bands[name] = true
		if s.Growth == nil {
			c.missing(elem("scenarios", i, "growth"))
			continue
		}
		out.Scenarios = append(out.Scenarios, model.Scenario{Name: name, Growth: *s.Growth})
	}
	if c.err != nil {
		return model.GrowthInput{}, c.err
	}
	return out, nil
}

// ValidateGap validates the gap module: an ideal profile of all 12 categories.
func ValidateGap(raw json.RawMessage) (model.GapInput, error) {
	var w struct {
		Profile *[]struct {
			Category *string  `json:"category"`
			Ideal    *float64 `json:"ideal"`
			Trend    *float64 `json:"trend"`
			Action   *string  `json:"action"`
		} `json:"profile"`
	}
	if err := decodeStrict(model.ModuleGap, raw, &w); err != nil {
		return model.GapInput{}, err
	}

	c := &check{module: model.ModuleGap}
	c.count("profile", w.Profile != nil, lenOf(w.Profile), ScorecardCategories)
	if c.err != nil {
		return model.GapInput{}, c.err
	}

	var out model.GapInput
	seen := make(map[model.Category]bool, ScorecardCategories)
	for i, e := range *w.Profile {
		cat := model.Category(c.text(elem("profile", i, "category"), e.Category, true))
		if c.err == nil && cat.Index() < 0 {
			c.invalid(elem("profile", i, "category"), fmt.Sprintf("unknown category %q", cat))
		}
		if c.err == nil && seen[cat] {
			c.mismatch("profile", "12 distinct categories", fmt.Sprintf("duplicate %q", cat))
		}
		seen[cat] = true
		entry := model.IdealScore{
			Category: cat,
			Ideal:    c.number(elem("profile", i, "ideal"), e.Ideal, 0, 100),
			Trend:    c.number(elem("profile", i, "trend"), e.Trend, -100, 100),
		}
		if e.Action != nil {
			entry.Action = *e.Action
		}
		out.Profile = append(out.Profile, entry)
	}
	if c.err != nil {
		return model.GapInput{}, c.err
	}
	return out, nil
}

// ValidateFunder validates the funder module: a startup profile and at
// least one investor.
func ValidateFunder(raw json.RawMessage) (model.FunderInput, error) {
	var w struct {
		Startup *struct {
			Stage      *string   `json:"stage"`
			ThesisTags *[]string `json:"thesisTags"`
		} `json:"startup"`
		Investors *[]struct {
			InvestorName *string   `json:"investorName"`
			ThesisTags   *[]string `json:"thesisTags"`
			Stage        *string   `json:"stage"`
		} `json:"investors"`
	}
	if err := decodeStrict(model.ModuleFunder, raw, &w); err != nil {
		return model.FunderInput{}, err
	}

	c := &check{module: model.ModuleFunder}
	var out model.FunderInput
	if w.Startup == nil {
		c.missing("startup")
	} else {
		out.Startup.Stage = c.text("startup.stage", w.Startup.Stage, true)
		if w.Startup.ThesisTags == nil {
			c.missing("startup.thesisTags")
		} else {
			out.Startup.ThesisTags = append([]string(nil), *w.Startup.ThesisTags...)
		}
	}
	c.atLeast("investors", w.Investors != nil, lenOf(w.Investors), 1)
	if c.err != nil {
		return model.FunderInput{}, c.err
	}

	for i, inv := range *w.Investors {
		entry := model.Investor{
			InvestorName: c.text(elem("investors", i, "investorName"), inv.InvestorName, true),
			Stage:        c.text(elem("investors", i, "stage"), inv.Stage, true),
		}
		if inv.ThesisTags == nil {
			c.missing(elem("investors", i, "thesisTags"))
		} else {
			entry.ThesisTags = append([]string(nil), *inv.ThesisTags...)
		}
		out.Investors = append(out.Investors, entry)
	}
	if c.err != nil {
		return model.FunderInput{}, c.err
	}
	return out, nil
}

// ValidateTeam validates the team module: one or more assessed members.
func ValidateTeam(raw json.RawMessage) (model.TeamInput, error) {
	var w struct {
		Members *[]struct {
			Name            *string   `json:"name"`
			Role            *string   `json:"role"`
			ExperienceYears *float64  `json:"experienceYears"`
			Skills          *[]string `json:"skills"`
			Score           *float64  `json:"score"`
		} `json:"members"`
	}
	if err := decodeStrict(model.ModuleTeam, raw, &w); err != nil {
		return model.TeamInput{}, err
	}

	c := &check{module: model.ModuleTeam}
	c.atLeast("members", w.Members != nil, lenOf(w.Members), 1)
	if c.err != nil {
		return model.TeamInput{}, c.err
	}

	var out model.TeamInput
	for i, m := range *w.Members {
		member := model.TeamMemberAssessment{
			Name:  c.text(elem("members", i, "name"), m.Name, true),
			Role:  c.text(elem("members", i, "role"), m.Role, true),
			Score: c.number(elem("members", i, "score"), m.Score, 0, 10),
		}
		if m.ExperienceYears == nil {
			c.missing(elem("members", i, "experienceYears"))
		} else if *m.ExperienceYears < 0 {
			c.mismatch(elem("members", i, "experienceYears"), "value >= 0", fmtNum(*m.ExperienceYears))
		} else {
			member.ExperienceYears = *m.ExperienceYears
		}
		if m.Skills == nil {
			c.missing(elem("members", i, "skills"))
		} else {
			member.Skills = append([]string(nil), *m.Skills...)
		}
		out.Members = append(out.Members, member)
	}
	if c.err != nil {
		return model.TeamInput{}, c.err
	}
	return out, nil
}

// ValidateStrategic validates the strategic module: Build, Buy and Partner
// once each.
func ValidateStrategic(raw json.RawMessage) (model.StrategicInput, error) {
	var w struct {
		Pathways *[]struct {
			Pathway   *string  `json:"pathway"`
			FitScore  *float64 `json:"fitScore"`
			Rationale *string  `json:"rationale"`
		} `json:"pathways"`
	}
	if err := decodeStrict(model.ModuleStrategic, raw, &w); err != nil {
		return model.StrategicInput{}, err
	}

	c := &check{module: model.ModuleStrategic}
	c.count("pathways", w.Pathways != nil, lenOf(w.Pathways), StrategicPathways)
	if c.err != nil {
		return model.StrategicInput{}, c.err
	}

	var out model.StrategicInput
	seen := make(map[model.Pathway]bool, StrategicPathways)
	for i, p := range *w.Pathways {
		pathway := model.Pathway(c.text(elem("pathways", i, "pathway"), p.Pathway, true))
		if c.err == nil && pathway.Index() < 0 {
			c.invalid(elem("pathways", i, "pathway"), fmt.Sprintf("pathway must be Build, Buy or Partner, got %q", pathway))
		}
		if c.err == nil && seen[pathway] {
			c.mismatch("pathways", "Build, Buy and Partner once each", fmt.Sprintf("duplicate %q", pathway))
		}
		seen[pathway] = true
		entry := model.StrategicFitScore{
			Pathway:  pathway,
			FitScore: c.number(elem("pathways", i, "fitScore"), p.FitScore, 0, 10),
		}
		if p.Rationale != nil {
			entry.Rationale = *p.Rationale
		}
		out.Pathways = append(out.Pathways, entry)
	}
	if c.err != nil {
		return model.StrategicInput{}, c.err
	}
	return out, nil
}

func lenOf[T any](s *[]T) int {
	if s == nil {
		return 0
	}
	return len(*s)
}
