package model

// Typed module outputs produced by the schema validator. Every value here has
// passed strict validation: required fields present, cardinality exact and
// numeric ranges respected.

// TCACategoryScore is one row of the TCA scorecard.
type TCACategoryScore struct {
	Category Category `json:"category"`
	RawScore float64  `json:"rawScore"`
	Weight   float64  `json:"weight"`
}

// ScorecardInput is the validated tca module output.
type ScorecardInput struct {
	Categories []TCACategoryScore `json:"categories"`
}

// RiskFlag is the assessment of one risk domain.
type RiskFlag struct {
	Domain     RiskDomain `json:"domain"`
	Flag       Flag       `json:"flag"`
	Trigger    string     `json:"trigger"`
	Impact     string     `json:"impact"`
	Mitigation string     `json:"mitigation"`
}

// RiskInput is the validated risk module output.
type RiskInput struct {
	Flags []RiskFlag `json:"flags"`
}

// MacroFactor is one PESTEL factor assessment.
type MacroFactor struct {
	Factor       PESTELFactor `json:"factor"`
	Score        float64      `json:"score"`
	TrendOverlay float64      `json:"trendOverlay"`
	Summary      string       `json:"summary"`
}

// MacroInput is the validated macro module output.
type MacroInput struct {
	Factors []MacroFactor `json:"factors"`
}

// BenchmarkMetric is a startup score with its sector reference values.
type BenchmarkMetric struct {
	Category  string    `json:"category"`
	Score     float64   `json:"score"`
	SectorAvg float64   `json:"sectorAvg"`
	Peers     []float64 `json:"peers"`
}

// BenchmarkInput is the validated benchmark module output.
type BenchmarkInput struct {
	Metrics []BenchmarkMetric `json:"metrics"`
}

// ModelVote is one sub-model's vote in the growth ensemble.
type ModelVote struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// Scenario is a growth band supplied alongside the ensemble.
type Scenario struct {
	Name   string  `json:"name"`
	Growth float64 `json:"growth"`
}

// GrowthInput is the validated growth module output.
type GrowthInput struct {
	Votes      []ModelVote `json:"votes"`
	Confidence float64     `json:"confidence"`
	Scenarios  []Scenario  `json:"scenarios"`
}

// IdealScore is the investor-ready reference for one category.
type IdealScore struct {
	Category Category `json:"category"`
	Ideal    float64  `json:"ideal"`
	Trend    float64  `json:"trend"`
	Action   string   `json:"action,omitempty"`
}

// GapInput is the validated gap module output.
type GapInput struct {
	Profile []IdealScore `json:"profile"`
}

// StartupProfile describes the startup for funder matching.
type StartupProfile struct {
	Stage      string   `json:"stage"`
	ThesisTags []string `json:"thesisTags"`
}

// Investor is a candidate funder with its stated thesis.
type Investor struct {
	InvestorName string   `json:"investorName"`
	ThesisTags   []string `json:"thesisTags"`
	Stage        string   `json:"stage"`
}

// FunderInput is the validated funder module output.
type FunderInput struct {
	Startup   StartupProfile `json:"startup"`
	Investors []Investor     `json:"investors"`
}

// TeamMemberAssessment rates one member of the founding team.
type TeamMemberAssessment struct {
	Name            string   `json:"name"`
	Role            string   `json:"role"`
	ExperienceYears float64  `json:"experienceYears"`
	Skills          []string `json:"skills"`
	Score           float64  `json:"score"`
}

// TeamInput is the validated team module output.
type TeamInput struct {
	Members []TeamMemberAssessment `json:"members"`
}

// StrategicFitScore rates one corporate pathway.
type StrategicFitScore struct {
	Pathway   Pathway `json:"pathway"`
	FitScore  float64 `json:"fitScore"`
	Rationale string  `json:"rationale,omitempty"`
}

// StrategicInput is the validated strategic module output.
type StrategicInput struct {
	Pathways []StrategicFitScore `json:"pathways"`
}

// ModuleOutput is a validated module output tagged with its module.
type ModuleOutput interface {
	ModuleName() Module
}

func (ScorecardInput) ModuleName() Module { return ModuleTCA }
func (RiskInput) ModuleName() Module      { return ModuleRisk }
func (MacroInput) ModuleName() Module     { return ModuleMacro }
func (BenchmarkInput) ModuleName() Module { return ModuleBenchmark }
func (GrowthInput) ModuleName() Module    { return ModuleGrowth }
func (GapInput) ModuleName() Module       { return ModuleGap }
func (FunderInput) ModuleName() Module    { return ModuleFunder }
func (TeamInput) ModuleName() Module      { return ModuleTeam }
func (StrategicInput) ModuleName() Module { return ModuleStrategic }
