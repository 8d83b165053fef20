package model

// Module names the nine analysis modules merged into a report.
type Module string

const (
	ModuleTCA       Module = "tca"
	ModuleRisk      Module = "risk"
	ModuleMacro     Module = "macro"
	ModuleBenchmark Module = "benchmark"
	ModuleGrowth    Module = "growth"
	ModuleGap       Module = "gap"
	ModuleFunder    Module = "funder"
	ModuleTeam      Module = "team"
	ModuleStrategic Module = "strategic"
)

// Modules lists every module in report order.
var Modules = []Module{
	ModuleTCA, ModuleRisk, ModuleMacro, ModuleBenchmark, ModuleGrowth,
	ModuleGap, ModuleFunder, ModuleTeam, ModuleStrategic,
}

// Valid reports whether m is one of the nine known modules.
func (m Module) Valid() bool {
	for _, known := range Modules {
		if m == known {
			return true
		}
	}
	return false
}

// FrameworkID selects the scoring policy for a request.
type FrameworkID string

const (
	FrameworkGeneral FrameworkID = "general"
	FrameworkMedtech FrameworkID = "medtech"
)

// Valid reports whether f is a supported framework.
func (f FrameworkID) Valid() bool {
	return f == FrameworkGeneral || f == FrameworkMedtech
}

// Category is one of the 12 TCA scorecard categories.
type Category string

const (
	CategoryLeadership       Category = "leadership"
	CategoryProductMarketFit Category = "product_market_fit"
	CategoryTeamStrength     Category = "team_strength"
	CategoryTechnologyIP     Category = "technology_ip"
	CategoryBusinessModel    Category = "business_model"
	CategoryFinancials       Category = "financials"
	CategoryGoToMarket       Category = "go_to_market"
	CategoryCompetitionMoat  Category = "competition_moat"
	CategoryMarketPotential  Category = "market_potential"
	CategoryTraction         Category = "traction"
	CategoryScalability      Category = "scalability"
	CategoryExitPotential    Category = "exit_potential"
)

// Categories lists the TCA categories in declaration order.
var Categories = []Category{
	CategoryLeadership, CategoryProductMarketFit, CategoryTeamStrength,
	CategoryTechnologyIP, CategoryBusinessModel, CategoryFinancials,
	CategoryGoToMarket, CategoryCompetitionMoat, CategoryMarketPotential,
	CategoryTraction, CategoryScalability, CategoryExitPotential,
}

// Index returns the declaration position of c, or -1 if unknown.
func (c Category) Index() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return -1
}

// RiskDomain is one of the 14 fixed risk domains.
type RiskDomain string

const (
	RiskRegulatoryCompliance RiskDomain = "regulatory_compliance"
	RiskClinicalSafety       RiskDomain = "clinical_safety"
	RiskProductLiability     RiskDomain = "product_liability"
	RiskGovernmentPolicy     RiskDomain = "government_policy"
	RiskMarket               RiskDomain = "market"
	RiskTechnology           RiskDomain = "technology"
	RiskFinancial            RiskDomain = "financial"
	RiskOperational          RiskDomain = "operational"
	RiskTeam                 RiskDomain = "team"
	RiskIntellectualProperty RiskDomain = "intellectual_property"
	RiskCompetitive          RiskDomain = "competitive"
	RiskExit                 RiskDomain = "exit"
	RiskEnvironmental        RiskDomain = "environmental"
	RiskDataPrivacy          RiskDomain = "data_privacy"
)

// RiskDomains lists the risk domains in declaration order.
var RiskDomains = []RiskDomain{
	RiskRegulatoryCompliance, RiskClinicalSafety, RiskProductLiability,
	RiskGovernmentPolicy, RiskMarket, RiskTechnology, RiskFinancial,
	RiskOperational, RiskTeam, RiskIntellectualProperty, RiskCompetitive,
	RiskExit, RiskEnvironmental, RiskDataPrivacy,
}

// Index returns the declaration position of d, or -1 if unknown.
func (d RiskDomain) Index() int {
	for i, known := range RiskDomains {
		if d == known {
			return i
		}
	}
	return -1
}

// PESTELFactor is one of the six macro-trend factors.
type PESTELFactor string

const (
	FactorPolitical     PESTELFactor = "political"
	FactorEconomic      PESTELFactor = "economic"
	FactorSocial        PESTELFactor = "social"
	FactorTechnological PESTELFactor = "technological"
	FactorEnvironmental PESTELFactor = "environmental"
	FactorLegal         PESTELFactor = "legal"
)

// PESTELFactors lists the macro-trend factors in declaration order.
var PESTELFactors = []PESTELFactor{
	FactorPolitical, FactorEconomic, FactorSocial,
	FactorTechnological, FactorEnvironmental, FactorLegal,
}

// Index returns the declaration position of f, or -1 if unknown.
func (f PESTELFactor) Index() int {
	for i, known := range PESTELFactors {
		if f == known {
			return i
		}
	}
	return -1
}

// Flag is a traffic-light severity.
type Flag string

const (
	FlagGreen  Flag = "green"
	FlagYellow Flag = "yellow"
	FlagRed    Flag = "red"
)

// Severity orders flags: green < yellow < red. Unknown flags return -1.
func (f Flag) Severity() int {
	switch f {
	case FlagGreen:
		return 0
	case FlagYellow:
		return 1
	case FlagRed:
		return 2
	default:
		return -1
	}
}

// Tier is a growth classification.
type Tier string

const (
	TierHigh     Tier = "High"
	TierModerate Tier = "Moderate"
	TierLow      Tier = "Low"
)

// Priority buckets a gap by magnitude.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Direction is the recent movement of a category score.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Pathway is a corporate strategy option in the strategic-fit matrix.
type Pathway string

const (
	PathwayBuild   Pathway = "Build"
	PathwayBuy     Pathway = "Buy"
	PathwayPartner Pathway = "Partner"
)

// Pathways lists strategic pathways in tie-break order.
var Pathways = []Pathway{PathwayBuild, PathwayBuy, PathwayPartner}

// Index returns the declaration position of p, or -1 if unknown.
func (p Pathway) Index() int {
	for i, known := range Pathways {
		if p == known {
			return i
		}
	}
	return -1
}

// Scenario names for growth bands.
const (
	ScenarioBest  = "best"
	ScenarioBase  = "base"
	ScenarioWorst = "worst"
)
