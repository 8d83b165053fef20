package model

import (
	"encoding/json"
	"time"
)

// AnalysisRequest is the wire request to the comprehensive-analysis boundary.
type AnalysisRequest struct {
	Framework   FrameworkID                `json:"framework"`
	Sector      string                     `json:"sector"`
	CompanyData map[string]any             `json:"company_data,omitempty"`
	Modules     map[Module]json.RawMessage `json:"modules,omitempty"`
}

// UnmarshalJSON decodes a request strictly. Module payloads may be given
// under "modules" or as top-level keys named after the module; any other
// unknown key is rejected.
func (r *AnalysisRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	type plain AnalysisRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	for key, raw := range fields {
		switch key {
		case "framework", "sector", "company_data", "modules":
			continue
		}
		m := Module(key)
		if !m.Valid() {
			return &ValidationError{Field: key, Reason: "unknown field"}
		}
		if _, dup := p.Modules[m]; dup {
			return &ValidationError{Field: key, Reason: "module given both at top level and under modules"}
		}
		if p.Modules == nil {
			p.Modules = make(map[Module]json.RawMessage)
		}
		p.Modules[m] = raw
	}

	*r = AnalysisRequest(p)
	return nil
}

// CompanyName returns company_data.name when present.
func (r AnalysisRequest) CompanyName() string {
	if r.CompanyData == nil {
		return ""
	}
	if name, ok := r.CompanyData["name"].(string); ok {
		return name
	}
	return ""
}

// ErrorResponse is the error body returned to boundary callers.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Modules []string `json:"modules,omitempty"`
}

// CategoryFlag is a scored TCA category with its derived flag.
type CategoryFlag struct {
	Category Category `json:"category"`
	RawScore float64  `json:"rawScore"`
	Weight   float64  `json:"weight"`
	Flag     Flag     `json:"flag"`
}

// Scorecard is the aggregated TCA scorecard.
type Scorecard struct {
	Composite  float64        `json:"composite"`
	Categories []CategoryFlag `json:"categories"`
}

// RiskSummary is the rolled-up risk posture.
type RiskSummary struct {
	Overall Flag         `json:"overall"`
	Summary string       `json:"summary"`
	Counts  map[Flag]int `json:"counts"`
	Flags   []RiskFlag   `json:"flags"`
}

// MacroFactorResult is a PESTEL factor with its display mapping.
type MacroFactorResult struct {
	MacroFactor
	DisplayPercent float64 `json:"displayPercent"`
}

// MacroSummary is the macro-trend alignment result.
type MacroSummary struct {
	Alignment float64             `json:"alignment"`
	Factors   []MacroFactorResult `json:"factors"`
}

// BenchmarkEntry ranks one startup metric against sector peers.
type BenchmarkEntry struct {
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
	SectorAvg  float64 `json:"sectorAvg"`
	Percentile float64 `json:"percentile"`
	Deviation  float64 `json:"deviation"`
}

// GrowthClassification is the ensemble growth tier.
type GrowthClassification struct {
	Tier          Tier        `json:"tier"`
	Confidence    float64     `json:"confidence"`
	WeightedScore float64     `json:"weightedScore"`
	Scenarios     []Scenario  `json:"scenarios"`
	ModelVotes    []ModelVote `json:"modelVotes"`
}

// GapEntry is the distance between a category score and the ideal profile.
type GapEntry struct {
	Category  Category  `json:"category"`
	Actual    float64   `json:"actual"`
	Ideal     float64   `json:"ideal"`
	GapValue  float64   `json:"gapValue"`
	Priority  Priority  `json:"priority"`
	Trend     float64   `json:"trend"`
	Direction Direction `json:"direction"`
}

// RoadmapItem is one improvement action selected by the gap engine.
type RoadmapItem struct {
	Rank     int      `json:"rank"`
	Category Category `json:"category"`
	GapValue float64  `json:"gapValue"`
	Priority Priority `json:"priority"`
	Action   string   `json:"action,omitempty"`
}

// GapAnalysis holds all category gaps and the derived roadmap.
type GapAnalysis struct {
	Gaps    []GapEntry    `json:"gaps"`
	Roadmap []RoadmapItem `json:"roadmap"`
}

// FunderMatch is an investor's compatibility with the startup.
type FunderMatch struct {
	InvestorName string   `json:"investorName"`
	ThesisTags   []string `json:"thesisTags"`
	MatchScore   float64  `json:"matchScore"`
	Stage        string   `json:"stage"`
}

// TeamAssessment is the pass-through team module with derived totals.
type TeamAssessment struct {
	Members              []TeamMemberAssessment `json:"members"`
	AverageScore         float64                `json:"averageScore"`
	TotalExperienceYears float64                `json:"totalExperienceYears"`
}

// StrategicFit is the Build/Buy/Partner matrix with its recommendation.
type StrategicFit struct {
	Pathways    []StrategicFitScore `json:"pathways"`
	Recommended Pathway             `json:"recommended"`
}

// Report is the assembled due-diligence report. A Report is complete by
// construction and must not be mutated after assembly.
type Report struct {
	ID            string               `json:"id"`
	FrameworkID   FrameworkID          `json:"frameworkId"`
	SectorID      string               `json:"sectorId"`
	GeneratedAt   time.Time            `json:"generatedAt"`
	Version       string               `json:"version"`
	ContentHash   string               `json:"contentHash"`
	Composite     float64              `json:"composite"`
	Flags         []CategoryFlag       `json:"flags"`
	Risk          RiskSummary          `json:"risk"`
	Macro         MacroSummary         `json:"macro"`
	Benchmark     []BenchmarkEntry     `json:"benchmark"`
	Growth        GrowthClassification `json:"growth"`
	Gaps          GapAnalysis          `json:"gaps"`
	FunderMatches []FunderMatch        `json:"funderMatches"`
	Team          TeamAssessment       `json:"team"`
	StrategicFit  StrategicFit         `json:"strategicFit"`
}
