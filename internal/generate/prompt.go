package generate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

const systemPrompt = `You are a venture due-diligence analyst producing one module of a TCA investment report for a startup.

Rules:
- Return a single JSON object and nothing else
- Match the schema exactly: no extra fields, no missing fields
- Use raw numbers without formatting (e.g., 7.5 not "7.5/10")
- Keep every score inside its stated range
- Base assessments only on the company data provided`

// moduleShapes describes the JSON each module must return.
var moduleShapes = map[model.Module]string{
	model.ModuleTCA: `{"categories":[{"category":string,"rawScore":number 0-10,"weight":number}]}
Exactly 12 categories, each once: ` + joinNames(model.Categories) + `.
Weights are percentages and must sum to 100.`,
	model.ModuleRisk: `{"flags":[{"domain":string,"flag":"green"|"yellow"|"red","trigger":string,"impact":string,"mitigation":string}]}
Exactly 14 domains, each once: ` + joinNames(model.RiskDomains) + `.`,
	model.ModuleMacro: `{"factors":[{"factor":string,"score":number 0-10,"trendOverlay":number -5 to 5,"summary":string}]}
Exactly 6 PESTEL factors, each once: ` + joinNames(model.PESTELFactors) + `.`,
	model.ModuleBenchmark: `{"metrics":[{"category":string,"score":number 0-10,"sectorAvg":number 0-10,"peers":[number 0-10]}]}
At least one metric.`,
	model.ModuleGrowth: `{"votes":[{"name":string,"score":number 0-10,"weight":number}],"confidence":number 0-100,"scenarios":[{"name":"best"|"base"|"worst","growth":number}]}
Exactly 6 votes whose weights sum to 100, and exactly 3 scenarios.`,
	model.ModuleGap: `{"profile":[{"category":string,"ideal":number 0-100,"trend":number -100 to 100,"action":string}]}
Exactly 12 entries, one per TCA category: ` + joinNames(model.Categories) + `.`,
	model.ModuleFunder: `{"startup":{"stage":string,"thesisTags":[string]},"investors":[{"investorName":string,"thesisTags":[string],"stage":string}]}
At least one investor.`,
	model.ModuleTeam: `{"members":[{"name":string,"role":string,"experienceYears":number,"skills":[string],"score":number 0-10}]}
At least one member.`,
	model.ModuleStrategic: `{"pathways":[{"pathway":"Build"|"Buy"|"Partner","fitScore":number 0-10,"rationale":string}]}
Exactly 3 pathways, each once.`,
}

// SystemPrompt returns the system instruction for module. It is identical
// across requests so it can be served from the prompt cache.
func SystemPrompt(module model.Module) string {
	return fmt.Sprintf("%s\n\nModule: %s\nSchema:\n%s", systemPrompt, module, moduleShapes[module])
}

// UserPrompt renders the request context for module.
func UserPrompt(module model.Module, req model.AnalysisRequest) (string, error) {
	company := req.CompanyData
	if company == nil {
		company = map[string]any{}
	}
	data, err := json.MarshalIndent(company, "", "  ")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Framework: %s\nSector: %s\n", req.Framework, req.Sector)
	if name := req.CompanyName(); name != "" {
		fmt.Fprintf(&sb, "Company: %s\n", name)
	}
	fmt.Fprintf(&sb, "\nCompany data:\n%s\n\nProduce the %s module JSON.", data, module)
	return sb.String(), nil
}

// cleanJSON strips markdown fences and extracts the JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
