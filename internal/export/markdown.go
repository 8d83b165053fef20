package export

import (
	"fmt"
	"strings"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Markdown renders a human-readable summary of rep. company may be empty.
func Markdown(rep *model.Report, company string) string {
	var b strings.Builder

	title := company
	if title == "" {
		title = rep.ID
	}
	fmt.Fprintf(&b, "# TCA Due-Diligence Report: %s\n", title)
	fmt.Fprintf(&b, "Framework: %s | Sector: %s\n", rep.FrameworkID, rep.SectorID)
	fmt.Fprintf(&b, "Report ID: %s | Generated: %s | Version: %s\n\n",
		rep.ID, rep.GeneratedAt.Format("2006-01-02 15:04 MST"), rep.Version)

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- Composite score: %.2f / 10\n", rep.Composite)
	fmt.Fprintf(&b, "- Overall risk: %s (%s)\n", rep.Risk.Overall, riskCounts(rep.Risk.Counts))
	fmt.Fprintf(&b, "- Growth tier: %s (weighted %.2f, confidence %.0f%%)\n",
		rep.Growth.Tier, rep.Growth.WeightedScore, rep.Growth.Confidence)
	fmt.Fprintf(&b, "- Macro alignment: %.2f\n", rep.Macro.Alignment)
	fmt.Fprintf(&b, "- Recommended pathway: %s\n\n", rep.StrategicFit.Recommended)

	b.WriteString("## Scorecard\n")
	b.WriteString("| Category | Score | Weight | Flag |\n|---|---|---|---|\n")
	for _, c := range rep.Flags {
		fmt.Fprintf(&b, "| %s | %.2f | %.1f%% | %s |\n", c.Category, c.RawScore, c.Weight, c.Flag)
	}
	b.WriteString("\n")

	if rep.Risk.Summary != "" {
		b.WriteString("## Risk\n")
		b.WriteString(rep.Risk.Summary)
		b.WriteString("\n\n")
	}

	if len(rep.Gaps.Roadmap) > 0 {
		b.WriteString("## Improvement Roadmap\n")
		for _, r := range rep.Gaps.Roadmap {
			fmt.Fprintf(&b, "%d. **%s** gap %.1f (%s)", r.Rank, r.Category, r.GapValue, r.Priority)
			if r.Action != "" {
				fmt.Fprintf(&b, ": %s", r.Action)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Top Funder Matches\n")
	if len(rep.FunderMatches) == 0 {
		b.WriteString("No funders matched.\n")
	}
	for i, m := range rep.FunderMatches {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "- %s (%s): %.1f\n", m.InvestorName, m.Stage, m.MatchScore)
	}

	if len(rep.Team.Members) > 0 {
		b.WriteString("\n## Team\n")
		fmt.Fprintf(&b, "- Members: %d, average score %.2f, %.0f combined years\n",
			len(rep.Team.Members), rep.Team.AverageScore, rep.Team.TotalExperienceYears)
	}

	return b.String()
}

func riskCounts(counts map[model.Flag]int) string {
	parts := make([]string, 0, 3)
	for _, f := range []model.Flag{model.FlagRed, model.FlagYellow, model.FlagGreen} {
		parts = append(parts, fmt.Sprintf("%d %s", counts[f], f))
	}
	return strings.Join(parts, ", ")
}
