// Package risk rolls the 14 per-domain risk flags into one overall posture.
package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Reduce returns the worst flag across all domains, a summary built from
// the triggers of every domain at that flag, and per-flag counts.
func Reduce(in model.RiskInput) (model.RiskSummary, error) {
	if len(in.Flags) != len(model.RiskDomains) {
		return model.RiskSummary{}, &model.SchemaMismatchError{
			Module:   model.ModuleRisk,
			Field:    "flags",
			Expected: fmt.Sprintf("%d entries", len(model.RiskDomains)),
			Actual:   fmt.Sprintf("%d entries", len(in.Flags)),
		}
	}

	flags := make([]model.RiskFlag, len(in.Flags))
	copy(flags, in.Flags)
	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Domain.Index() < flags[j].Domain.Index()
	})

	out := model.RiskSummary{
		Overall: model.FlagGreen,
		Counts:  map[model.Flag]int{model.FlagGreen: 0, model.FlagYellow: 0, model.FlagRed: 0},
		Flags:   flags,
	}
	for _, f := range flags {
		if f.Flag.Severity() < 0 {
			return model.RiskSummary{}, &model.ValidationError{
				Module: model.ModuleRisk,
				Field:  fmt.Sprintf("flags[%s].flag", f.Domain),
				Reason: fmt.Sprintf("unknown flag %q", f.Flag),
			}
		}
		out.Counts[f.Flag]++
		if f.Flag.Severity() > out.Overall.Severity() {
			out.Overall = f.Flag
		}
	}

	var triggers []string
	for _, f := range flags {
		if f.Flag != out.Overall {
			continue
		}
		trigger := strings.TrimSpace(f.Trigger)
		if trigger == "" {
			trigger = string(f.Domain)
		}
		triggers = append(triggers, trigger)
	}
	out.Summary = fmt.Sprintf("Overall risk %s: %s", out.Overall, strings.Join(triggers, "; "))
	return out, nil
}
