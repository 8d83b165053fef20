// Package funder scores investor thesis fit against a startup profile.
package funder

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/framework"
	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Match scores every investor against the startup and returns the matches
// sorted by descending matchScore, ties by investor name. The request
// sector counts as one of the startup's thesis tags.
//
// matchScore = clamp(100 × Jaccard(startupTags, investorTags) ± stage term, 0, 100).
func Match(in model.FunderInput, sector string, p framework.Policy) ([]model.FunderMatch, error) {
	if len(in.Investors) == 0 {
		return nil, &model.SchemaMismatchError{
			Module:   model.ModuleFunder,
			Field:    "investors",
			Expected: "at least 1 entries",
			Actual:   "0 entries",
		}
	}

	fold := cases.Fold()
	startup := tagSet(fold, append(append([]string(nil), in.Startup.ThesisTags...), sector))
	stage := normalize(fold, in.Startup.Stage)

	out := make([]model.FunderMatch, 0, len(in.Investors))
	for i, inv := range in.Investors {
		if strings.TrimSpace(inv.InvestorName) == "" {
			return nil, &model.ValidationError{
				Module: model.ModuleFunder,
				Field:  fmt.Sprintf("investors[%d].investorName", i),
				Reason: "must not be empty",
			}
		}
		score := 100 * jaccard(startup, tagSet(fold, inv.ThesisTags))
		if stage != "" && normalize(fold, inv.Stage) == stage {
			score += p.Funder.AlignedBonus
		} else {
			score -= p.Funder.MisalignedPenalty
		}
		out = append(out, model.FunderMatch{
			InvestorName: inv.InvestorName,
			ThesisTags:   append([]string(nil), inv.ThesisTags...),
			MatchScore:   math.Round(clamp(score, 0, 100)*100) / 100,
			Stage:        inv.Stage,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchScore != out[j].MatchScore {
			return out[i].MatchScore > out[j].MatchScore
		}
		return out[i].InvestorName < out[j].InvestorName
	})
	return out, nil
}

func normalize(fold cases.Caser, s string) string {
	return fold.String(strings.Join(strings.Fields(s), " "))
}

func tagSet(fold cases.Caser, tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if n := normalize(fold, t); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	var inter int
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
