// Package framework resolves the scoring policy (flag thresholds, growth
// cutoffs, gap buckets, funder stage terms) for a framework and sector.
package framework

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// FlagThresholds maps a 0-10 score to a traffic-light flag.
// score >= Green is green, score >= Yellow is yellow, anything lower is red.
type FlagThresholds struct {
	Green  float64 `yaml:"green" json:"green"`
	Yellow float64 `yaml:"yellow" json:"yellow"`
}

// Flag derives the flag for a raw score.
func (t FlagThresholds) Flag(score float64) model.Flag {
	switch {
	case score >= t.Green:
		return model.FlagGreen
	case score >= t.Yellow:
		return model.FlagYellow
	default:
		return model.FlagRed
	}
}

// GrowthCutoffs maps an ensemble weighted score to a growth tier.
type GrowthCutoffs struct {
	High     float64 `yaml:"high" json:"high"`
	Moderate float64 `yaml:"moderate" json:"moderate"`
}

// Tier derives the growth tier for a weighted score.
func (c GrowthCutoffs) Tier(score float64) model.Tier {
	switch {
	case score >= c.High:
		return model.TierHigh
	case score >= c.Moderate:
		return model.TierModerate
	default:
		return model.TierLow
	}
}

// GapBuckets maps the absolute gap (0-100 points) to a priority.
type GapBuckets struct {
	Critical float64 `yaml:"critical" json:"critical"`
	High     float64 `yaml:"high" json:"high"`
	Medium   float64 `yaml:"medium" json:"medium"`
}

// Priority derives the priority for a signed gap.
func (b GapBuckets) Priority(gap float64) model.Priority {
	if gap < 0 {
		gap = -gap
	}
	switch {
	case gap >= b.Critical:
		return model.PriorityCritical
	case gap >= b.High:
		return model.PriorityHigh
	case gap >= b.Medium:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// FunderTerms adjusts a tag-overlap score for stage alignment.
type FunderTerms struct {
	AlignedBonus      float64 `yaml:"aligned_bonus" json:"alignedBonus"`
	MisalignedPenalty float64 `yaml:"misaligned_penalty" json:"misalignedPenalty"`
}

// Policy is the full per-request scoring configuration. It is resolved once
// per request and passed to every component.
type Policy struct {
	Framework model.FrameworkID `yaml:"framework" json:"framework"`
	Sector    string            `yaml:"sector,omitempty" json:"sector,omitempty"`
	Flags     FlagThresholds    `yaml:"flags" json:"flags"`
	Growth    GrowthCutoffs     `yaml:"growth" json:"growth"`
	Gap       GapBuckets        `yaml:"gap" json:"gap"`
	Funder    FunderTerms       `yaml:"funder" json:"funder"`
}

// Fingerprint is the hex sha256 of the policy's JSON form. Two policies
// score identically exactly when their fingerprints match.
func (p Policy) Fingerprint() string {
	// Policy holds only strings and numbers, so Marshal cannot fail.
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// General returns the built-in policy for the general framework.
func General() Policy {
	return Policy{
		Framework: model.FrameworkGeneral,
		Flags:     FlagThresholds{Green: 8, Yellow: 6.5},
		Growth:    GrowthCutoffs{High: 7.5, Moderate: 5},
		Gap:       GapBuckets{Critical: 25, High: 15, Medium: 5},
		Funder:    FunderTerms{AlignedBonus: 10, MisalignedPenalty: 15},
	}
}

// Medtech returns the built-in policy for the medtech framework. Cutoffs are
// stricter to account for regulatory and clinical exposure.
func Medtech() Policy {
	return Policy{
		Framework: model.FrameworkMedtech,
		Flags:     FlagThresholds{Green: 8.5, Yellow: 7},
		Growth:    GrowthCutoffs{High: 8, Moderate: 5.5},
		Gap:       GapBuckets{Critical: 25, High: 15, Medium: 5},
		Funder:    FunderTerms{AlignedBonus: 10, MisalignedPenalty: 15},
	}
}

// Validate checks that a Policy is internally consistent.
func (p Policy) Validate() error {
	var errs []string

	if !p.Framework.Valid() {
		errs = append(errs, fmt.Sprintf("unknown framework %q", p.Framework))
	}
	if p.Flags.Green <= p.Flags.Yellow {
		errs = append(errs, "flags.green must be > flags.yellow")
	}
	if p.Flags.Yellow < 0 || p.Flags.Green > 10 {
		errs = append(errs, "flag thresholds must lie within [0,10]")
	}
	if p.Growth.High <= p.Growth.Moderate {
		errs = append(errs, "growth.high must be > growth.moderate")
	}
	if p.Growth.Moderate < 0 || p.Growth.High > 10 {
		errs = append(errs, "growth cutoffs must lie within [0,10]")
	}
	if !(p.Gap.Critical > p.Gap.High && p.Gap.High > p.Gap.Medium && p.Gap.Medium > 0) {
		errs = append(errs, "gap buckets must satisfy critical > high > medium > 0")
	}
	if p.Funder.AlignedBonus < 0 || p.Funder.MisalignedPenalty < 0 {
		errs = append(errs, "funder terms must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("framework: policy %s invalid: %s", p.Framework, strings.Join(errs, "; "))
	}
	return nil
}
