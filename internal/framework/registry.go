package framework

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sanazindustrial/TCA-IRR-simple-sub003/internal/model"
)

// Override replaces whole policy sections when set.
type Override struct {
	Flags  *FlagThresholds `yaml:"flags,omitempty"`
	Growth *GrowthCutoffs  `yaml:"growth,omitempty"`
	Gap    *GapBuckets     `yaml:"gap,omitempty"`
	Funder *FunderTerms    `yaml:"funder,omitempty"`
}

func (o Override) apply(p Policy) Policy {
	if o.Flags != nil {
		p.Flags = *o.Flags
	}
	if o.Growth != nil {
		p.Growth = *o.Growth
	}
	if o.Gap != nil {
		p.Gap = *o.Gap
	}
	if o.Funder != nil {
		p.Funder = *o.Funder
	}
	return p
}

// SectorOverride layers an Override on one framework+sector pair.
type SectorOverride struct {
	Framework model.FrameworkID `yaml:"framework"`
	Sector    string            `yaml:"sector"`
	Override  `yaml:",inline"`
}

// File is the on-disk policy configuration.
type File struct {
	Frameworks map[model.FrameworkID]Override `yaml:"frameworks"`
	Sectors    []SectorOverride               `yaml:"sectors"`
}

// Registry resolves policies from built-in defaults plus optional overrides.
type Registry struct {
	base    map[model.FrameworkID]Policy
	sectors map[string]Override
}

// NewRegistry returns a Registry holding only the built-in policies.
func NewRegistry() *Registry {
	return &Registry{
		base: map[model.FrameworkID]Policy{
			model.FrameworkGeneral: General(),
			model.FrameworkMedtech: Medtech(),
		},
		sectors: make(map[string]Override),
	}
}

// LoadFile reads policy overrides from a YAML file on top of the built-ins.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "framework: read policy file %s", path)
	}
	return Parse(data)
}

// Parse builds a Registry from YAML policy overrides.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "framework: parse policy file")
	}

	r := NewRegistry()
	for id, o := range f.Frameworks {
		base, ok := r.base[id]
		if !ok {
			return nil, eris.Errorf("framework: unknown framework %q in policy file", id)
		}
		p := o.apply(base)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		r.base[id] = p
	}
	for _, s := range f.Sectors {
		if !s.Framework.Valid() {
			return nil, eris.Errorf("framework: unknown framework %q for sector %q", s.Framework, s.Sector)
		}
		if normalizeSector(s.Sector) == "" {
			return nil, eris.Errorf("framework: empty sector in %s override", s.Framework)
		}
		if err := s.Override.apply(r.base[s.Framework]).Validate(); err != nil {
			return nil, eris.Wrapf(err, "framework: sector %q", s.Sector)
		}
		r.sectors[sectorKey(s.Framework, s.Sector)] = s.Override
	}
	return r, nil
}

// Resolve returns the policy for a framework and sector. Both are checked
// before anything else so callers can reject a request up front.
func (r *Registry) Resolve(id model.FrameworkID, sector string) (Policy, error) {
	if !id.Valid() {
		return Policy{}, &model.ValidationError{
			Field:  "framework",
			Reason: `must be "general" or "medtech", got "` + string(id) + `"`,
		}
	}
	if normalizeSector(sector) == "" {
		return Policy{}, &model.ValidationError{Field: "sector", Reason: "must not be empty"}
	}

	p := r.base[id]
	if o, ok := r.sectors[sectorKey(id, sector)]; ok {
		p = o.apply(p)
	}
	p.Sector = strings.TrimSpace(sector)

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func sectorKey(id model.FrameworkID, sector string) string {
	return string(id) + "/" + normalizeSector(sector)
}

func normalizeSector(sector string) string {
	return strings.ToLower(strings.TrimSpace(sector))
}
