// Package popcap derives PoP token issuance caps from demo presets or
// transaction histories.
package popcap

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

var (
	presetShare   = decimal.RequireFromString("0.90")
	presetDivisor = decimal.NewFromInt(3)
)

// Preset is an immutable demo business profile.
// PopModifier is carried for future weighting and does not affect the cap.
type Preset struct {
	Name                string  `yaml:"name" json:"name"`
	BusinessType        string  `yaml:"businessType" json:"businessType"`
	Location            string  `yaml:"location" json:"location"`
	BusinessAge         float64 `yaml:"businessAge" json:"businessAge"`
	Units               int     `yaml:"units" json:"units,omitempty"`
	ProductType         string  `yaml:"productType" json:"productType,omitempty"`
	Currency            string  `yaml:"currency" json:"currency"`
	GrossMonthlyRevenue float64 `yaml:"grossMonthlyRevenue" json:"grossMonthlyRevenue"`
	Expenses            float64 `yaml:"expenses" json:"expenses"`
	Depreciation        float64 `yaml:"depreciation" json:"depreciation"`
	Liabilities         float64 `yaml:"liabilities" json:"liabilities"`
	NetValue            float64 `yaml:"netValue" json:"netValue"`
	PopModifier         float64 `yaml:"popModifier" json:"popModifier"`
	Narrative           string  `yaml:"narrative" json:"narrative"`
}

// PresetWithCap is a preset together with its derived token cap.
type PresetWithCap struct {
	Preset
	PopTokenCap int64 `json:"popTokenCap"`
}

// WithCap attaches the derived cap to the preset.
func (p Preset) WithCap() PresetWithCap {
	return PresetWithCap{Preset: p, PopTokenCap: CapFromPreset(p)}
}

// CapFromPreset returns floor(netValue * 0.90 / 3).
// A negative net value has no issuance capacity and yields 0.
func CapFromPreset(p Preset) int64 {
	tokenCap := decimal.NewFromFloat(p.NetValue).
		Mul(presetShare).
		Div(presetDivisor).
		Floor().
		IntPart()
	if tokenCap < 0 {
		return 0
	}
	return tokenCap
}

// Catalog is the read-only set of demo presets.
type Catalog struct {
	presets []Preset
	byName  map[string]int
}

type catalogFile struct {
	Presets []Preset `yaml:"presets"`
}

// DefaultCatalog parses the embedded preset catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(presetsYAML)
}

// ParseCatalog builds a catalog from YAML. When two presets share a name the
// first one wins lookups; both are still listed.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse preset catalog: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, errors.New("preset catalog is empty")
	}

	c := &Catalog{
		presets: file.Presets,
		byName:  make(map[string]int, len(file.Presets)),
	}
	for i, p := range file.Presets {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if p.PopModifier <= 0 || p.PopModifier > 1 {
			return nil, fmt.Errorf("preset %q: pop modifier %v outside (0,1]", p.Name, p.PopModifier)
		}
		if _, dup := c.byName[p.Name]; !dup {
			c.byName[p.Name] = i
		}
	}
	return c, nil
}

// All returns every preset with its derived cap, in catalog order.
func (c *Catalog) All() []PresetWithCap {
	out := make([]PresetWithCap, len(c.presets))
	for i, p := range c.presets {
		out[i] = p.WithCap()
	}
	return out
}

// Lookup finds a preset by exact name.
func (c *Catalog) Lookup(name string) (Preset, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Preset{}, false
	}
	return c.presets[i], true
}

// CapFor returns the derived cap of the named preset.
func (c *Catalog) CapFor(name string) (int64, bool) {
	p, ok := c.Lookup(name)
	if !ok {
		return 0, false
	}
	return CapFromPreset(p), true
}
