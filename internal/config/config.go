package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"project-feasibility/internal/model"

	"gopkg.in/yaml.v3"
)

// DefaultPeakShare applies when a project omits peak_share.
const DefaultPeakShare = 0.5

// Config is the on-disk project configuration shape (YAML).
type Config struct {
	// Optional: load project assumptions from a preset (e.g. examples/projects/*.yaml).
	// If both ProjectFile and Project are provided, non-zero Project fields override the preset.
	ProjectFile string        `yaml:"project_file"`
	Project     ProjectConfig `yaml:"project"`
	Events      []model.Event `yaml:"events"`
}

// ProjectConfig mirrors model.InputModel. Fields where zero is a meaningful override
// (costs, rates, shares, tenor) are pointers so an explicit 0 replaces a preset value.
type ProjectConfig struct {
	Name                string    `yaml:"name"`
	ProjectLifeYears    int       `yaml:"project_life_years"`
	Capacity            float64   `yaml:"capacity"`
	PeakPrice           float64   `yaml:"peak_price"`
	OffPeakPrice        float64   `yaml:"off_peak_price"`
	PeakShare           *float64  `yaml:"peak_share"`
	FixedOpex           *float64  `yaml:"fixed_opex"`
	VariableOpexRate    *float64  `yaml:"variable_opex_rate"`
	FuelCost            *float64  `yaml:"fuel_cost"`
	EquityRatio         *float64  `yaml:"equity_ratio"`
	DebtInterestRate    *float64  `yaml:"debt_interest_rate"`
	DebtTenorYears      *int      `yaml:"debt_tenor_years"`
	DiscountRateProject *float64  `yaml:"discount_rate_project"`
	DiscountRateEquity  *float64  `yaml:"discount_rate_equity"`
	CapexSchedule       []float64 `yaml:"capex_schedule"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ProjectFile != "" {
		projectPath := c.ProjectFile
		if !filepath.IsAbs(projectPath) {
			// Relative presets resolve against the config file directory first, then cwd.
			cand := filepath.Join(filepath.Dir(path), projectPath)
			if _, err := os.Stat(cand); err == nil {
				projectPath = cand
			}
		}
		loaded, err := LoadProjectFile(projectPath)
		if err != nil {
			return nil, err
		}
		c.Project = MergeProject(loaded, c.Project)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	in, err := model.NewInputModel(c.Project.ToModel())
	if err != nil {
		return fmt.Errorf("project config invalid: %w", err)
	}
	if err := model.ValidateEvents(c.Events, in.ProjectLifeYears); err != nil {
		return fmt.Errorf("events invalid: %w", err)
	}
	return nil
}

// ToModel converts to the engine's input model, applying defaults for omitted fields.
func (p ProjectConfig) ToModel() model.InputModel {
	peakShare := DefaultPeakShare
	if p.PeakShare != nil {
		peakShare = *p.PeakShare
	}
	equityRatio := 1.0
	if p.EquityRatio != nil {
		equityRatio = *p.EquityRatio
	}
	return model.InputModel{
		Name:                p.Name,
		ProjectLifeYears:    p.ProjectLifeYears,
		Capacity:            p.Capacity,
		PeakPrice:           p.PeakPrice,
		OffPeakPrice:        p.OffPeakPrice,
		PeakShare:           peakShare,
		FixedOpex:           deref(p.FixedOpex),
		VariableOpexRate:    deref(p.VariableOpexRate),
		FuelCost:            deref(p.FuelCost),
		EquityRatio:         equityRatio,
		DebtInterestRate:    deref(p.DebtInterestRate),
		DebtTenorYears:      deref(p.DebtTenorYears),
		DiscountRateProject: deref(p.DiscountRateProject),
		DiscountRateEquity:  deref(p.DiscountRateEquity),
		CapexSchedule:       append([]float64(nil), p.CapexSchedule...),
	}
}

func deref[T int | float64](p *T) T {
	if p == nil {
		return 0
	}
	return *p
}

type projectFileWrapper struct {
	Project ProjectConfig `yaml:"project"`
}

// LoadProjectFile reads a preset file with a top-level `project:` key.
func LoadProjectFile(path string) (ProjectConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ProjectConfig{}, err
	}
	var w projectFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ProjectConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Project, nil
}

// MergeProject overlays set fields from override onto base: non-zero for value fields,
// non-nil for pointer fields, so an explicit 0 is honored for the latter.
func MergeProject(base, override ProjectConfig) ProjectConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.ProjectLifeYears != 0 {
		out.ProjectLifeYears = override.ProjectLifeYears
	}
	if override.Capacity != 0 {
		out.Capacity = override.Capacity
	}
	if override.PeakPrice != 0 {
		out.PeakPrice = override.PeakPrice
	}
	if override.OffPeakPrice != 0 {
		out.OffPeakPrice = override.OffPeakPrice
	}
	if override.PeakShare != nil {
		out.PeakShare = override.PeakShare
	}
	if override.FixedOpex != nil {
		out.FixedOpex = override.FixedOpex
	}
	if override.VariableOpexRate != nil {
		out.VariableOpexRate = override.VariableOpexRate
	}
	if override.FuelCost != nil {
		out.FuelCost = override.FuelCost
	}
	if override.EquityRatio != nil {
		out.EquityRatio = override.EquityRatio
	}
	if override.DebtInterestRate != nil {
		out.DebtInterestRate = override.DebtInterestRate
	}
	if override.DebtTenorYears != nil {
		out.DebtTenorYears = override.DebtTenorYears
	}
	if override.DiscountRateProject != nil {
		out.DiscountRateProject = override.DiscountRateProject
	}
	if override.DiscountRateEquity != nil {
		out.DiscountRateEquity = override.DiscountRateEquity
	}
	if len(override.CapexSchedule) > 0 {
		out.CapexSchedule = override.CapexSchedule
	}
	return out
}
