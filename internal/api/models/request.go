package models

import "project-feasibility/internal/model"

// ProjectionRequest represents the request body for a single projection run
type ProjectionRequest struct {
	ProjectFile     string            `json:"project_file,omitempty"` // preset id in PROJECT_DIR, e.g. "1_solar_50mw"
	Project         ProjectConfig     `json:"project,omitempty"`
	Events          []model.Event     `json:"events,omitempty"`
	RecomputeEquity *bool             `json:"recompute_equity,omitempty"` // default: true
	Options         ProjectionOptions `json:"options,omitempty"`
}

// ProjectConfig defines project assumptions. Non-zero fields override the preset;
// pointer fields override whenever present, so they can be set to 0 explicitly.
type ProjectConfig struct {
	Name                string    `json:"name,omitempty"`
	ProjectLifeYears    int       `json:"project_life_years"`
	Capacity            float64   `json:"capacity"`
	PeakPrice           float64   `json:"peak_price"`
	OffPeakPrice        float64   `json:"off_peak_price"`
	PeakShare           *float64  `json:"peak_share,omitempty"`
	FixedOpex           *float64  `json:"fixed_opex,omitempty"`
	VariableOpexRate    *float64  `json:"variable_opex_rate,omitempty"`
	FuelCost            *float64  `json:"fuel_cost,omitempty"`
	EquityRatio         *float64  `json:"equity_ratio,omitempty"`
	DebtInterestRate    *float64  `json:"debt_interest_rate,omitempty"`
	DebtTenorYears      *int      `json:"debt_tenor_years,omitempty"`
	DiscountRateProject *float64  `json:"discount_rate_project,omitempty"`
	DiscountRateEquity  *float64  `json:"discount_rate_equity,omitempty"`
	CapexSchedule       []float64 `json:"capex_schedule"`
}

// ProjectionOptions contains optional output parameters
type ProjectionOptions struct {
	IncludeAnnual bool `json:"include_annual,omitempty"` // default: false
}

// CompareRequest compares the base case with the same project under events
type CompareRequest struct {
	ProjectFile string            `json:"project_file,omitempty"`
	Project     ProjectConfig     `json:"project,omitempty"`
	Events      []model.Event     `json:"events" binding:"required"`
	Options     ProjectionOptions `json:"options,omitempty"`
}

// RankRequest ranks event variations of one project by equity NPV
type RankRequest struct {
	ProjectFile string        `json:"project_file,omitempty"`
	Project     ProjectConfig `json:"project,omitempty"`
	Variations  []Variation   `json:"variations" binding:"required,min=1,dive"`
}

// Variation is a named event list
type Variation struct {
	Name   string        `json:"name" binding:"required"`
	Events []model.Event `json:"events"`
}
