package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when an InputModel violates a structural invariant.
var ErrInvalidInput = errors.New("invalid input")

// InputModel holds the base assumptions for one project.
// Units:
// - Capacity: output units per year (e.g. MWh/yr)
// - PeakPrice, OffPeakPrice: currency per output unit
// - PeakShare: fraction 0..1 of output sold at the peak price
// - FixedOpex, FuelCost: currency per year
// - VariableOpexRate: currency per output unit
// - Rates: fractions (0.08 = 8%)
// - CapexSchedule: currency, indexed by year (year 0 = construction)
//
// InputModel is a value type. Use Clone before handing it to code that may keep a reference
// to CapexSchedule.
type InputModel struct {
	Name string `json:"name,omitempty"`

	ProjectLifeYears int `json:"project_life_years"`

	Capacity     float64 `json:"capacity"`
	PeakPrice    float64 `json:"peak_price"`
	OffPeakPrice float64 `json:"off_peak_price"`
	PeakShare    float64 `json:"peak_share"`

	FixedOpex        float64 `json:"fixed_opex"`
	VariableOpexRate float64 `json:"variable_opex_rate"`
	FuelCost         float64 `json:"fuel_cost"`

	EquityRatio         float64   `json:"equity_ratio"`
	DebtInterestRate    float64   `json:"debt_interest_rate"`
	DebtTenorYears      int       `json:"debt_tenor_years"`
	DiscountRateProject float64   `json:"discount_rate_project"`
	DiscountRateEquity  float64   `json:"discount_rate_equity"`
	CapexSchedule       []float64 `json:"capex_schedule"`
}

// NewInputModel validates in and returns an independent copy of it.
func NewInputModel(in InputModel) (InputModel, error) {
	out := in.Clone()
	if err := out.Validate(); err != nil {
		return InputModel{}, err
	}
	return out, nil
}

// Clone returns a deep copy.
func (m InputModel) Clone() InputModel {
	out := m
	if m.CapexSchedule != nil {
		out.CapexSchedule = append([]float64(nil), m.CapexSchedule...)
	}
	return out
}

func (m InputModel) Validate() error {
	if m.ProjectLifeYears < 1 {
		return fmt.Errorf("%w: project_life_years must be >= 1", ErrInvalidInput)
	}
	if m.EquityRatio < 0 || m.EquityRatio > 1 {
		return fmt.Errorf("%w: equity_ratio must be in [0, 1]", ErrInvalidInput)
	}
	if m.PeakShare < 0 || m.PeakShare > 1 {
		return fmt.Errorf("%w: peak_share must be in [0, 1]", ErrInvalidInput)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"debt_interest_rate", m.DebtInterestRate},
		{"discount_rate_project", m.DiscountRateProject},
		{"discount_rate_equity", m.DiscountRateEquity},
	}
	for _, r := range rates {
		if r.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0", ErrInvalidInput, r.name)
		}
	}
	if m.DebtTenorYears < 0 {
		return fmt.Errorf("%w: debt_tenor_years must be >= 0", ErrInvalidInput)
	}
	if len(m.CapexSchedule) > m.ProjectLifeYears+1 {
		return fmt.Errorf("%w: capex_schedule has %d entries, max is project_life_years+1 (%d)",
			ErrInvalidInput, len(m.CapexSchedule), m.ProjectLifeYears+1)
	}

	fields := map[string]float64{
		"capacity":              m.Capacity,
		"peak_price":            m.PeakPrice,
		"off_peak_price":        m.OffPeakPrice,
		"peak_share":            m.PeakShare,
		"fixed_opex":            m.FixedOpex,
		"variable_opex_rate":    m.VariableOpexRate,
		"fuel_cost":             m.FuelCost,
		"equity_ratio":          m.EquityRatio,
		"debt_interest_rate":    m.DebtInterestRate,
		"discount_rate_project": m.DiscountRateProject,
		"discount_rate_equity":  m.DiscountRateEquity,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidInput, name)
		}
	}
	for i, v := range m.CapexSchedule {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: capex_schedule[%d] must be finite", ErrInvalidInput, i)
		}
	}
	return nil
}

// CapexAt returns the capex outlay for year t (zero beyond the schedule).
func (m InputModel) CapexAt(t int) float64 {
	if t < 0 || t >= len(m.CapexSchedule) {
		return 0
	}
	return m.CapexSchedule[t]
}

// DebtPrincipal is the debt-financed share of the year-0 capex.
func (m InputModel) DebtPrincipal() float64 {
	return m.CapexAt(0) * (1 - m.EquityRatio)
}
