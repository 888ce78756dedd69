package models

import "project-feasibility/internal/model"

// ProjectionResponse represents the response from a projection run.
// Metrics that cannot be computed are null.
type ProjectionResponse struct {
	Status  string      `json:"status"`
	Metrics Metrics     `json:"metrics"`
	Series  Series      `json:"series"`
	Details CostDetails `json:"details"`
	Annual  []AnnualRow `json:"annual,omitempty"`

	Inputs *model.InputModel `json:"inputs,omitempty"`
	Events []model.Event     `json:"events,omitempty"`
}

// Metrics contains the headline financial metrics. Rates are fractions.
type Metrics struct {
	NPV          *float64 `json:"npv"`
	NPVEquity    *float64 `json:"npv_equity"`
	IRR          *float64 `json:"irr"`
	IRREquity    *float64 `json:"irr_equity"`
	LCOE         *float64 `json:"lcoe"`
	PaybackYears *float64 `json:"payback_years"`
}

// Series holds the per-year cash flow series, index 0 being the construction year
type Series struct {
	CashFlows           []float64 `json:"cash_flows"`
	CumulativeCashFlows []float64 `json:"cumulative_cash_flows"`
	EquityCashFlows     []float64 `json:"equity_cash_flows"`
}

// CostDetails holds the per-year cost series
type CostDetails struct {
	AnnualFixedCost    []float64 `json:"annual_fixed_cost"`
	AnnualVariableCost []float64 `json:"annual_variable_cost"`
	AnnualFinanceCost  []float64 `json:"annual_finance_cost"`
}

// AnnualRow represents one year of the projection ledger
type AnnualRow struct {
	Year            int     `json:"year"`
	Capacity        float64 `json:"capacity"`
	Output          float64 `json:"output"`
	PeakRevenue     float64 `json:"peak_revenue"`
	OffPeakRevenue  float64 `json:"off_peak_revenue"`
	Revenue         float64 `json:"revenue"`
	FixedCost       float64 `json:"fixed_cost"`
	VariableCost    float64 `json:"variable_cost"`
	FuelCost        float64 `json:"fuel_cost"`
	Capex           float64 `json:"capex"`
	FinanceCost     float64 `json:"finance_cost"`
	InterestPaid    float64 `json:"interest_paid"`
	PrincipalPaid   float64 `json:"principal_paid"`
	DebtBalance     float64 `json:"debt_balance"`
	EBITDA          float64 `json:"ebitda"`
	ProjectCashFlow float64 `json:"project_cash_flow"`
	EquityCashFlow  float64 `json:"equity_cash_flow"`
}

// ComparisonResponse represents the base-versus-scenario comparison
type ComparisonResponse struct {
	Comparison []MetricComparison `json:"comparison"`
	Base       ProjectionResponse `json:"base"`
	Scenario   ProjectionResponse `json:"scenario"`
}

// MetricComparison is one row of the comparison table. Diff is null when either side is.
type MetricComparison struct {
	Metric   string   `json:"metric"`
	Base     *float64 `json:"base"`
	Scenario *float64 `json:"scenario"`
	Diff     *float64 `json:"diff"`
}

// RankResponse represents the response from ranking variations
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked variation
type Ranking struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Metrics Metrics `json:"metrics"`
}

// ProjectInfo represents information about a project preset
type ProjectInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs ProjectSpecs `json:"specs"`
}

// ProjectSpecs contains headline preset figures
type ProjectSpecs struct {
	ProjectLifeYears int     `json:"project_life_years"`
	Capacity         float64 `json:"capacity"`
	TotalCapex       float64 `json:"total_capex"`
}

// EventTypeInfo describes an event type and the parameter it perturbs
type EventTypeInfo struct {
	Name        string `json:"name"`
	Target      string `json:"target"`
	Description string `json:"description"`
}

// EventModeInfo describes how an event value combines with the parameter
type EventModeInfo struct {
	Name        string `json:"name"`
	Formula     string `json:"formula"`
	Description string `json:"description"`
}

// EventCatalog is the response for GET /api/v1/event-types
type EventCatalog struct {
	Types   []EventTypeInfo `json:"types"`
	Modes   []EventModeInfo `json:"modes"`
	Default model.Event     `json:"default"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
