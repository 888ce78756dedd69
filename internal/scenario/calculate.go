package scenario

import (
	"math"

	"project-feasibility/internal/finance"
	"project-feasibility/internal/model"
	"project-feasibility/internal/overlay"
	"project-feasibility/internal/projection"
)

// Details carries the per-year cost series charted next to cash flows.
type Details struct {
	AnnualFixedCost    []float64
	AnnualVariableCost []float64
	AnnualFinanceCost  []float64
}

// Result is the outcome of one projection run.
//
// Metrics that cannot be computed are reported with sentinels rather than errors:
// IRR, IRREquity, NPVEquity and LCOE are NaN, Payback is +Inf. Use Defined to test them.
// Rates are fractions.
type Result struct {
	CashFlows           []float64
	CumulativeCashFlows []float64
	EquityCashFlows     []float64

	NPV       float64
	NPVEquity float64
	IRR       float64
	IRREquity float64
	LCOE      float64
	Payback   float64

	Details Details
	Annual  []projection.AnnualRecord

	// Inputs and Events are attached only when the run had events, so a later re-run
	// can reuse the exact base case.
	Inputs *model.InputModel
	Events []model.Event
}

// Years is the number of entries in each series (ProjectLifeYears+1).
func (r *Result) Years() int { return len(r.CashFlows) }

// Defined reports whether a metric value is a real number.
func Defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Calculate runs a full projection for in, optionally perturbed by events.
//
// Invalid inputs or events fail the whole call. Non-convergent metrics degrade to
// sentinels (see Result). When recomputeEquity is false the equity metrics are skipped
// and left NaN.
func Calculate(in model.InputModel, recomputeEquity bool, events []model.Event) (*Result, error) {
	base, err := model.NewInputModel(in)
	if err != nil {
		return nil, err
	}
	evs := model.CloneEvents(events)

	params, err := overlay.Apply(base, evs)
	if err != nil {
		return nil, err
	}
	proj, err := projection.New().Run(params, base)
	if err != nil {
		return nil, err
	}

	res := &Result{
		CashFlows:           proj.CashFlows,
		CumulativeCashFlows: proj.CumulativeCashFlows,
		EquityCashFlows:     proj.EquityCashFlows,
		NPV:                 finance.NPV(base.DiscountRateProject, proj.CashFlows),
		NPVEquity:           math.NaN(),
		IRREquity:           math.NaN(),
		Details: Details{
			AnnualFixedCost:    proj.FixedCost,
			AnnualVariableCost: proj.VariableCost,
			AnnualFinanceCost:  proj.FinanceCost,
		},
		Annual: proj.Annual,
	}

	// NoRootFound / NoOutput / NoPayback leave their sentinel in place.
	res.IRR, _ = finance.IRR(proj.CashFlows)
	res.LCOE, _ = finance.LCOE(base.DiscountRateProject, proj.TotalCost, proj.Output)
	res.Payback, _ = finance.Payback(proj.CumulativeCashFlows)

	if recomputeEquity {
		res.NPVEquity = finance.NPV(base.DiscountRateEquity, proj.EquityCashFlows)
		res.IRREquity, _ = finance.IRR(proj.EquityCashFlows)
	}

	if len(evs) > 0 {
		attached := base.Clone()
		res.Inputs = &attached
		res.Events = evs
	}
	return res, nil
}
