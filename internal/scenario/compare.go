package scenario

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrIncompatibleHorizon is returned when two results cover different project lives.
var ErrIncompatibleHorizon = errors.New("results have different horizons")

// MetricDelta is a single metric in base and scenario, and scenario minus base.
// Diff is NaN when either side is undefined.
type MetricDelta struct {
	Base     float64
	Scenario float64
	Diff     float64
}

func delta(base, scen float64) MetricDelta {
	d := MetricDelta{Base: base, Scenario: scen, Diff: math.NaN()}
	if Defined(base) && Defined(scen) {
		d.Diff = scen - base
	}
	return d
}

// Comparison holds per-metric deltas plus both runs for chart consumers.
type Comparison struct {
	IRR       MetricDelta
	IRREquity MetricDelta
	NPV       MetricDelta
	NPVEquity MetricDelta
	LCOE      MetricDelta
	Payback   MetricDelta

	Base     *Result
	Scenario *Result
}

// Compare subtracts base from scenario metric by metric.
func Compare(base, scen *Result) (*Comparison, error) {
	if base == nil || scen == nil {
		return nil, errors.New("compare: nil result")
	}
	if base.Years() != scen.Years() {
		return nil, fmt.Errorf("%w: base %d years, scenario %d years",
			ErrIncompatibleHorizon, base.Years()-1, scen.Years()-1)
	}
	return &Comparison{
		IRR:       delta(base.IRR, scen.IRR),
		IRREquity: delta(base.IRREquity, scen.IRREquity),
		NPV:       delta(base.NPV, scen.NPV),
		NPVEquity: delta(base.NPVEquity, scen.NPVEquity),
		LCOE:      delta(base.LCOE, scen.LCOE),
		Payback:   delta(base.Payback, scen.Payback),
		Base:      base,
		Scenario:  scen,
	}, nil
}

// Named pairs a scenario result with its label.
type Named struct {
	Name   string
	Result *Result
}

// Rank sorts variations by equity NPV, best first. Undefined NPVs sort last and ties
// keep their input order.
func Rank(variations []Named) []Named {
	out := append([]Named(nil), variations...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Result.NPVEquity, out[j].Result.NPVEquity
		if !Defined(a) {
			return false
		}
		if !Defined(b) {
			return true
		}
		return a > b
	})
	return out
}
