package finance

import (
	"errors"
	"math"
)

var (
	// ErrNoRootFound means NPV never changes sign over the IRR search range.
	ErrNoRootFound = errors.New("irr: no root found")
	// ErrNoPayback means cumulative cash flow never turns non-negative.
	ErrNoPayback = errors.New("payback not attained within horizon")
	// ErrNoOutput means discounted output is zero, so LCOE is undefined.
	ErrNoOutput = errors.New("lcoe: discounted output is zero")
)

// IRR search bounds and refinement limits.
const (
	IRRMinRate   = -0.99
	IRRMaxRate   = 5.0
	IRRScanStep  = 0.01
	IRRMaxIter   = 200
	IRRRateTol   = 1e-12
	IRRNPVTol    = 1e-9
	irrScanSteps = int((IRRMaxRate - IRRMinRate) / IRRScanStep)
)

// NPV discounts series at rate, with series[0] undiscounted.
func NPV(rate float64, series []float64) float64 {
	npv := 0.0
	df := 1.0
	for t, cf := range series {
		if t > 0 {
			df /= 1 + rate
		}
		npv += cf * df
	}
	return npv
}

// PV is NPV under the name used for cost and output streams.
func PV(rate float64, series []float64) float64 {
	return NPV(rate, series)
}

// IRR returns the rate at which NPV(rate, series) is zero.
//
// The range [IRRMinRate, IRRMaxRate] is scanned in IRRScanStep increments for the first
// sign change, which is then refined by bisection. Series with several sign changes
// return the lowest root in range.
func IRR(series []float64) (float64, error) {
	if !hasSignChange(series) {
		return math.NaN(), ErrNoRootFound
	}

	lo := IRRMinRate
	fLo := NPV(lo, series)
	if fLo == 0 {
		return lo, nil
	}
	for i := 1; i <= irrScanSteps; i++ {
		hi := IRRMinRate + float64(i)*IRRScanStep
		fHi := NPV(hi, series)
		if fHi == 0 {
			return hi, nil
		}
		if (fLo < 0) != (fHi < 0) {
			return bisect(series, lo, hi, fLo), nil
		}
		lo, fLo = hi, fHi
	}
	return math.NaN(), ErrNoRootFound
}

func bisect(series []float64, lo, hi, fLo float64) float64 {
	mid := lo
	for i := 0; i < IRRMaxIter; i++ {
		mid = lo + (hi-lo)/2
		fMid := NPV(mid, series)
		if math.Abs(fMid) < IRRNPVTol || hi-lo < IRRRateTol {
			return mid
		}
		if (fMid < 0) == (fLo < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return mid
}

func hasSignChange(series []float64) bool {
	var pos, neg bool
	for _, cf := range series {
		switch {
		case cf > 0:
			pos = true
		case cf < 0:
			neg = true
		}
	}
	return pos && neg
}

// LCOE is PV(costs) / PV(output), both discounted at rate.
func LCOE(rate float64, costs, output []float64) (float64, error) {
	pvOut := PV(rate, output)
	if pvOut == 0 {
		return math.NaN(), ErrNoOutput
	}
	return PV(rate, costs) / pvOut, nil
}

// Payback returns the fractional year at which cumulative first becomes non-negative,
// interpolating linearly inside the crossing year.
func Payback(cumulative []float64) (float64, error) {
	for t, c := range cumulative {
		if c < 0 {
			continue
		}
		if t == 0 {
			return 0, nil
		}
		prev := cumulative[t-1]
		return float64(t-1) + (-prev)/(c-prev), nil
	}
	return math.Inf(1), ErrNoPayback
}

// Cumulative returns the running sum of series.
func Cumulative(series []float64) []float64 {
	out := make([]float64, len(series))
	sum := 0.0
	for i, v := range series {
		sum += v
		out[i] = sum
	}
	return out
}

// AnnuityPayment is the level payment that amortizes principal over periods at rate.
func AnnuityPayment(principal, rate float64, periods int) float64 {
	if principal == 0 || periods <= 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(periods)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(periods)))
}
