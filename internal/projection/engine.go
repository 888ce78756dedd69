package projection

import (
	"fmt"

	"project-feasibility/internal/finance"
	"project-feasibility/internal/model"
	"project-feasibility/internal/overlay"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run projects year-by-year revenue, costs, debt service and cash flows.
//
// params carries the (possibly overlaid) per-year parameters; in supplies the structural
// constants (peak share, capex, financing terms).
func (e *Engine) Run(params overlay.Table, in model.InputModel) (*Result, error) {
	n := in.ProjectLifeYears + 1
	if len(params) != n {
		return nil, fmt.Errorf("parameter table has %d years, want %d", len(params), n)
	}

	principal := in.DebtPrincipal()
	payment := finance.AnnuityPayment(principal, in.DebtInterestRate, in.DebtTenorYears)
	balance := principal

	res := &Result{
		Annual:          make([]AnnualRecord, 0, n),
		CashFlows:       make([]float64, n),
		EquityCashFlows: make([]float64, n),
		FixedCost:       make([]float64, n),
		VariableCost:    make([]float64, n),
		FinanceCost:     make([]float64, n),
		TotalCost:       make([]float64, n),
		Output:          make([]float64, n),
	}

	for t, p := range params {
		rec := AnnualRecord{
			Year:     t,
			Capacity: p.Capacity,
			Capex:    in.CapexAt(t),
		}

		if t == 0 {
			// Debt drawdown funds the rest of the year-0 outlay.
			rec.ProjectCashFlow = -rec.Capex
			rec.EquityCashFlow = -rec.Capex * in.EquityRatio
			rec.DebtBalance = balance
		} else {
			rec.Output = p.Capacity
			rec.PeakRevenue = p.Capacity * p.PeakPrice * in.PeakShare
			rec.OffPeakRevenue = p.Capacity * p.OffPeakPrice * (1 - in.PeakShare)
			rec.Revenue = rec.PeakRevenue + rec.OffPeakRevenue

			rec.FixedCost = p.FixedOpex
			rec.VariableCost = p.Capacity * p.VariableOpexRate
			rec.FuelCost = p.FuelCost

			if t <= in.DebtTenorYears && payment != 0 {
				rec.InterestPaid = balance * in.DebtInterestRate
				rec.PrincipalPaid = payment - rec.InterestPaid
				rec.FinanceCost = payment
				balance -= rec.PrincipalPaid
				if t == in.DebtTenorYears {
					balance = 0
				}
			}
			rec.DebtBalance = balance

			rec.EBITDA = rec.Revenue - rec.FixedCost - rec.VariableCost - rec.FuelCost
			rec.ProjectCashFlow = rec.EBITDA - rec.Capex
			rec.EquityCashFlow = rec.ProjectCashFlow - rec.FinanceCost
		}

		res.Annual = append(res.Annual, rec)
		res.CashFlows[t] = rec.ProjectCashFlow
		res.EquityCashFlows[t] = rec.EquityCashFlow
		res.FixedCost[t] = rec.FixedCost
		res.VariableCost[t] = rec.VariableCost
		res.FinanceCost[t] = rec.FinanceCost
		res.TotalCost[t] = rec.TotalCost()
		res.Output[t] = rec.Output
	}

	res.CumulativeCashFlows = finance.Cumulative(res.CashFlows)
	return res, nil
}
