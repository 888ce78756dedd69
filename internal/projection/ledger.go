package projection

// AnnualRecord is one row of per-year output.
// Year 0 is the construction year: only Capex, ProjectCashFlow and EquityCashFlow are set.
type AnnualRecord struct {
	Year int

	// Capacity is the effective (post-overlay) capacity parameter; Output is what was sold.
	Capacity float64
	Output   float64

	PeakRevenue    float64
	OffPeakRevenue float64
	Revenue        float64

	FixedCost    float64
	VariableCost float64
	FuelCost     float64
	Capex        float64

	// FinanceCost is the total debt service (InterestPaid + PrincipalPaid).
	FinanceCost   float64
	InterestPaid  float64
	PrincipalPaid float64
	DebtBalance   float64

	EBITDA          float64
	ProjectCashFlow float64
	EquityCashFlow  float64
}

// TotalCost is the cost counted towards LCOE: capex plus operating costs, excluding debt service.
func (r AnnualRecord) TotalCost() float64 {
	return r.Capex + r.FixedCost + r.VariableCost + r.FuelCost
}

// Result holds the annual ledger and the flattened series derived from it.
// Every slice has ProjectLifeYears+1 entries.
type Result struct {
	Annual []AnnualRecord

	CashFlows           []float64
	EquityCashFlows     []float64
	CumulativeCashFlows []float64

	FixedCost    []float64
	VariableCost []float64
	FinanceCost  []float64

	TotalCost []float64
	Output    []float64
}
