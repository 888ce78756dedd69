package projection

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

func WriteAnnualCSV(path string, annual []AnnualRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeAnnual(f, annual); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeAnnual(out io.Writer, annual []AnnualRecord) error {
	w := csv.NewWriter(out)

	header := []string{
		"year",
		"capacity",
		"output",
		"peak_revenue",
		"off_peak_revenue",
		"revenue",
		"fixed_cost",
		"variable_cost",
		"fuel_cost",
		"capex",
		"finance_cost",
		"interest_paid",
		"principal_paid",
		"debt_balance",
		"ebitda",
		"project_cash_flow",
		"equity_cash_flow",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range annual {
		row := []string{
			strconv.Itoa(r.Year),
			fmtAmount(r.Capacity),
			fmtAmount(r.Output),
			fmtAmount(r.PeakRevenue),
			fmtAmount(r.OffPeakRevenue),
			fmtAmount(r.Revenue),
			fmtAmount(r.FixedCost),
			fmtAmount(r.VariableCost),
			fmtAmount(r.FuelCost),
			fmtAmount(r.Capex),
			fmtAmount(r.FinanceCost),
			fmtAmount(r.InterestPaid),
			fmtAmount(r.PrincipalPaid),
			fmtAmount(r.DebtBalance),
			fmtAmount(r.EBITDA),
			fmtAmount(r.ProjectCashFlow),
			fmtAmount(r.EquityCashFlow),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// fmtAmount rounds x half away from zero to 2 places.
func fmtAmount(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return decimal.NewFromFloat(x).StringFixed(2)
}
