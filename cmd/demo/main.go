package main

import (
	"flag"
	"fmt"

	"project-feasibility/internal/config"
	"project-feasibility/internal/finance"
	"project-feasibility/internal/model"
	"project-feasibility/internal/overlay"
	"project-feasibility/internal/projection"
)

// Demo:
// - Instantiate a project (built-in or from --config)
// - Overlay its events onto the base parameters
// - Run the projection engine and print the first years of the ledger with headline metrics
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 12, "Number of years to print")
	outCSV := flag.String("out", "", "Optional path to write annual CSV (e.g. results/annual.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	in := model.InputModel{
		Name:                "demo plant",
		ProjectLifeYears:    20,
		Capacity:            100_000,
		PeakPrice:           4.5,
		OffPeakPrice:        2.5,
		PeakShare:           config.DefaultPeakShare,
		FixedOpex:           60_000,
		VariableOpexRate:    0.2,
		FuelCost:            50_000,
		EquityRatio:         0.3,
		DebtInterestRate:    0.05,
		DebtTenorYears:      10,
		DiscountRateProject: 0.07,
		DiscountRateEquity:  0.1,
		CapexSchedule:       []float64{1_500_000},
	}
	events := []model.Event{model.DefaultEvent("demo")}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		in = cfg.Project.ToModel()
		events = cfg.Events
	}

	in, err := model.NewInputModel(in)
	if err != nil {
		panic(err)
	}
	params, err := overlay.Apply(in, events)
	if err != nil {
		panic(err)
	}

	engine := projection.New()
	result, err := engine.Run(params, in)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Project %q: %d years, %d events\n", in.Name, in.ProjectLifeYears, len(events))
	fmt.Printf("Debt principal=%.2f  annual service=%.2f\n\n",
		in.DebtPrincipal(), finance.AnnuityPayment(in.DebtPrincipal(), in.DebtInterestRate, in.DebtTenorYears))

	for i := 0; i < min(*n, len(result.Annual)); i++ {
		r := result.Annual[i]
		fmt.Printf(
			"y%02d cap=%10.0f  rev=%12.2f  opex=%11.2f  debt=%11.2f  cf=%12.2f  eq=%12.2f  cum=%13.2f\n",
			r.Year,
			r.Capacity,
			r.Revenue,
			r.FixedCost+r.VariableCost+r.FuelCost,
			r.FinanceCost,
			r.ProjectCashFlow,
			r.EquityCashFlow,
			result.CumulativeCashFlows[i],
		)
	}

	if *outCSV != "" {
		if err := projection.WriteAnnualCSV(*outCSV, result.Annual); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	irr, err := finance.IRR(result.CashFlows)
	if err != nil {
		fmt.Printf("\nIRR: %v\n", err)
	}
	payback, err := finance.Payback(result.CumulativeCashFlows)
	if err != nil {
		fmt.Printf("Payback: %v\n", err)
	}
	fmt.Printf("\nDone. NPV=%.2f  IRR=%.4f  Payback=%.2f years\n",
		finance.NPV(in.DiscountRateProject, result.CashFlows), irr, payback)
}
