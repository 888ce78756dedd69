package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"project-feasibility/internal/config"
	"project-feasibility/internal/data"
	"project-feasibility/internal/model"
	"project-feasibility/internal/projection"
	"project-feasibility/internal/scenario"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	switch os.Args[1] {
	case "calculate":
		cmdCalculate(os.Args[2:], logger)
	case "compare":
		cmdCompare(os.Args[2:], logger)
	case "rank":
		cmdRank(os.Args[2:], logger)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli calculate --config examples/config.yaml [--events events.json] [--out results/annual.csv] [--save-events events.json]")
	fmt.Println("  cli compare --config examples/config.yaml --events events.json")
	fmt.Println("  cli rank --config examples/config.yaml --events a.json,b.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - events from --events replace any events listed in the config")
	fmt.Println("  - rank orders the base case and each event file by equity NPV")
}

func cmdCalculate(args []string, logger *zap.Logger) {
	fs := flag.NewFlagSet("calculate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	eventsPath := fs.String("events", "", "Optional: JSON event list")
	outPath := fs.String("out", "", "Optional: annual ledger CSV path")
	savePath := fs.String("save-events", "", "Optional: write the validated event list, with ids assigned, as JSON")
	_ = fs.Parse(args)

	in, events := load(*cfgPath, *eventsPath, logger)
	events = data.WithIDs(events)

	res, err := scenario.Calculate(in, true, events)
	if err != nil {
		logger.Fatal("projection failed", zap.Error(err))
	}

	if *outPath != "" {
		// ensure output dir exists
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			logger.Fatal("create output dir", zap.Error(err))
		}
		if err := projection.WriteAnnualCSV(*outPath, res.Annual); err != nil {
			logger.Fatal("write csv", zap.Error(err))
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Annual), *outPath)
	}

	if *savePath != "" {
		if err := data.SaveEventsJSON(*savePath, events); err != nil {
			logger.Fatal("save events", zap.Error(err))
		}
		fmt.Printf("Wrote %d events to %s\n", len(events), *savePath)
	}

	name := in.Name
	if name == "" {
		name = "project"
	}
	fmt.Printf("%s: %d years, %d events\n", name, in.ProjectLifeYears, len(events))
	fmt.Printf("  %-16s %s\n", "NPV", money(res.NPV))
	fmt.Printf("  %-16s %s\n", "NPV (equity)", money(res.NPVEquity))
	fmt.Printf("  %-16s %s\n", "IRR", percent(res.IRR))
	fmt.Printf("  %-16s %s\n", "IRR (equity)", percent(res.IRREquity))
	fmt.Printf("  %-16s %s\n", "LCOE", number(res.LCOE, 4))
	fmt.Printf("  %-16s %s\n", "Payback (years)", years(res.Payback))
}

func cmdCompare(args []string, logger *zap.Logger) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	eventsPath := fs.String("events", "", "JSON event list for the scenario")
	_ = fs.Parse(args)

	if *eventsPath == "" {
		fmt.Println("--events is required")
		os.Exit(2)
	}
	in, events := load(*cfgPath, *eventsPath, logger)

	svc := scenario.NewService(nil, logger)
	cmp, err := svc.Compare(context.Background(), in, events)
	if err != nil {
		logger.Fatal("comparison failed", zap.Error(err))
	}

	rows := []struct {
		label string
		d     scenario.MetricDelta
		f     func(float64) string
	}{
		{"Project IRR", cmp.IRR, percent},
		{"Equity IRR", cmp.IRREquity, percent},
		{"Equity NPV", cmp.NPVEquity, money},
		{"Payback (years)", cmp.Payback, years},
		{"Project NPV", cmp.NPV, money},
		{"LCOE", cmp.LCOE, func(v float64) string { return number(v, 4) }},
	}
	fmt.Printf("%-16s %14s %14s %14s\n", "metric", "base", "scenario", "diff")
	for _, r := range rows {
		fmt.Printf("%-16s %14s %14s %14s\n", r.label, r.f(r.d.Base), r.f(r.d.Scenario), r.f(r.d.Diff))
	}
}

func cmdRank(args []string, logger *zap.Logger) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	eventsPaths := fs.String("events", "", "Comma-separated JSON event lists")
	_ = fs.Parse(args)

	in, base := load(*cfgPath, "", logger)
	variations := []scenario.Variation{{Name: "base", Events: base}}
	for _, p := range splitPaths(*eventsPaths) {
		events, err := data.LoadEventsJSON(p)
		if err != nil {
			logger.Fatal("load events", zap.String("file", p), zap.Error(err))
		}
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		variations = append(variations, scenario.Variation{Name: name, Events: events})
	}

	ranked, err := scenario.NewService(nil, logger).Rank(context.Background(), in, variations)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	fmt.Printf("%-4s %-24s %-14s %-10s %-10s\n", "rank", "variation", "equity npv", "equity irr", "payback")
	for i, r := range ranked {
		fmt.Printf("%-4d %-24s %-14s %-10s %-10s\n",
			i+1, r.Name, money(r.Result.NPVEquity), percent(r.Result.IRREquity), years(r.Result.Payback))
	}
}

// load reads and validates the config. Events from eventsPath, when set, replace the config's.
func load(cfgPath, eventsPath string, logger *zap.Logger) (model.InputModel, []model.Event) {
	if cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.String("file", cfgPath), zap.Error(err))
	}
	in, err := model.NewInputModel(cfg.Project.ToModel())
	if err != nil {
		logger.Fatal("invalid project", zap.Error(err))
	}

	events := cfg.Events
	if eventsPath != "" {
		events, err = data.LoadEventsJSON(eventsPath)
		if err != nil {
			logger.Fatal("load events", zap.String("file", eventsPath), zap.Error(err))
		}
	}
	if err := model.ValidateEvents(events, in.ProjectLifeYears); err != nil {
		logger.Fatal("invalid events", zap.Error(err))
	}
	return in, events
}

var million = decimal.NewFromInt(1_000_000)

// money formats an amount in millions, e.g. "-1.50M".
func money(v float64) string {
	if !scenario.Defined(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).Div(million).StringFixed(2) + "M"
}

func percent(v float64) string {
	if !scenario.Defined(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v * 100).StringFixed(2) + "%"
}

func years(v float64) string {
	if math.IsInf(v, 1) {
		return "never"
	}
	if !scenario.Defined(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func number(v float64, places int32) string {
	if !scenario.Defined(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
