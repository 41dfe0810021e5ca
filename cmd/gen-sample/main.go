package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storage-diagnostics/internal/sample"
)

// gen-sample writes a synthetic simulation export with the fixed layout the
// diagnostics tool reads: four metadata rows, a header row, then hourly rows.
func main() {
	paramsPath := flag.String("params", "", "Optional: YAML file with run parameters")
	hours := flag.Int("hours", 0, "Override the number of simulated hours")
	start := flag.String("start", "", "Override the start time (RFC3339)")
	outPath := flag.String("out", "results/sample.xlsx", "Output path; .csv or .xlsx")
	flag.Parse()

	params := sample.DefaultParams()
	if *paramsPath != "" {
		p, err := sample.LoadParams(*paramsPath)
		if err != nil {
			panic(err)
		}
		params = p
	}
	if *hours > 0 {
		params.Hours = *hours
	}
	if *start != "" {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			panic(fmt.Errorf("--start: %w", err))
		}
		params.Start = t
	}

	run, err := sample.Generate(params)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create(*outPath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(*outPath)) {
	case ".csv":
		err = sample.WriteCSV(f, run.Rows())
	case ".xlsx":
		err = sample.WriteXLSX(f, run.Rows())
	default:
		err = fmt.Errorf("unsupported output extension %q (want .csv or .xlsx)", filepath.Ext(*outPath))
	}
	if err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d hourly rows to %s\n", len(run.Records), *outPath)
	fmt.Printf("PV=%.0f MW  storage=%.0f MW / %.0f MWh  round-trip=%.2f%%\n",
		params.PVPowerMW,
		params.Battery.PowerCapacityMW,
		params.Battery.EnergyCapacityMWh,
		params.Battery.RoundTripEfficiency()*100,
	)
}
