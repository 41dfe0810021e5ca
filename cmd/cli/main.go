package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"storage-diagnostics/internal/config"
	"storage-diagnostics/internal/export"
	"storage-diagnostics/internal/ingest"
	"storage-diagnostics/internal/logging"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/pipeline"
	"storage-diagnostics/internal/reshape"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "summary":
		err = cmdSummary(os.Args[2:])
	case "series":
		err = cmdSeries(os.Args[2:])
	case "flow":
		err = cmdFlow(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", pipeline.ErrorCode(err), err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli summary --file results.xlsx")
	fmt.Println("  cli series  --file results.csv --primary 'Storage charge,Storage discharge' --secondary Price --start 2018-01-01T00:00 --end 2018-01-03T00:00")
	fmt.Println("  cli flow    --file results.csv --start 2018-01-01T00:00 --end 2018-01-02T00:00 --out flow.csv")
	fmt.Println("  cli stats   --file results.csv --energy")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - every command accepts --config (YAML or INI) and --format csv|json")
	fmt.Println("  - an omitted --start or --end defaults to the first or last timestamp in the file")
}

// common holds the flags shared by every subcommand.
type common struct {
	file   *string
	cfg    *string
	format *string
	out    *string
	start  *string
	end    *string
}

func newFlagSet(name string) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs, &common{
		file:   fs.String("file", "", "Path to the simulation export (.csv or .xlsx)"),
		cfg:    fs.String("config", "", "Optional: path to a YAML or INI config"),
		format: fs.String("format", "csv", "Output format: csv or json"),
		out:    fs.String("out", "", "Output path (default stdout)"),
		start:  fs.String("start", "", "Window start (RFC3339 or 2006-01-02T15:04)"),
		end:    fs.String("end", "", "Window end (RFC3339 or 2006-01-02T15:04)"),
	}
}

// run holds what every subcommand needs after flag parsing.
type run struct {
	engine *pipeline.Engine
	ds     *model.DiagnosticDataset
	window model.TimeWindow
	format string
	out    io.Writer
	close  func() error
}

func (c *common) open() (*run, error) {
	if *c.file == "" {
		return nil, fmt.Errorf("--file is required")
	}
	if *c.format != "csv" && *c.format != "json" {
		return nil, fmt.Errorf("--format must be csv or json, got %q", *c.format)
	}

	cfg, err := config.Load(*c.cfg)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	// Logs go to stderr so stdout stays clean for the view output.
	logrus.SetOutput(os.Stderr)

	engine, err := pipeline.New(pipeline.Config{
		ParserOptions: cfg.ParserOptions(),
		ValueRange:    cfg.ValueRange(),
		CacheTTL:      cfg.CacheTTL(),
	})
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(*c.file)
	if err != nil {
		return nil, err
	}
	ds, err := engine.Load(raw, filepath.Base(*c.file))
	if err != nil {
		return nil, err
	}

	w, err := parseWindow(*c.start, *c.end)
	if err != nil {
		return nil, err
	}

	r := &run{engine: engine, ds: ds, window: w, format: *c.format, out: os.Stdout, close: func() error { return nil }}
	if *c.out != "" {
		if err := os.MkdirAll(filepath.Dir(*c.out), 0o755); err != nil {
			return nil, err
		}
		f, err := os.Create(*c.out)
		if err != nil {
			return nil, err
		}
		bw := bufio.NewWriter(f)
		r.out = bw
		r.close = func() error {
			if err := bw.Flush(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}
	}
	return r, nil
}

func (r *run) finish(err error) error {
	cerr := r.close()
	if err != nil {
		return err
	}
	return cerr
}

func (r *run) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdSummary(args []string) error {
	fs, c := newFlagSet("summary")
	_ = fs.Parse(args)
	r, err := c.open()
	if err != nil {
		return err
	}
	v, err := r.engine.Summary(r.ds)
	if err != nil {
		return r.finish(err)
	}
	if r.format == "json" {
		return r.finish(r.writeJSON(v))
	}
	return r.finish(export.WriteSummaryCSV(r.out, v))
}

func cmdSeries(args []string) error {
	fs, c := newFlagSet("series")
	primary := fs.String("primary", "", "Comma-separated primary axis variables")
	secondary := fs.String("secondary", "", "Optional: comma-separated secondary axis variables")
	_ = fs.Parse(args)

	sel, err := reshape.ParseSelection(splitList(*primary), splitList(*secondary))
	if err != nil {
		return err
	}
	r, err := c.open()
	if err != nil {
		return err
	}
	v, err := r.engine.Plain(r.ds, r.window, sel)
	if err != nil {
		return r.finish(err)
	}
	if r.format == "json" {
		return r.finish(r.writeJSON(v))
	}
	return r.finish(export.WritePlainCSV(r.out, v))
}

func cmdFlow(args []string) error {
	fs, c := newFlagSet("flow")
	_ = fs.Parse(args)
	r, err := c.open()
	if err != nil {
		return err
	}
	v, err := r.engine.Flow(r.ds, r.window)
	if err != nil {
		return r.finish(err)
	}
	if r.format == "json" {
		return r.finish(r.writeJSON(v))
	}
	return r.finish(export.WriteLongFormCSV(r.out, v.Rows))
}

func cmdStats(args []string) error {
	fs, c := newFlagSet("stats")
	energy := fs.Bool("energy", false, "CSV only: write the energy balance instead of the variable table")
	_ = fs.Parse(args)
	r, err := c.open()
	if err != nil {
		return err
	}
	v, err := r.engine.Stats(r.ds, r.window)
	if err != nil {
		return r.finish(err)
	}
	switch {
	case r.format == "json":
		return r.finish(r.writeJSON(v))
	case *energy:
		return r.finish(export.WriteEnergyCSV(r.out, v.Stats.Energy))
	default:
		return r.finish(export.WriteStatsCSV(r.out, v.Stats))
	}
}

func parseWindow(start, end string) (model.TimeWindow, error) {
	var w model.TimeWindow
	var err error
	if w.Start, err = parseFlagTime("--start", start); err != nil {
		return w, err
	}
	if w.End, err = parseFlagTime("--end", end); err != nil {
		return w, err
	}
	return w, nil
}

func parseFlagTime(name, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := ingest.ParseTime(value, ingest.DefaultTimeLayouts)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", model.ErrInvalidWindow, name, value)
	}
	return t, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
