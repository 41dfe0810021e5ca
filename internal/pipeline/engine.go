// Package pipeline runs the load and view paths of the diagnostics tool.
//
// Every derived view goes through the same steps: resolve the window against
// the dataset, filter the series, then reshape or summarise the filtered rows.
package pipeline

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"storage-diagnostics/internal/analysis"
	"storage-diagnostics/internal/ingest"
	"storage-diagnostics/internal/metrics"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/reshape"
	"storage-diagnostics/internal/session"
	"storage-diagnostics/internal/summary"
	"storage-diagnostics/internal/window"
)

type Config struct {
	ParserOptions []ingest.Option
	// ValueRange is the flow chart clamp. Zero means reshape.DefaultValueRange.
	ValueRange reshape.ValueRange
	// CacheTTL bounds how long a computed view is reused. Zero disables caching.
	CacheTTL time.Duration
}

type Engine struct {
	parser     *ingest.Parser
	session    *session.Session
	cache      *viewCache
	valueRange reshape.ValueRange
	log        *logrus.Entry
}

func New(cfg Config) (*Engine, error) {
	vr := cfg.ValueRange
	if vr.IsZero() {
		vr = reshape.DefaultValueRange
	}
	if err := vr.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		parser:     ingest.NewParser(cfg.ParserOptions...),
		session:    session.New(),
		cache:      newViewCache(cfg.CacheTTL),
		valueRange: vr,
		log:        logrus.WithField("component", "pipeline"),
	}, nil
}

func (e *Engine) ValueRange() reshape.ValueRange { return e.valueRange }

// Load parses raw as the file named name and, on success, makes it the active
// dataset. A failed or superseded load leaves the active dataset untouched.
func (e *Engine) Load(raw []byte, name string) (*model.DiagnosticDataset, error) {
	ticket := e.session.Begin()
	start := time.Now()
	format, _ := ingest.DetectFormat(name)

	ds, err := e.parser.Parse(raw, name)
	metrics.ObserveLoad(string(format), resultCode(err), time.Since(start))
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"filename": name,
			"bytes":    len(raw),
		}).WithError(err).Warn("dataset rejected")
		return nil, err
	}

	if _, err := e.session.Commit(ticket, ds); err != nil {
		e.log.WithFields(logrus.Fields{
			"filename":   name,
			"dataset_id": ds.ID,
		}).WithError(err).Info("dataset load superseded")
		return nil, err
	}
	metrics.SetDatasetRows(ds.Len())
	e.cache.retain(ds.ID)

	e.log.WithFields(logrus.Fields{
		"dataset_id": ds.ID,
		"filename":   name,
		"format":     ds.Format,
		"rows":       ds.Len(),
		"duration":   time.Since(start).String(),
	}).Info("dataset loaded")
	return ds, nil
}

// Current returns the active dataset.
func (e *Engine) Current() (*model.DiagnosticDataset, error) {
	snap, err := e.session.Current()
	if err != nil {
		return nil, err
	}
	return snap.Dataset, nil
}

// Pinned returns the active dataset only if its ID is datasetID.
func (e *Engine) Pinned(datasetID string) (*model.DiagnosticDataset, error) {
	if datasetID == "" {
		return e.Current()
	}
	snap, err := e.session.Pinned(datasetID)
	if err != nil {
		return nil, err
	}
	return snap.Dataset, nil
}

func (e *Engine) Summary(ds *model.DiagnosticDataset) (SummaryView, error) {
	if ds == nil {
		return SummaryView{}, session.ErrNoDataset
	}
	m, err := summary.Extract(ds.Metadata)
	metrics.ObserveView("summary", resultCode(err))
	if err != nil {
		return SummaryView{}, err
	}
	return SummaryView{DatasetID: ds.ID, Metrics: m, Display: summary.Format(m)}, nil
}

// Plain builds the multi-axis line chart input for the window.
func (e *Engine) Plain(ds *model.DiagnosticDataset, w model.TimeWindow, sel reshape.Selection) (PlainView, error) {
	if err := sel.Validate(); err != nil {
		metrics.ObserveView("plain", resultCode(err))
		return PlainView{}, err
	}
	v, err := e.view("plain", ds, w, sel, func(win model.TimeWindow, rows []model.Record) (any, error) {
		res, err := reshape.Plain(rows, sel)
		if err != nil {
			return nil, err
		}
		return PlainView{
			DatasetID:     ds.ID,
			Window:        win,
			PrimaryRows:   res.PrimaryRows,
			SecondaryRows: res.SecondaryRows,
			PrimaryUnit:   res.PrimaryUnit,
			SecondaryUnit: res.SecondaryUnit,
		}, nil
	})
	if err != nil {
		return PlainView{}, err
	}
	return v.(PlainView), nil
}

// Flow builds the animated flow chart input for the window.
func (e *Engine) Flow(ds *model.DiagnosticDataset, w model.TimeWindow) (FlowView, error) {
	v, err := e.view("flow", ds, w, reshape.Selection{}, func(win model.TimeWindow, rows []model.Record) (any, error) {
		res := reshape.Flow(rows, reshape.FlowOptions{ValueRange: e.valueRange})
		return FlowView{
			DatasetID:  ds.ID,
			Window:     win,
			Rows:       res.Rows,
			ValueRange: res.ValueRange,
			Frames:     res.Frames,
		}, nil
	})
	if err != nil {
		return FlowView{}, err
	}
	return v.(FlowView), nil
}

// Stats computes per-variable statistics and the energy balance for the window.
func (e *Engine) Stats(ds *model.DiagnosticDataset, w model.TimeWindow) (StatsView, error) {
	v, err := e.view("stats", ds, w, reshape.Selection{}, func(win model.TimeWindow, rows []model.Record) (any, error) {
		return StatsView{DatasetID: ds.ID, Window: win, Stats: analysis.Compute(rows)}, nil
	})
	if err != nil {
		return StatsView{}, err
	}
	return v.(StatsView), nil
}

// view runs the shared resolve, filter, build path and memoises the result.
// Cached views are shared between callers and must not be modified.
func (e *Engine) view(name string, ds *model.DiagnosticDataset, w model.TimeWindow, sel reshape.Selection,
	build func(model.TimeWindow, []model.Record) (any, error)) (any, error) {
	win, rows, err := e.filter(ds, w)
	if err != nil {
		metrics.ObserveView(name, resultCode(err))
		return nil, err
	}

	key := viewKey(name, ds.ID, win, sel)
	if v, ok := e.cache.get(key); ok {
		metrics.ObserveView(name, "cached")
		return v, nil
	}
	v, err := build(win, rows)
	metrics.ObserveView(name, resultCode(err))
	if err != nil {
		return nil, err
	}
	e.cache.set(key, ds.ID, v)
	return v, nil
}

func (e *Engine) filter(ds *model.DiagnosticDataset, w model.TimeWindow) (model.TimeWindow, []model.Record, error) {
	if ds == nil {
		return model.TimeWindow{}, nil, session.ErrNoDataset
	}
	win, err := resolveWindow(ds, w)
	if err != nil {
		return model.TimeWindow{}, nil, err
	}
	rows, err := window.Filter(ds.Series, win)
	if err != nil {
		return model.TimeWindow{}, nil, err
	}
	return win, rows, nil
}

// resolveWindow fills unset ends of w with the dataset bounds.
func resolveWindow(ds *model.DiagnosticDataset, w model.TimeWindow) (model.TimeWindow, error) {
	bounds, ok := window.Bounds(ds.Series)
	if ok {
		if w.Start.IsZero() {
			w.Start = bounds.Start
		}
		if w.End.IsZero() {
			w.End = bounds.End
		}
	}
	if err := w.Validate(); err != nil {
		return model.TimeWindow{}, err
	}
	return w, nil
}

func resultCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, session.ErrNoDataset):
		return "NO_DATASET"
	case errors.Is(err, session.ErrStale):
		return "STALE"
	default:
		return model.Code(err)
	}
}

// ErrorCode returns the stable transport code for err, including session errors.
func ErrorCode(err error) string {
	if errors.Is(err, session.ErrDatasetChanged) {
		return "DATASET_CHANGED"
	}
	return resultCode(err)
}
