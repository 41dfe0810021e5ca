package pipeline

import (
	"time"

	"storage-diagnostics/internal/analysis"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/reshape"
	"storage-diagnostics/internal/summary"
)

type SummaryView struct {
	DatasetID string                 `json:"dataset_id"`
	Metrics   model.SummaryMetrics   `json:"metrics"`
	Display   summary.DisplayMetrics `json:"display"`
}

// PlainView is the line chart input. SecondaryRows and SecondaryUnit are empty
// when no secondary group was selected. Each axis takes the unit of its first
// variable, even when the group mixes units.
type PlainView struct {
	DatasetID     string              `json:"dataset_id"`
	Window        model.TimeWindow    `json:"window"`
	PrimaryRows   []model.LongFormRow `json:"primary_rows"`
	SecondaryRows []model.LongFormRow `json:"secondary_rows,omitempty"`
	PrimaryUnit   string              `json:"primary_unit"`
	SecondaryUnit string              `json:"secondary_unit,omitempty"`
}

func (v PlainView) HasSecondary() bool { return v.SecondaryUnit != "" }

type FlowView struct {
	DatasetID  string              `json:"dataset_id"`
	Window     model.TimeWindow    `json:"window"`
	Rows       []model.LongFormRow `json:"rows"`
	ValueRange reshape.ValueRange  `json:"value_range"`
	Frames     []time.Time         `json:"frames"`
}

type StatsView struct {
	DatasetID string               `json:"dataset_id"`
	Window    model.TimeWindow     `json:"window"`
	Stats     analysis.WindowStats `json:"stats"`
}
