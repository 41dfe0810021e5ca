package sample

import (
	"fmt"
	"strings"
)

// Schedule is a daily charge/discharge plan in HH:MM local clock time.
// PV surplus charges whenever there is headroom; the grid only tops the
// battery up inside the grid charge window.
type Schedule struct {
	GridChargeStart string `yaml:"grid_charge_start"`
	GridChargeEnd   string `yaml:"grid_charge_end"`
	DischargeStart  string `yaml:"discharge_start"`
	DischargeEnd    string `yaml:"discharge_end"`
}

type compiledSchedule struct {
	gcs, gce, ds, de int
}

func (s Schedule) compile() (compiledSchedule, error) {
	var c compiledSchedule
	var err error
	if c.gcs, err = parseHHMM(s.GridChargeStart); err != nil {
		return c, fmt.Errorf("grid_charge_start: %w", err)
	}
	if c.gce, err = parseHHMM(s.GridChargeEnd); err != nil {
		return c, fmt.Errorf("grid_charge_end: %w", err)
	}
	if c.ds, err = parseHHMM(s.DischargeStart); err != nil {
		return c, fmt.Errorf("discharge_start: %w", err)
	}
	if c.de, err = parseHHMM(s.DischargeEnd); err != nil {
		return c, fmt.Errorf("discharge_end: %w", err)
	}
	return c, nil
}

func (c compiledSchedule) gridCharging(mins int) bool { return inWindow(mins, c.gcs, c.gce) }
func (c compiledSchedule) discharging(mins int) bool  { return inWindow(mins, c.ds, c.de) }

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// inWindow checks whether tMins is in [start, end) on a 24h clock.
// start == end is an empty window; start > end wraps across midnight.
func inWindow(tMins, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return tMins >= start && tMins < end
	}
	return tMins >= start || tMins < end
}
