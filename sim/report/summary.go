// Package report turns the raw per-vehicle sequences of a station run into
// summary statistics, prints them and compares scenarios.
package report

import (
	"sort"

	"github.com/rs/xid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/station-sim/station-sim/sim/station"
)

// Distribution summarizes a sample of durations in minutes.
type Distribution struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P50   float64 `json:"p50"`
	P90   float64 `json:"p90"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Max   float64 `json:"max"`
}

// Describe computes the summary of xs. An empty sample yields the zero value.
func Describe(xs []float64) Distribution {
	if len(xs) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	d := Distribution{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		P50:   stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:   stat.Quantile(0.90, stat.LinInterp, sorted, nil),
		P95:   stat.Quantile(0.95, stat.LinInterp, sorted, nil),
		P99:   stat.Quantile(0.99, stat.LinInterp, sorted, nil),
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// FuelSummary is the per-fuel section of a scenario report.
type FuelSummary struct {
	Fuel      string `json:"fuel"`
	Pumps     int    `json:"pumps"`
	Arrivals  int    `json:"arrivals"`
	Completed int    `json:"completed"`
	InStation int    `json:"in_station"`

	Wait    Distribution `json:"wait_minutes"`
	Total   Distribution `json:"total_minutes"`
	Service Distribution `json:"service_minutes"`

	// fraction of served vehicles that waited at all
	ProbWait     float64 `json:"prob_wait"`
	Utilization  float64 `json:"utilization"`
	MeanQueueLen float64 `json:"mean_queue_len"`
	MaxQueueLen  int     `json:"max_queue_len"`

	QueueSamples []station.QueueSample `json:"queue_samples,omitempty"`
}

// ScenarioResult is the serializable report of one run.
type ScenarioResult struct {
	RunID         string        `json:"run_id"`
	Scenario      string        `json:"scenario"`
	Description   string        `json:"description,omitempty"`
	Seed          int64         `json:"seed"`
	Horizon       float64       `json:"horizon_minutes"`
	FlowRate      float64       `json:"flow_rate"`
	ArrivalMode   string        `json:"arrival_mode"`
	EventsFired   int           `json:"events_fired"`
	EventsDropped int           `json:"events_dropped"`
	Fuels         []FuelSummary `json:"fuels"`
}

// Options tunes Summarize.
type Options struct {
	// IncludeQueueSamples copies the raw queue-length series into the report.
	IncludeQueueSamples bool
}

// Summarize builds the report of a finished run. Fuels keep configuration order.
func Summarize(name, description string, res *station.Result, opts Options) ScenarioResult {
	out := ScenarioResult{
		RunID:         xid.New().String(),
		Scenario:      name,
		Description:   description,
		Seed:          res.Config.Seed,
		Horizon:       res.Config.Horizon,
		FlowRate:      res.Config.FlowRate,
		ArrivalMode:   res.Config.Mode(),
		EventsFired:   res.EventsFired,
		EventsDropped: res.EventsDropped,
		Fuels:         make([]FuelSummary, 0, len(res.Config.Fuels)),
	}
	for _, f := range res.Config.Fuels {
		m := res.Metrics.Fuel(f.Name)
		pool := res.Pools[f.Name]
		fs := FuelSummary{
			Fuel:         f.Name,
			Pumps:        f.Pumps,
			Arrivals:     res.Arrivals[f.Name],
			Completed:    len(m.TotalTimes),
			InStation:    res.InStation[f.Name],
			Wait:         Describe(m.WaitTimes),
			Total:        Describe(m.TotalTimes),
			Service:      Describe(m.ServiceTimes),
			ProbWait:     probPositive(m.WaitTimes),
			Utilization:  pool.Utilization,
			MeanQueueLen: pool.MeanQueueLen,
			MaxQueueLen:  pool.MaxQueueLen,
		}
		if opts.IncludeQueueSamples {
			fs.QueueSamples = append([]station.QueueSample(nil), m.QueueSamples...)
		}
		out.Fuels = append(out.Fuels, fs)
	}
	return out
}

func probPositive(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	n := 0
	for _, x := range xs {
		if x > 0 {
			n++
		}
	}
	return float64(n) / float64(len(xs))
}

// Fuel returns the summary of a fuel, or false.
func (r ScenarioResult) Fuel(name string) (FuelSummary, bool) {
	for _, f := range r.Fuels {
		if f.Fuel == name {
			return f, true
		}
	}
	return FuelSummary{}, false
}
