// Package station models a multi-fuel filling station on top of the sim kernel:
// one pump pool per fuel type, arrival generators that spawn vehicles, and a
// customer process per vehicle that queues, fuels, pays and leaves.
package station

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/station-sim/station-sim/sim"
)

// PoolStats summarizes a fuel's pump pool at the end of a run.
type PoolStats struct {
	Capacity int
	sim.ResourceStats
	Utilization  float64 // mean fraction of pumps busy
	MeanQueueLen float64 // time-average number of waiting vehicles
}

// Result is the outcome of one station run.
type Result struct {
	Config    Config
	Metrics   *Recorder
	Pools     map[string]PoolStats
	Arrivals  map[string]int
	InStation map[string]int // vehicles still present at the horizon

	EventsFired   int
	EventsDropped int // pending events discarded at shutdown
}

// Station owns the simulator, the pump pools and the metric recorder of one run.
type Station struct {
	cfg     Config
	hooks   Sampling
	sim     *sim.Simulator
	pools   map[string]*sim.Resource
	metrics *Recorder

	arrivals map[string]int
	present  map[string]int
	err      error
	hasRun   bool
}

// NewStation validates cfg and builds a station ready to Run.
func NewStation(cfg Config, hooks Sampling) (*Station, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hooks == nil {
		return nil, fmt.Errorf("%w: sampling hooks must not be nil", ErrInvalidConfig)
	}
	s := &Station{
		cfg:      cfg,
		hooks:    hooks,
		sim:      sim.NewSimulator(),
		pools:    make(map[string]*sim.Resource, len(cfg.Fuels)),
		metrics:  NewRecorder(cfg.FuelNames()...),
		arrivals: make(map[string]int, len(cfg.Fuels)),
		present:  make(map[string]int, len(cfg.Fuels)),
	}
	for _, f := range cfg.Fuels {
		s.pools[f.Name] = sim.NewResource(s.sim, f.Name, f.Pumps)
	}
	return s, nil
}

// Simulator returns the underlying simulator.
func (s *Station) Simulator() *sim.Simulator {
	return s.sim
}

// Pool returns the pump pool of a fuel, or nil.
func (s *Station) Pool(fuel string) *sim.Resource {
	return s.pools[fuel]
}

// Present returns the number of vehicles of a fuel currently at the station.
func (s *Station) Present(fuel string) int {
	return s.present[fuel]
}

// Metrics returns the recorder being filled by the run.
func (s *Station) Metrics() *Recorder {
	return s.metrics
}

// fail records the first hook error and stops the simulation.
func (s *Station) fail(err error) {
	if s.err != nil {
		return
	}
	s.err = err
	logrus.Errorf("[t %010.3f] aborting run: %v", s.sim.Now(), err)
	s.sim.Stop()
}

// arrive spawns the customer process of a new vehicle.
func (s *Station) arrive(fuel string) {
	s.arrivals[fuel]++
	c := &customer{
		st:   s,
		name: fmt.Sprintf("%s-%d", fuel, s.arrivals[fuel]),
		fuel: fuel,
		pool: s.pools[fuel],
	}
	s.sim.Spawn(c.name, c.arrive)
}

// Run simulates arrivals up to the horizon and returns the recorded metrics.
// Vehicles still at the station when the horizon is reached are not completed.
// A failing sampling hook aborts the run; its error is returned wrapped.
func (s *Station) Run() (*Result, error) {
	if s.hasRun {
		panic("Station.Run() called more than once")
	}
	s.hasRun = true

	logrus.Infof("Starting station run: %d fuel types, horizon=%.1f min, mode=%s, seed=%d",
		len(s.cfg.Fuels), s.cfg.Horizon, s.cfg.Mode(), s.cfg.Seed)

	s.startGenerators()
	s.sim.RunUntil(s.cfg.Horizon)

	res := &Result{
		Config:      s.cfg,
		Metrics:     s.metrics,
		Pools:       make(map[string]PoolStats, len(s.pools)),
		Arrivals:    make(map[string]int, len(s.pools)),
		InStation:   make(map[string]int, len(s.pools)),
		EventsFired: s.sim.Fired,
	}
	for _, f := range s.cfg.Fuels {
		pool := s.pools[f.Name]
		st := pool.Stats()
		res.Pools[f.Name] = PoolStats{
			Capacity:      pool.Capacity(),
			ResourceStats: st,
			Utilization:   st.Utilization(pool.Capacity()),
			MeanQueueLen:  st.MeanQueueLen(),
		}
		res.Arrivals[f.Name] = s.arrivals[f.Name]
		res.InStation[f.Name] = s.present[f.Name]
	}
	res.EventsDropped = s.sim.Shutdown()

	if s.err != nil {
		return res, s.err
	}
	logrus.Infof("Station run complete at t=%.1f: %d events fired, %d discarded", s.sim.Now(), res.EventsFired, res.EventsDropped)
	return res, nil
}
