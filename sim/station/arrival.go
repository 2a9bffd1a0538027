package station

import (
	"fmt"
	"math"

	"github.com/station-sim/station-sim/sim"
)

// picker decides the fuel of the next vehicle of a stream.
type picker func() (string, error)

// generate returns the body of an arrival generator: sample a gap, sleep,
// spawn a customer, repeat until the horizon.
func (s *Station) generate(stream string, ratePerHour float64, pick picker) sim.Step {
	var next sim.Step
	next = func(p *sim.Process) {
		if p.Now() >= s.cfg.Horizon {
			return
		}
		gap, err := s.hooks.SampleInterarrival(stream, ratePerHour)
		if err != nil {
			s.fail(fmt.Errorf("sampling inter-arrival time for %s: %w", stream, err))
			return
		}
		if !(gap >= 0) || math.IsInf(gap, 0) {
			s.fail(fmt.Errorf("sampling inter-arrival time for %s: got %v, want a finite non-negative value", stream, gap))
			return
		}
		p.Timeout(gap, func(p *sim.Process) {
			fuel, err := pick()
			if err != nil {
				s.fail(fmt.Errorf("choosing fuel for %s: %w", stream, err))
				return
			}
			s.arrive(fuel)
			next(p)
		})
	}
	return next
}

// startGenerators spawns the arrival streams for the configured mode.
func (s *Station) startGenerators() {
	if s.cfg.Mode() == ArrivalCombined {
		names := s.cfg.FuelNames()
		weights := make([]float64, len(s.cfg.Fuels))
		total := 0.0
		for i, f := range s.cfg.Fuels {
			weights[i] = f.ArrivalRate
			total += f.ArrivalRate
		}
		pick := func() (string, error) {
			fuel, err := s.hooks.ChooseFuel(names, weights)
			if err != nil {
				return "", err
			}
			if _, ok := s.pools[fuel]; !ok {
				return "", fmt.Errorf("unknown fuel %q", fuel)
			}
			return fuel, nil
		}
		s.sim.Spawn("arrivals/"+CombinedStream, s.generate(CombinedStream, total, pick))
		return
	}
	for _, f := range s.cfg.Fuels {
		fuel := f.Name
		pick := func() (string, error) { return fuel, nil }
		s.sim.Spawn("arrivals/"+fuel, s.generate(fuel, f.ArrivalRate, pick))
	}
}
