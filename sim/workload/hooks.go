package workload

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/station-sim/station-sim/sim"
	"github.com/station-sim/station-sim/sim/station"
)

// Hooks draws the station's random variates from a scenario's distributions.
// Each quantity reads its own RNG subsystem, so adding a fuel or switching the
// arrival mode leaves the other streams untouched.
type Hooks struct {
	rng      *sim.PartitionedRNG
	liters   map[string]Sampler
	payment  Sampler
	arrivals map[string]ArrivalSampler
	specs    map[string]ArrivalSpec
}

var _ station.Sampling = (*Hooks)(nil)

// NewHooks builds the samplers of spec, seeded from spec.Seed.
func NewHooks(spec *ScenarioSpec) (*Hooks, error) {
	payment, err := NewSampler(spec.Payment)
	if err != nil {
		return nil, fmt.Errorf("%w: payment_distribution: %v", station.ErrInvalidConfig, err)
	}
	h := &Hooks{
		rng:      sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)),
		liters:   make(map[string]Sampler, len(spec.Fuels)),
		payment:  payment,
		arrivals: make(map[string]ArrivalSampler),
		specs:    make(map[string]ArrivalSpec, len(spec.Fuels)),
	}
	for _, f := range spec.Fuels {
		s, err := NewSampler(f.Liters)
		if err != nil {
			return nil, fmt.Errorf("%w: fuel %q liters_distribution: %v", station.ErrInvalidConfig, f.Name, err)
		}
		h.liters[f.Name] = s
		h.specs[f.Name] = f.Arrival
	}
	return h, nil
}

func (h *Hooks) SampleLiters(fuel string) (float64, error) {
	s, ok := h.liters[fuel]
	if !ok {
		return 0, fmt.Errorf("no liters distribution for fuel %q", fuel)
	}
	return s.Sample(h.rng.ForSubsystem(sim.SubsystemLiters(fuel))), nil
}

func (h *Hooks) SamplePaymentTime() (float64, error) {
	return h.payment.Sample(h.rng.ForSubsystem(sim.SubsystemPayment)), nil
}

// SampleInterarrival draws the next gap of a stream. Streams named after a
// fuel use that fuel's arrival process; any other stream is Poisson.
func (h *Hooks) SampleInterarrival(stream string, ratePerHour float64) (float64, error) {
	if !(ratePerHour > 0) || math.IsInf(ratePerHour, 0) {
		return 0, fmt.Errorf("stream %q: rate must be finite and positive, got %v", stream, ratePerHour)
	}
	s, ok := h.arrivals[stream]
	if !ok {
		s = NewArrivalSampler(h.specs[stream], ratePerHour)
		h.arrivals[stream] = s
	}
	return s.SampleIAT(h.rng.ForSubsystem(sim.SubsystemArrivals(stream))), nil
}

// ChooseFuel draws a fuel with probability proportional to its weight.
func (h *Hooks) ChooseFuel(fuels []string, weights []float64) (string, error) {
	if len(fuels) == 0 || len(fuels) != len(weights) {
		return "", fmt.Errorf("choosing among %d fuels with %d weights", len(fuels), len(weights))
	}
	total := 0.0
	for i, w := range weights {
		if !(w >= 0) || math.IsInf(w, 0) {
			return "", fmt.Errorf("weight of %q must be finite and non-negative, got %v", fuels[i], w)
		}
		total += w
	}
	if total <= 0 {
		return "", fmt.Errorf("fuel weights sum to zero")
	}
	idx := int(distuv.NewCategorical(weights, h.rng.ForSubsystem(sim.SubsystemFuelChoice)).Rand())
	return fuels[idx], nil
}
