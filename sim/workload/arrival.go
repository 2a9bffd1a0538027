package workload

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ArrivalSampler generates inter-arrival gaps for one arrival stream.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in minutes (>= 0).
	SampleIAT(rng *rand.Rand) float64
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1).
type PoissonSampler struct {
	ratePerMinute float64
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) float64 {
	return distuv.Exponential{Rate: s.ratePerMinute, Src: rng}.Rand()
}

// ConstantArrivalSampler spaces arrivals exactly 1/rate apart.
type ConstantArrivalSampler struct {
	gap float64
}

func (s *ConstantArrivalSampler) SampleIAT(_ *rand.Rand) float64 {
	return s.gap
}

// NewArrivalSampler creates an ArrivalSampler from a spec and rate.
// ratePerHour is the stream's arrival rate in vehicles/hour.
func NewArrivalSampler(spec ArrivalSpec, ratePerHour float64) ArrivalSampler {
	// Defensive floor: avoid division by zero or numerical instability
	if ratePerHour < 1e-12 {
		ratePerHour = 1e-12
	}
	ratePerMinute := ratePerHour / 60.0
	switch spec.Process {
	case "constant":
		return &ConstantArrivalSampler{gap: 1 / ratePerMinute}
	default:
		return &PoissonSampler{ratePerMinute: ratePerMinute}
	}
}
