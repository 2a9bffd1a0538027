package workload

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws a non-negative real quantity (liters, minutes).
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// TriangularSampler draws from a triangular distribution on [min, max] peaking at mode.
type TriangularSampler struct {
	min, mode, max float64
}

func (s *TriangularSampler) Sample(rng *rand.Rand) float64 {
	if s.min == s.max {
		return s.min
	}
	return distuv.NewTriangle(s.min, s.max, s.mode, rng).Rand()
}

// ExponentialSampler draws exponentially-distributed values with the given mean.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return distuv.Exponential{Rate: 1 / s.mean, Src: rng}.Rand()
}

// UniformSampler draws uniformly from [min, max).
type UniformSampler struct {
	min, max float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	if s.min == s.max {
		return s.min
	}
	return distuv.Uniform{Min: s.min, Max: s.max, Src: rng}.Rand()
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value float64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 {
	return s.value
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewSampler creates a Sampler from a DistSpec.
// All parameters must be finite and non-negative.
func NewSampler(spec DistSpec) (Sampler, error) {
	for name, val := range spec.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
			return nil, fmt.Errorf("parameter %q must be a finite non-negative number, got %v", name, val)
		}
	}
	p := spec.Params
	switch spec.Type {
	case "triangular":
		if err := requireParam(p, "min", "mode", "max"); err != nil {
			return nil, err
		}
		if !(p["min"] <= p["mode"] && p["mode"] <= p["max"]) {
			return nil, fmt.Errorf("triangular requires min <= mode <= max, got %v/%v/%v", p["min"], p["mode"], p["max"])
		}
		if p["min"] == p["max"] && p["mode"] != p["min"] {
			return nil, fmt.Errorf("triangular with min == max requires mode == min")
		}
		return &TriangularSampler{min: p["min"], mode: p["mode"], max: p["max"]}, nil

	case "exponential":
		if err := requireParam(p, "mean"); err != nil {
			return nil, err
		}
		if p["mean"] <= 0 {
			return nil, fmt.Errorf("exponential mean must be positive, got %v", p["mean"])
		}
		return &ExponentialSampler{mean: p["mean"]}, nil

	case "uniform":
		if err := requireParam(p, "min", "max"); err != nil {
			return nil, err
		}
		if p["min"] > p["max"] {
			return nil, fmt.Errorf("uniform requires min <= max, got %v/%v", p["min"], p["max"])
		}
		return &UniformSampler{min: p["min"], max: p["max"]}, nil

	case "constant":
		if err := requireParam(p, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: p["value"]}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
