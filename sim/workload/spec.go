package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/station-sim/station-sim/sim/station"
)

// ScenarioSpec is the top-level scenario configuration.
// Loaded from YAML via LoadScenarioSpec(path).
type ScenarioSpec struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Seed        int64      `yaml:"seed"`
	Horizon     float64    `yaml:"horizon_minutes"`
	FlowRate    float64    `yaml:"flow_rate"`    // liters per minute
	ArrivalMode string     `yaml:"arrival_mode,omitempty"`
	Payment     DistSpec   `yaml:"payment_distribution"`
	Fuels       []FuelSpec `yaml:"fuels"`
}

// FuelSpec defines one fuel type: its pumps, demand and fill volumes.
type FuelSpec struct {
	Name        string      `yaml:"name"`
	Pumps       int         `yaml:"pumps"`
	ArrivalRate float64     `yaml:"arrival_rate"` // vehicles per hour
	Arrival     ArrivalSpec `yaml:"arrival,omitempty"`
	Liters      DistSpec    `yaml:"liters_distribution"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string `yaml:"process,omitempty"`
}

// DistSpec parameterizes a service-quantity distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

var validArrivalProcesses = map[string]bool{
	"": true, "poisson": true, "constant": true,
}

// LoadScenarioSpec reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario spec: %w", err)
	}
	spec, err := ParseScenarioSpec(data)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = path
	}
	return spec, nil
}

// ParseScenarioSpec parses a YAML scenario document.
func ParseScenarioSpec(data []byte) (*ScenarioSpec, error) {
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario spec: %w", err)
	}
	if spec.ArrivalMode == station.ArrivalCombined {
		for _, f := range spec.Fuels {
			if f.Arrival.Process != "" {
				logrus.Warnf("fuel %q: arrival process %q ignored in combined arrival mode", f.Name, f.Arrival.Process)
			}
		}
	}
	return &spec, nil
}

// Validate checks the scenario. Errors wrap station.ErrInvalidConfig.
func (s *ScenarioSpec) Validate() error {
	if err := s.StationConfig().Validate(); err != nil {
		return err
	}
	if err := validateDistSpec("payment_distribution", s.Payment); err != nil {
		return err
	}
	for i, f := range s.Fuels {
		prefix := fmt.Sprintf("fuels[%d]", i)
		if !validArrivalProcesses[f.Arrival.Process] {
			return fmt.Errorf("%w: %s: unknown arrival process %q; valid: poisson, constant",
				station.ErrInvalidConfig, prefix, f.Arrival.Process)
		}
		if err := validateDistSpec(prefix+".liters_distribution", f.Liters); err != nil {
			return err
		}
	}
	return nil
}

func validateDistSpec(prefix string, d DistSpec) error {
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %s.params.%s must be a finite number, got %v", station.ErrInvalidConfig, prefix, name, val)
		}
	}
	if _, err := NewSampler(d); err != nil {
		return fmt.Errorf("%w: %s: %v", station.ErrInvalidConfig, prefix, err)
	}
	return nil
}

// StationConfig projects the scenario onto the station's structural configuration.
func (s *ScenarioSpec) StationConfig() station.Config {
	cfg := station.Config{
		FlowRate:    s.FlowRate,
		Horizon:     s.Horizon,
		Seed:        s.Seed,
		ArrivalMode: s.ArrivalMode,
		Fuels:       make([]station.FuelConfig, 0, len(s.Fuels)),
	}
	for _, f := range s.Fuels {
		cfg.Fuels = append(cfg.Fuels, station.FuelConfig{Name: f.Name, Pumps: f.Pumps, ArrivalRate: f.ArrivalRate})
	}
	return cfg
}

// Clone returns a deep copy, so presets can be tweaked without aliasing.
func (s *ScenarioSpec) Clone() *ScenarioSpec {
	c := *s
	c.Payment = s.Payment.clone()
	c.Fuels = make([]FuelSpec, len(s.Fuels))
	for i, f := range s.Fuels {
		f.Liters = f.Liters.clone()
		c.Fuels[i] = f
	}
	return &c
}

func (d DistSpec) clone() DistSpec {
	out := DistSpec{Type: d.Type}
	if d.Params != nil {
		out.Params = make(map[string]float64, len(d.Params))
		for k, v := range d.Params {
			out.Params[k] = v
		}
	}
	return out
}
