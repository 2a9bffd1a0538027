package station

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid station configuration")

// Arrival modes.
const (
	// ArrivalPerFuel runs one independent arrival stream per fuel type.
	ArrivalPerFuel = "per_fuel"
	// ArrivalCombined runs a single stream at the summed rate and draws the
	// fuel of each vehicle with probability proportional to its rate.
	ArrivalCombined = "combined"
)

// CombinedStream is the stream name passed to SampleInterarrival in combined mode.
const CombinedStream = "combined"

var validArrivalModes = map[string]bool{
	"": true, ArrivalPerFuel: true, ArrivalCombined: true,
}

// FuelConfig configures the pump pool and demand of one fuel type.
type FuelConfig struct {
	Name        string
	Pumps       int     // pool capacity (pipes serving this fuel)
	ArrivalRate float64 // vehicles/hour
}

// Config is everything the station needs at construction.
type Config struct {
	Fuels       []FuelConfig
	FlowRate    float64 // liters/minute, shared by all pumps
	Horizon     float64 // minutes
	Seed        int64
	ArrivalMode string // ArrivalPerFuel (default) or ArrivalCombined
}

// Mode returns the effective arrival mode.
func (c Config) Mode() string {
	if c.ArrivalMode == "" {
		return ArrivalPerFuel
	}
	return c.ArrivalMode
}

// Fuel looks up a fuel by name.
func (c Config) Fuel(name string) (FuelConfig, bool) {
	for _, f := range c.Fuels {
		if f.Name == name {
			return f, true
		}
	}
	return FuelConfig{}, false
}

// FuelNames returns the fuel names in configuration order.
func (c Config) FuelNames() []string {
	names := make([]string, len(c.Fuels))
	for i, f := range c.Fuels {
		names[i] = f.Name
	}
	return names
}

// Validate checks that the configuration can be simulated.
// Every returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if len(c.Fuels) == 0 {
		return fmt.Errorf("%w: at least one fuel type required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Fuels))
	for i, f := range c.Fuels {
		prefix := fmt.Sprintf("fuels[%d]", i)
		if f.Name == "" {
			return fmt.Errorf("%w: %s.name must not be empty", ErrInvalidConfig, prefix)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s.name %q is duplicated", ErrInvalidConfig, prefix, f.Name)
		}
		seen[f.Name] = true
		if f.Pumps <= 0 {
			return fmt.Errorf("%w: %s.pumps must be positive, got %d", ErrInvalidConfig, prefix, f.Pumps)
		}
		if err := validateFinitePositive(prefix+".arrival_rate", f.ArrivalRate); err != nil {
			return err
		}
	}
	if err := validateFinitePositive("flow_rate", c.FlowRate); err != nil {
		return err
	}
	if math.IsNaN(c.Horizon) || math.IsInf(c.Horizon, 0) || c.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be a finite non-negative number, got %v", ErrInvalidConfig, c.Horizon)
	}
	if !validArrivalModes[c.ArrivalMode] {
		return fmt.Errorf("%w: unknown arrival mode %q; valid: %s, %s", ErrInvalidConfig, c.ArrivalMode, ArrivalPerFuel, ArrivalCombined)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidConfig, name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, val)
	}
	return nil
}
