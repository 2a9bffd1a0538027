package workload

import (
	"fmt"

	"github.com/station-sim/station-sim/sim/station"
)

// Build validates spec and assembles a station wired to its samplers.
func Build(spec *ScenarioSpec) (*station.Station, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
	}
	hooks, err := NewHooks(spec)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
	}
	return station.NewStation(spec.StationConfig(), hooks)
}

// Run builds and runs spec to completion.
func Run(spec *ScenarioSpec) (*station.Result, error) {
	st, err := Build(spec)
	if err != nil {
		return nil, err
	}
	return st.Run()
}
