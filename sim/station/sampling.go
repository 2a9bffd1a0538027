package station

// Sampling is the set of random-variate hooks the station draws from.
// Errors returned by a hook abort the run and are returned by Station.Run.
//
//go:generate mockgen -destination=mock_sampling_test.go -package=station . Sampling
type Sampling interface {
	// SampleLiters returns the volume bought by the next vehicle of fuel (> 0).
	SampleLiters(fuel string) (float64, error)
	// SamplePaymentTime returns the payment duration in minutes (>= 0).
	SamplePaymentTime() (float64, error)
	// SampleInterarrival returns the gap in minutes to the next arrival of a
	// stream running at ratePerHour (>= 0).
	SampleInterarrival(stream string, ratePerHour float64) (float64, error)
	// ChooseFuel picks the fuel of a vehicle in the combined stream.
	ChooseFuel(fuels []string, weights []float64) (string, error)
}
