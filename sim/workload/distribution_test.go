package workload

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestTriangularSampler_MeanAndRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	s, err := NewSampler(DistSpec{
		Type:   "triangular",
		Params: map[string]float64{"min": 10, "mode": 25, "max": 40},
	})
	if err != nil {
		t.Fatal(err)
	}
	n := 10000
	sum := 0.0
	for i := 0; i < n; i++ {
		v := s.Sample(rng)
		if v < 10 || v > 40 {
			t.Fatalf("sample %d: %v outside [10, 40]", i, v)
		}
		sum += v
	}
	// mean of a triangle is (min+mode+max)/3
	mean := sum / float64(n)
	if math.Abs(mean-25)/25 > 0.02 {
		t.Errorf("triangular mean = %.2f, want ≈ 25 (within 2%%)", mean)
	}
}

func TestTriangularSampler_SkewedModeShiftsMean(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	s, err := NewSampler(DistSpec{
		Type:   "triangular",
		Params: map[string]float64{"min": 20, "mode": 50, "max": 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}
	want := (20.0 + 50 + 100) / 3
	if mean := sum / float64(n); math.Abs(mean-want)/want > 0.02 {
		t.Errorf("triangular mean = %.2f, want ≈ %.2f", mean, want)
	}
}

func TestTriangularSampler_Degenerate(t *testing.T) {
	s, err := NewSampler(DistSpec{Type: "triangular", Params: map[string]float64{"min": 3, "mode": 3, "max": 3}})
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Sample(rand.New(rand.NewPCG(1, 1))); v != 3 {
		t.Errorf("degenerate triangle sampled %v, want 3", v)
	}
}

func TestExponentialSampler_MeanMatchesParam(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	s, err := NewSampler(DistSpec{Type: "exponential", Params: map[string]float64{"mean": 2.5}})
	if err != nil {
		t.Fatal(err)
	}
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}
	if mean := sum / float64(n); math.Abs(mean-2.5)/2.5 > 0.05 {
		t.Errorf("exponential mean = %.3f, want ≈ 2.5 (within 5%%)", mean)
	}
}

func TestUniformSampler_Range(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	s, err := NewSampler(DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 2}})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		if v := s.Sample(rng); v < 1 || v > 2 {
			t.Fatalf("sample %d: %v outside [1, 2]", i, v)
		}
	}
}

func TestConstantSampler_ReturnsValue(t *testing.T) {
	s, err := NewSampler(DistSpec{Type: "constant", Params: map[string]float64{"value": 7.5}})
	if err != nil {
		t.Fatal(err)
	}
	if v := s.Sample(nil); v != 7.5 {
		t.Errorf("constant sampled %v, want 7.5", v)
	}
}

func TestNewSampler_InvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
	}{
		{"unknown type", DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 1}}},
		{"missing mode", DistSpec{Type: "triangular", Params: map[string]float64{"min": 1, "max": 2}}},
		{"mode above max", DistSpec{Type: "triangular", Params: map[string]float64{"min": 1, "mode": 5, "max": 2}}},
		{"negative param", DistSpec{Type: "triangular", Params: map[string]float64{"min": -1, "mode": 0, "max": 1}}},
		{"NaN param", DistSpec{Type: "constant", Params: map[string]float64{"value": math.NaN()}}},
		{"zero exponential mean", DistSpec{Type: "exponential", Params: map[string]float64{"mean": 0}}},
		{"inverted uniform", DistSpec{Type: "uniform", Params: map[string]float64{"min": 3, "max": 2}}},
		{"missing value", DistSpec{Type: "constant"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSampler(tt.spec); err == nil {
				t.Errorf("NewSampler(%+v) = nil error, want error", tt.spec)
			}
		})
	}
}
