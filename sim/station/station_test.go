package station

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func singleFuelConfig(pumps int, horizon float64) Config {
	return Config{
		Fuels:    []FuelConfig{{Name: "Diesel", Pumps: pumps, ArrivalRate: 6}},
		FlowRate: 3,
		Horizon:  horizon,
	}
}

func TestStation_TwoSimultaneousArrivals_SinglePump(t *testing.T) {
	// GIVEN one pump, two vehicles arriving at t=0 needing exactly 5 minutes each
	ctrl := gomock.NewController(t)
	hooks := NewMockSampling(ctrl)
	gomock.InOrder(
		hooks.EXPECT().SampleInterarrival("Diesel", 6.0).Return(0.0, nil),
		hooks.EXPECT().SampleInterarrival("Diesel", 6.0).Return(0.0, nil),
		hooks.EXPECT().SampleInterarrival("Diesel", 6.0).Return(1000.0, nil),
	)
	hooks.EXPECT().SampleLiters("Diesel").Return(15.0, nil).Times(2) // 15 L at 3 L/min
	hooks.EXPECT().SamplePaymentTime().Return(0.0, nil).Times(2)

	st, err := NewStation(singleFuelConfig(1, 20), hooks)
	require.NoError(t, err)

	// WHEN the station runs
	res, err := st.Run()
	require.NoError(t, err)

	// THEN the first is served at once and the second waits for it
	m := res.Metrics.Fuel("Diesel")
	assert.Equal(t, []float64{0, 5}, m.WaitTimes)
	assert.Equal(t, []float64{5, 10}, m.TotalTimes)
	assert.Equal(t, []float64{5, 5}, m.ServiceTimes)

	// AND each arrival sees itself waiting, each departure leaves an empty queue
	assert.Equal(t, []QueueSample{{0, 1}, {0, 1}, {5, 0}, {10, 0}}, m.QueueSamples)

	assert.Equal(t, 2, res.Arrivals["Diesel"])
	assert.Equal(t, 0, res.InStation["Diesel"])
	assert.Equal(t, 1, res.EventsDropped, "the arrival beyond the horizon is discarded")
	assert.Equal(t, 1, res.Pools["Diesel"].MaxQueueLen)
	assert.InDelta(t, 0.5, res.Pools["Diesel"].Utilization, 1e-9)
}

func TestStation_ZeroHorizon_NoArrivals(t *testing.T) {
	// GIVEN a zero horizon and hooks that must never be called
	ctrl := gomock.NewController(t)
	hooks := NewMockSampling(ctrl)

	st, err := NewStation(singleFuelConfig(2, 0), hooks)
	require.NoError(t, err)

	// WHEN run
	res, err := st.Run()
	require.NoError(t, err)

	// THEN every metric sequence is empty
	m := res.Metrics.Fuel("Diesel")
	assert.Empty(t, m.WaitTimes)
	assert.Empty(t, m.TotalTimes)
	assert.Empty(t, m.ServiceTimes)
	assert.Empty(t, m.QueueSamples)
	assert.Equal(t, 0, res.Arrivals["Diesel"])
}

func TestStation_HookError_AbortsRun(t *testing.T) {
	// GIVEN a liters hook that fails
	ctrl := gomock.NewController(t)
	hooks := NewMockSampling(ctrl)
	boom := errors.New("liters table unavailable")
	hooks.EXPECT().SampleInterarrival("Diesel", 6.0).Return(1.0, nil).AnyTimes()
	hooks.EXPECT().SampleLiters("Diesel").Return(0.0, boom)

	st, err := NewStation(singleFuelConfig(1, 60), hooks)
	require.NoError(t, err)

	// WHEN run
	res, err := st.Run()

	// THEN the hook's error is returned unchanged in the chain and the run stopped at t=1
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Diesel-1")
	assert.Equal(t, 1.0, st.Simulator().Now())
	assert.Equal(t, []float64{0}, res.Metrics.Fuel("Diesel").WaitTimes)
	assert.Empty(t, res.Metrics.Fuel("Diesel").TotalTimes)
}

func TestStation_InvalidSamples_AbortRun(t *testing.T) {
	tests := []struct {
		name   string
		expect func(h *MockSampling)
		want   string
	}{
		{
			name: "negative gap",
			expect: func(h *MockSampling) {
				h.EXPECT().SampleInterarrival("Diesel", 6.0).Return(-1.0, nil)
			},
			want: "inter-arrival",
		},
		{
			name: "zero liters",
			expect: func(h *MockSampling) {
				h.EXPECT().SampleInterarrival("Diesel", 6.0).Return(2.0, nil).AnyTimes()
				h.EXPECT().SampleLiters("Diesel").Return(0.0, nil)
			},
			want: "liters",
		},
		{
			name: "negative payment",
			expect: func(h *MockSampling) {
				h.EXPECT().SampleInterarrival("Diesel", 6.0).Return(2.0, nil).AnyTimes()
				h.EXPECT().SampleLiters("Diesel").Return(10.0, nil)
				h.EXPECT().SamplePaymentTime().Return(-0.1, nil)
			},
			want: "payment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			hooks := NewMockSampling(ctrl)
			tt.expect(hooks)

			st, err := NewStation(singleFuelConfig(1, 60), hooks)
			require.NoError(t, err)
			_, err = st.Run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStation_CombinedMode_DrawsFuelPerArrival(t *testing.T) {
	// GIVEN a combined stream at 8+4 vehicles/hour arriving every 3 minutes
	ctrl := gomock.NewController(t)
	hooks := NewMockSampling(ctrl)
	names := []string{"Octane92", "Diesel"}
	weights := []float64{8, 4}
	hooks.EXPECT().SampleInterarrival(CombinedStream, 12.0).Return(3.0, nil).Times(4)
	gomock.InOrder(
		hooks.EXPECT().ChooseFuel(names, weights).Return("Diesel", nil),
		hooks.EXPECT().ChooseFuel(names, weights).Return("Octane92", nil),
		hooks.EXPECT().ChooseFuel(names, weights).Return("Diesel", nil),
	)
	hooks.EXPECT().SampleLiters(gomock.Any()).Return(3.0, nil).Times(3)
	hooks.EXPECT().SamplePaymentTime().Return(0.5, nil).Times(3)

	cfg := Config{
		Fuels: []FuelConfig{
			{Name: "Octane92", Pumps: 2, ArrivalRate: 8},
			{Name: "Diesel", Pumps: 4, ArrivalRate: 4},
		},
		FlowRate:    3,
		Horizon:     11,
		ArrivalMode: ArrivalCombined,
	}
	st, err := NewStation(cfg, hooks)
	require.NoError(t, err)

	// WHEN run for 11 minutes (arrivals at 3, 6, 9)
	res, err := st.Run()
	require.NoError(t, err)

	// THEN each vehicle went to the pool of its drawn fuel
	assert.Equal(t, map[string]int{"Octane92": 1, "Diesel": 2}, res.Arrivals)
	assert.Equal(t, []float64{1.5, 1.5}, res.Metrics.Fuel("Diesel").TotalTimes)
	assert.Equal(t, []float64{1.5}, res.Metrics.Fuel("Octane92").TotalTimes)
}

func TestStation_CombinedMode_UnknownFuel_Fails(t *testing.T) {
	ctrl := gomock.NewController(t)
	hooks := NewMockSampling(ctrl)
	hooks.EXPECT().SampleInterarrival(CombinedStream, 6.0).Return(1.0, nil)
	hooks.EXPECT().ChooseFuel(gomock.Any(), gomock.Any()).Return("LPG", nil)

	cfg := singleFuelConfig(1, 10)
	cfg.ArrivalMode = ArrivalCombined
	st, err := NewStation(cfg, hooks)
	require.NoError(t, err)

	_, err = st.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown fuel "LPG"`)
}

func TestStation_UnfinishedVehicles_AtHorizon(t *testing.T) {
	// GIVEN arrivals every minute and a 10-minute service on one pump
	ctrl := gomock.NewController(t)
	hooks := NewMockSampling(ctrl)
	hooks.EXPECT().SampleInterarrival("Diesel", 6.0).Return(1.0, nil).AnyTimes()
	hooks.EXPECT().SampleLiters("Diesel").Return(30.0, nil).AnyTimes()
	hooks.EXPECT().SamplePaymentTime().Return(0.0, nil).AnyTimes()

	st, err := NewStation(singleFuelConfig(1, 25), hooks)
	require.NoError(t, err)

	// WHEN run to t=25
	res, err := st.Run()
	require.NoError(t, err)

	// THEN 25 arrived, 2 completed (at t=11 and t=21), the rest are still there
	m := res.Metrics.Fuel("Diesel")
	assert.Equal(t, 25, res.Arrivals["Diesel"])
	assert.Equal(t, []float64{10, 19}, m.TotalTimes)
	assert.Equal(t, []float64{0, 9, 18}, m.WaitTimes)
	assert.Equal(t, 23, res.InStation["Diesel"])
	assert.Equal(t, 22, st.Pool("Diesel").QueueLen())
}

func TestStation_Run_Twice_Panics(t *testing.T) {
	ctrl := gomock.NewController(t)
	st, err := NewStation(singleFuelConfig(1, 0), NewMockSampling(ctrl))
	require.NoError(t, err)
	_, err = st.Run()
	require.NoError(t, err)
	assert.Panics(t, func() { _, _ = st.Run() })
}

func TestNewStation_NilHooks(t *testing.T) {
	_, err := NewStation(singleFuelConfig(1, 10), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
