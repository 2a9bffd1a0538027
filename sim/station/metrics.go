package station

// QueueSample is the queue length of a fuel's pool observed at a time.
type QueueSample struct {
	Time   float64 `json:"time"`
	Length int     `json:"length"`
}

// FuelMetrics holds the raw metric sequences of one fuel type, in recording order.
type FuelMetrics struct {
	WaitTimes    []float64     // arrival → grant
	TotalTimes   []float64     // arrival → departure
	ServiceTimes []float64     // grant → departure
	QueueSamples []QueueSample // at each arrival and each departure
}

// Recorder is an append-only sink for per-fuel metrics. It does no aggregation.
type Recorder struct {
	fuels map[string]*FuelMetrics
	order []string
}

// NewRecorder creates a recorder with the given fuels registered in order.
func NewRecorder(fuels ...string) *Recorder {
	r := &Recorder{fuels: make(map[string]*FuelMetrics)}
	for _, f := range fuels {
		r.fuel(f)
	}
	return r
}

func (r *Recorder) fuel(name string) *FuelMetrics {
	if m, ok := r.fuels[name]; ok {
		return m
	}
	m := &FuelMetrics{}
	r.fuels[name] = m
	r.order = append(r.order, name)
	return m
}

func (r *Recorder) RecordWait(fuel string, v float64) {
	m := r.fuel(fuel)
	m.WaitTimes = append(m.WaitTimes, v)
}

func (r *Recorder) RecordTotal(fuel string, v float64) {
	m := r.fuel(fuel)
	m.TotalTimes = append(m.TotalTimes, v)
}

func (r *Recorder) RecordService(fuel string, v float64) {
	m := r.fuel(fuel)
	m.ServiceTimes = append(m.ServiceTimes, v)
}

func (r *Recorder) RecordQueueSample(fuel string, t float64, length int) {
	m := r.fuel(fuel)
	m.QueueSamples = append(m.QueueSamples, QueueSample{Time: t, Length: length})
}

// Fuel returns the metrics of a fuel. Unknown fuels yield empty metrics.
func (r *Recorder) Fuel(name string) FuelMetrics {
	if m, ok := r.fuels[name]; ok {
		return *m
	}
	return FuelMetrics{}
}

// Fuels returns the recorded fuel names in registration order.
func (r *Recorder) Fuels() []string {
	return append([]string(nil), r.order...)
}
