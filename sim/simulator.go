// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time, the pending
// events and the process scheduler state.
type Simulator struct {
	clock float64
	// queue has all pending events, ordered by (time, seq)
	queue   *EventQueue
	nextSeq uint64
	nextPID uint64
	// active is the process whose step is currently executing, if any
	active  *Process
	stopped bool
	// Fired counts the events executed so far.
	Fired int
}

// NewSimulator creates a simulator with the clock at zero and no pending events.
func NewSimulator() *Simulator {
	return &Simulator{
		clock: 0,
		queue: NewEventQueue(),
	}
}

// Now returns the current simulation time in minutes.
func (sim *Simulator) Now() float64 {
	return sim.clock
}

// Pending returns the number of events waiting to fire.
func (sim *Simulator) Pending() int {
	return sim.queue.Len()
}

// Peek returns the next event to fire without removing it, or nil.
func (sim *Simulator) Peek() *Event {
	return sim.queue.Peek()
}

// Schedule registers fn to run after delay minutes of simulated time.
// A negative, NaN or infinite delay is a contract violation and panics.
func (sim *Simulator) Schedule(delay float64, fn func()) *Event {
	if fn == nil {
		panic("Simulator.Schedule: fn must not be nil")
	}
	return sim.schedule(delay, nil, fn)
}

func (sim *Simulator) schedule(delay float64, proc *Process, fn func()) *Event {
	if delay < 0 || math.IsNaN(delay) || math.IsInf(delay, 0) {
		panic(fmt.Sprintf("Simulator.Schedule: invalid delay %v at t=%.6f", delay, sim.clock))
	}
	sim.nextSeq++
	ev := &Event{
		time:  sim.clock + delay,
		seq:   sim.nextSeq,
		proc:  proc,
		fire:  fn,
		index: -1,
	}
	sim.queue.Schedule(ev)
	return ev
}

// Step fires the single earliest event, advancing the clock to its time.
// Returns false if there was nothing to fire.
func (sim *Simulator) Step() bool {
	ev := sim.queue.PopNext()
	if ev == nil {
		return false
	}
	sim.clock = ev.time
	sim.Fired++
	logrus.Debugf("[t %010.3f] firing %s", sim.clock, ev)
	ev.fire()
	return true
}

// RunUntil fires events while the next event's time is at or before horizon.
// Events beyond the horizon stay pending; call Shutdown to discard them.
// When the run ends by reaching the horizon the clock is advanced to it.
// A simulator that has been stopped does not fire further events.
func (sim *Simulator) RunUntil(horizon float64) {
	for !sim.stopped {
		next := sim.queue.Peek()
		if next == nil || next.time > horizon {
			break
		}
		sim.Step()
	}
	if !sim.stopped && horizon > sim.clock {
		sim.clock = horizon
	}
	logrus.Debugf("[t %010.3f] run ended, %d events pending", sim.clock, sim.queue.Len())
}

// Stop makes RunUntil return after the event being fired and keeps later
// calls from firing anything.
func (sim *Simulator) Stop() {
	sim.stopped = true
}

// Stopped reports whether Stop has been called.
func (sim *Simulator) Stopped() bool {
	return sim.stopped
}

// Shutdown discards every pending event and returns how many were dropped.
// Processes suspended on a dropped event are marked terminated.
func (sim *Simulator) Shutdown() int {
	for _, ev := range sim.queue.events {
		if ev.proc != nil {
			ev.proc.pending = nil
			ev.proc.state = ProcessTerminated
		}
	}
	n := sim.queue.Clear()
	if n > 0 {
		logrus.Debugf("[t %010.3f] discarded %d unfired events", sim.clock, n)
	}
	return n
}
