package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ProcessState is the lifecycle state of a Process.
type ProcessState int

const (
	// ProcessRunning means the process's current step is executing.
	ProcessRunning ProcessState = iota
	// ProcessScheduled means the process is suspended on a pending event.
	ProcessScheduled
	// ProcessWaiting means the process is queued on a resource.
	ProcessWaiting
	// ProcessTerminated means the process finished or was discarded.
	ProcessTerminated
)

func (s ProcessState) String() string {
	switch s {
	case ProcessRunning:
		return "running"
	case ProcessScheduled:
		return "scheduled"
	case ProcessWaiting:
		return "waiting"
	case ProcessTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
}

// Step is one atomic slice of a process's logic. A step suspends the process
// by calling Timeout or Resource.Request, passing the step to resume with.
// A step that returns without suspending terminates the process.
type Step func(p *Process)

// Process is a cooperative unit of execution driven by the simulator.
// It holds at most one pending event at any time.
type Process struct {
	id      uint64
	name    string
	sim     *Simulator
	state   ProcessState
	pending *Event
	request *Request // set while queued on a resource
}

// Spawn creates a process and runs body immediately, at the current time,
// until its first suspension point.
func (sim *Simulator) Spawn(name string, body Step) *Process {
	if body == nil {
		panic("Simulator.Spawn: body must not be nil")
	}
	sim.nextPID++
	p := &Process{
		id:   sim.nextPID,
		name: name,
		sim:  sim,
	}
	logrus.Debugf("[t %010.3f] spawn %s (pid %d)", sim.clock, name, p.id)
	sim.run(p, body)
	return p
}

// run executes one step of p. Nested spawns save and restore the active process.
func (sim *Simulator) run(p *Process, step Step) {
	prev := sim.active
	sim.active = p
	p.state = ProcessRunning
	step(p)
	sim.active = prev
	if p.state == ProcessRunning {
		p.state = ProcessTerminated
		logrus.Debugf("[t %010.3f] %s terminated", sim.clock, p.name)
	}
}

func (p *Process) resumeWith(next Step) func() {
	return func() {
		p.pending = nil
		p.sim.run(p, next)
	}
}

// mustSuspend panics unless p is the running process and has not suspended yet.
func (p *Process) mustSuspend(op string) {
	if p.sim.active != p {
		panic(fmt.Sprintf("%s: process %s is not the running process", op, p.name))
	}
	if p.state != ProcessRunning {
		panic(fmt.Sprintf("%s: process %s already %s in this step", op, p.name, p.state))
	}
}

// Timeout suspends p for delay minutes and resumes it with next.
func (p *Process) Timeout(delay float64, next Step) *Event {
	p.mustSuspend("Timeout")
	if next == nil {
		panic("Timeout: next must not be nil")
	}
	p.pending = p.sim.schedule(delay, p, p.resumeWith(next))
	p.state = ProcessScheduled
	return p.pending
}

// wake schedules p to resume with next at the current time.
func (p *Process) wake(next Step) {
	p.request = nil
	p.pending = p.sim.schedule(0, p, p.resumeWith(next))
	p.state = ProcessScheduled
}

// ID returns the process identifier, unique within its simulator.
func (p *Process) ID() uint64 {
	return p.id
}

// Name returns the name the process was spawned with.
func (p *Process) Name() string {
	return p.name
}

// State returns the current lifecycle state.
func (p *Process) State() ProcessState {
	return p.state
}

// Pending returns the event the process is suspended on, or nil.
func (p *Process) Pending() *Event {
	return p.pending
}

// Now returns the simulator's current time.
func (p *Process) Now() float64 {
	return p.sim.clock
}

// Simulator returns the simulator that owns p.
func (p *Process) Simulator() *Simulator {
	return p.sim
}
