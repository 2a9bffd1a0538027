package sim

import "fmt"

// Event is a pending resumption scheduled on the simulator's clock.
// Events are ordered by Time, then by Seq (insertion order).
type Event struct {
	time float64  // Simulation time at which the event fires (minutes)
	seq  uint64   // Insertion sequence number, unique per simulator
	proc *Process // Process resumed by this event; nil for bare callbacks
	fire func()

	index int // position in the heap; -1 once popped
}

// Time returns the scheduled time of the event.
func (e *Event) Time() float64 {
	return e.time
}

// Seq returns the insertion sequence number used to break ties.
func (e *Event) Seq() uint64 {
	return e.seq
}

// Process returns the process this event resumes, or nil.
func (e *Event) Process() *Process {
	return e.proc
}

// Pending reports whether the event is still waiting in the queue.
func (e *Event) Pending() bool {
	return e.index >= 0
}

func (e *Event) String() string {
	if e.proc != nil {
		return fmt.Sprintf("event{t=%.3f seq=%d proc=%s}", e.time, e.seq, e.proc.name)
	}
	return fmt.Sprintf("event{t=%.3f seq=%d}", e.time, e.seq)
}
