package sim

import (
	"container/heap"
	"fmt"
)

// EventQueue is a priority queue of pending events with deterministic ordering.
// Order by: time → sequence number.
// It never yields an event earlier than the last one it yielded.
type EventQueue struct {
	events   []*Event
	lastTime float64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		events: make([]*Event, 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Less implements heap.Interface with deterministic ordering
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]

	// Primary: time (earlier first)
	if ei.time != ej.time {
		return ei.time < ej.time
	}

	// Secondary: insertion order (FIFO among simultaneous events)
	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
	q.events[i].index = i
	q.events[j].index = j
}

// Push implements heap.Interface
func (q *EventQueue) Push(x any) {
	e := x.(*Event)
	e.index = len(q.events)
	q.events = append(q.events, e)
}

// Pop implements heap.Interface
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	q.events = old[0 : n-1]
	return e
}

// Schedule adds an event to the queue.
// Panics if the event is earlier than the last popped event.
func (q *EventQueue) Schedule(e *Event) {
	if e == nil {
		panic("EventQueue.Schedule: event must not be nil")
	}
	if e.time < q.lastTime {
		panic(fmt.Sprintf("EventQueue.Schedule: event at %.6f precedes last fired time %.6f", e.time, q.lastTime))
	}
	heap.Push(q, e)
}

// PopNext removes and returns the next event, or nil if the queue is empty.
func (q *EventQueue) PopNext() *Event {
	if q.Len() == 0 {
		return nil
	}
	e := heap.Pop(q).(*Event)
	q.lastTime = e.time
	return e
}

// Peek returns the next event without removing it.
func (q *EventQueue) Peek() *Event {
	if q.Len() == 0 {
		return nil
	}
	return q.events[0]
}

// Clear drops every pending event and returns how many were dropped.
func (q *EventQueue) Clear() int {
	n := len(q.events)
	for _, e := range q.events {
		e.index = -1
	}
	q.events = q.events[:0]
	return n
}
