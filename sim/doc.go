// Package sim provides the discrete-event simulation kernel used by the
// filling-station model.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - event.go / event_queue.go: events and their (time, sequence) ordering
//   - simulator.go: the clock and the event loop
//   - process.go: cooperative processes expressed as chains of steps
//   - resource.go: capacity-bounded pools with a FIFO wait queue
//
// # Execution model
//
// The kernel is single-threaded. A process runs one Step at a time and may
// suspend only by calling Process.Timeout or Resource.Request before its step
// returns. A step that returns without suspending terminates the process.
// Every resumption is an Event popped from the EventQueue; processes never
// call each other directly.
//
// Events at the same time fire in the order they were scheduled, so a run is
// fully reproducible given the same seed and the same sampling order.
package sim
