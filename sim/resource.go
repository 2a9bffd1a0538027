// Implements the Resource pool: a fixed number of slots handed out to
// requesting processes in strict arrival order.

package sim

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// RequestState is the lifecycle state of a Request.
type RequestState int

const (
	RequestQueued RequestState = iota
	RequestGranted
	RequestReleased
	RequestCancelled
)

func (s RequestState) String() string {
	switch s {
	case RequestQueued:
		return "queued"
	case RequestGranted:
		return "granted"
	case RequestReleased:
		return "released"
	case RequestCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("RequestState(%d)", int(s))
	}
}

// Request ties a process to a slot of a Resource.
type Request struct {
	id          uint64
	resource    *Resource
	proc        *Process
	onGrant     Step
	state       RequestState
	requestedAt float64
	grantedAt   float64
	releasedAt  float64
}

// ID returns the request's position in the resource's request order (1-based).
func (r *Request) ID() uint64 { return r.id }

// Process returns the requesting process.
func (r *Request) Process() *Process { return r.proc }

// State returns the current lifecycle state.
func (r *Request) State() RequestState { return r.state }

// RequestedAt returns the time the request was made.
func (r *Request) RequestedAt() float64 { return r.requestedAt }

// GrantedAt returns the time the slot was granted. Zero until granted.
func (r *Request) GrantedAt() float64 { return r.grantedAt }

// ReleasedAt returns the time the slot was released. Zero until released.
func (r *Request) ReleasedAt() float64 { return r.releasedAt }

// Release gives the slot back to its resource.
func (r *Request) Release() {
	r.resource.Release(r)
}

// ResourceStats accumulates usage of a Resource over simulated time.
type ResourceStats struct {
	Requests      int
	Grants        int
	Releases      int
	Cancellations int
	MaxQueueLen   int
	// BusyTime is the time integral of occupied slots (slot-minutes).
	BusyTime float64
	// QueueTime is the time integral of the wait queue length (vehicle-minutes).
	QueueTime float64
	// Elapsed is the simulated time covered by the integrals.
	Elapsed float64
}

// Utilization returns the mean fraction of slots in use over Elapsed.
func (s ResourceStats) Utilization(capacity int) float64 {
	if s.Elapsed <= 0 || capacity <= 0 {
		return 0
	}
	return s.BusyTime / (s.Elapsed * float64(capacity))
}

// MeanQueueLen returns the time-average wait queue length over Elapsed.
func (s ResourceStats) MeanQueueLen() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return s.QueueTime / s.Elapsed
}

// Resource is a capacity-bounded pool of slots with a FIFO wait queue.
// Its state is mutated only through Request, Release and Cancel.
type Resource struct {
	name     string
	sim      *Simulator
	capacity int
	inUse    int
	waitQ    []*Request // FIFO queue of pending requests
	nextID   uint64

	stats      ResourceStats
	lastUpdate float64
}

// NewResource creates a pool with capacity slots. Panics if capacity < 1.
func NewResource(sim *Simulator, name string, capacity int) *Resource {
	if capacity < 1 {
		panic(fmt.Sprintf("NewResource(%s): capacity must be positive, got %d", name, capacity))
	}
	return &Resource{
		name:       name,
		sim:        sim,
		capacity:   capacity,
		waitQ:      make([]*Request, 0),
		lastUpdate: sim.clock,
	}
}

// Name returns the pool name.
func (r *Resource) Name() string { return r.name }

// Capacity returns the number of slots.
func (r *Resource) Capacity() int { return r.capacity }

// InUse returns the number of granted, unreleased slots.
func (r *Resource) InUse() int { return r.inUse }

// QueueLen returns the number of requests waiting for a slot.
func (r *Resource) QueueLen() int { return len(r.waitQ) }

// Stats returns usage statistics accumulated up to the current time.
func (r *Resource) Stats() ResourceStats {
	r.accumulate()
	return r.stats
}

func (r *Resource) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s{in_use=%d/%d queue=[", r.name, r.inUse, r.capacity)
	for i, req := range r.waitQ {
		sb.WriteString(req.proc.name)
		if i < len(r.waitQ)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]}")
	return sb.String()
}

// accumulate integrates slot and queue occupancy since the last change.
func (r *Resource) accumulate() {
	now := r.sim.clock
	dt := now - r.lastUpdate
	if dt > 0 {
		r.stats.BusyTime += float64(r.inUse) * dt
		r.stats.QueueTime += float64(len(r.waitQ)) * dt
		r.stats.Elapsed += dt
	}
	r.lastUpdate = now
}

// Request asks for a slot on behalf of the running process p and suspends it.
// If a slot is free it is granted at once and p resumes with onGrant at the
// current time; otherwise p waits behind every earlier request.
func (r *Resource) Request(p *Process, onGrant Step) *Request {
	p.mustSuspend("Request")
	if onGrant == nil {
		panic("Request: onGrant must not be nil")
	}
	r.accumulate()
	r.nextID++
	req := &Request{
		id:          r.nextID,
		resource:    r,
		proc:        p,
		onGrant:     onGrant,
		state:       RequestQueued,
		requestedAt: r.sim.clock,
	}
	r.waitQ = append(r.waitQ, req)
	r.stats.Requests++
	p.request = req
	p.state = ProcessWaiting
	r.dispatch()
	if len(r.waitQ) > r.stats.MaxQueueLen {
		r.stats.MaxQueueLen = len(r.waitQ)
	}
	return req
}

// Release returns the slot held by req and hands it to the head of the queue.
// Releasing a request that is not currently granted panics.
func (r *Resource) Release(req *Request) {
	if req == nil {
		panic(fmt.Sprintf("Release(%s): request must not be nil", r.name))
	}
	if req.resource != r {
		panic(fmt.Sprintf("Release(%s): request belongs to %s", r.name, req.resource.name))
	}
	if req.state != RequestGranted {
		panic(fmt.Sprintf("Release(%s): request %d of %s is %s, not granted", r.name, req.id, req.proc.name, req.state))
	}
	r.accumulate()
	req.state = RequestReleased
	req.releasedAt = r.sim.clock
	r.inUse--
	r.stats.Releases++
	logrus.Debugf("[t %010.3f] %s released %s", r.sim.clock, req.proc.name, r.name)
	r.dispatch()
}

// Cancel withdraws a request that is still queued. The waiting process has
// nothing left to resume with and is terminated. Returns false if req was
// not queued.
func (r *Resource) Cancel(req *Request) bool {
	if req == nil || req.resource != r || req.state != RequestQueued {
		return false
	}
	for i, queued := range r.waitQ {
		if queued != req {
			continue
		}
		r.accumulate()
		r.waitQ = append(r.waitQ[:i], r.waitQ[i+1:]...)
		req.state = RequestCancelled
		req.proc.request = nil
		req.proc.state = ProcessTerminated
		r.stats.Cancellations++
		return true
	}
	return false
}

// dispatch grants free slots to the head of the queue, one request at a time.
func (r *Resource) dispatch() {
	for r.inUse < r.capacity && len(r.waitQ) > 0 {
		req := r.waitQ[0]
		r.waitQ[0] = nil
		r.waitQ = r.waitQ[1:]
		r.inUse++
		req.state = RequestGranted
		req.grantedAt = r.sim.clock
		r.stats.Grants++
		logrus.Debugf("[t %010.3f] %s granted %s (%d/%d)", r.sim.clock, req.proc.name, r.name, r.inUse, r.capacity)
		req.proc.wake(req.onGrant)
	}
}
