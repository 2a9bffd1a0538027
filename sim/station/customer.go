package station

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/station-sim/station-sim/sim"
)

// CustomerState is the stage of a vehicle's visit.
type CustomerState int

const (
	CustomerArrived CustomerState = iota
	CustomerQueued
	CustomerServing
	CustomerDone
)

func (s CustomerState) String() string {
	switch s {
	case CustomerArrived:
		return "arrived"
	case CustomerQueued:
		return "queued"
	case CustomerServing:
		return "serving"
	case CustomerDone:
		return "done"
	default:
		return fmt.Sprintf("CustomerState(%d)", int(s))
	}
}

// customer is one vehicle's visit: ARRIVED → QUEUED → SERVING → DONE.
type customer struct {
	st      *Station
	name    string
	fuel    string
	pool    *sim.Resource
	state   CustomerState
	arrival float64
	req     *sim.Request
}

// arrive records the contention seen on entry and joins the pool's queue.
// The arriving vehicle counts itself as waiting.
func (c *customer) arrive(p *sim.Process) {
	c.arrival = p.Now()
	c.st.present[c.fuel]++
	c.st.metrics.RecordQueueSample(c.fuel, c.arrival, c.pool.QueueLen()+1)
	logrus.Debugf("[t %010.3f] %s arrived (queue %d, in use %d/%d)",
		c.arrival, c.name, c.pool.QueueLen(), c.pool.InUse(), c.pool.Capacity())
	c.state = CustomerQueued
	c.req = c.pool.Request(p, c.serve)
}

// serve runs once the pump is granted and holds it for fueling plus payment.
func (c *customer) serve(p *sim.Process) {
	c.state = CustomerServing
	wait := p.Now() - c.arrival
	c.st.metrics.RecordWait(c.fuel, wait)

	liters, err := c.st.hooks.SampleLiters(c.fuel)
	if err != nil {
		c.st.fail(fmt.Errorf("sampling liters for %s: %w", c.name, err))
		return
	}
	if !(liters > 0) || math.IsInf(liters, 0) {
		c.st.fail(fmt.Errorf("sampling liters for %s: got %v, want a finite positive value", c.name, liters))
		return
	}
	payment, err := c.st.hooks.SamplePaymentTime()
	if err != nil {
		c.st.fail(fmt.Errorf("sampling payment time for %s: %w", c.name, err))
		return
	}
	if !(payment >= 0) || math.IsInf(payment, 0) {
		c.st.fail(fmt.Errorf("sampling payment time for %s: got %v, want a finite non-negative value", c.name, payment))
		return
	}

	service := liters/c.st.cfg.FlowRate + payment
	logrus.Debugf("[t %010.3f] %s serving after %.3f min wait: %.1f L + %.2f min payment",
		p.Now(), c.name, wait, liters, payment)
	p.Timeout(service, c.depart)
}

// depart frees the pump and records the visit.
func (c *customer) depart(p *sim.Process) {
	c.req.Release()
	now := p.Now()
	c.state = CustomerDone
	c.st.present[c.fuel]--
	c.st.metrics.RecordTotal(c.fuel, now-c.arrival)
	c.st.metrics.RecordService(c.fuel, now-c.req.GrantedAt())
	c.st.metrics.RecordQueueSample(c.fuel, now, c.pool.QueueLen())
	logrus.Debugf("[t %010.3f] %s departed after %.3f min", now, c.name, now-c.arrival)
}
