// Package recording exports station runs to a SQLite database, one row per
// recorded value, for analysis outside the simulator.
package recording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	// SQLite driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/station-sim/station-sim/sim/station"
)

var schema = []string{
	`CREATE TABLE runs (
	run_id TEXT PRIMARY KEY,
	scenario TEXT,
	seed INTEGER,
	horizon REAL,
	flow_rate REAL,
	arrival_mode TEXT,
	events_fired INTEGER,
	events_dropped INTEGER
);`,
	`CREATE TABLE pools (
	run_id TEXT,
	fuel TEXT,
	pumps INTEGER,
	arrivals INTEGER,
	in_station INTEGER,
	grants INTEGER,
	releases INTEGER,
	max_queue_len INTEGER,
	busy_time REAL,
	queue_time REAL,
	utilization REAL,
	mean_queue_len REAL
);`,
	`CREATE TABLE wait_times (run_id TEXT, fuel TEXT, seq INTEGER, minutes REAL);`,
	`CREATE TABLE total_times (run_id TEXT, fuel TEXT, seq INTEGER, minutes REAL);`,
	`CREATE TABLE service_times (run_id TEXT, fuel TEXT, seq INTEGER, minutes REAL);`,
	`CREATE TABLE queue_samples (run_id TEXT, fuel TEXT, seq INTEGER, time REAL, length INTEGER);`,
}

var inserts = map[string]string{
	"runs":          `INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	"pools":         `INSERT INTO pools VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	"wait_times":    `INSERT INTO wait_times VALUES (?, ?, ?, ?)`,
	"total_times":   `INSERT INTO total_times VALUES (?, ?, ?, ?)`,
	"service_times": `INSERT INTO service_times VALUES (?, ?, ?, ?)`,
	"queue_samples": `INSERT INTO queue_samples VALUES (?, ?, ?, ?, ?)`,
}

// flush order keeps runs ahead of the rows that reference them
var tableOrder = []string{"runs", "pools", "wait_times", "total_times", "service_times", "queue_samples"}

// Recorder buffers rows in memory and writes them in batched transactions.
type Recorder struct {
	db        *sql.DB
	path      string
	batchSize int
	pending   map[string][][]any
	count     int
	closed    bool
}

// New creates the database at path and its tables. An empty path picks a
// unique name in the working directory. An existing file is an error.
func New(path string) (*Recorder, error) {
	if path == "" {
		path = "station_sim_" + xid.New().String() + ".sqlite3"
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("recording database %s already exists", path)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema in %s: %w", path, err)
		}
	}
	r := &Recorder{
		db:        db,
		path:      path,
		batchSize: 50000,
		pending:   make(map[string][][]any),
	}
	atexit.Register(func() {
		if err := r.Close(); err != nil {
			logrus.Errorf("closing recording %s: %v", r.path, err)
		}
	})
	logrus.Infof("Recording runs to %s", path)
	return r, nil
}

// Path returns the database file name.
func (r *Recorder) Path() string {
	return r.path
}

func (r *Recorder) add(table string, args ...any) {
	r.pending[table] = append(r.pending[table], args)
	r.count++
}

// WriteRun queues every value of res under runID.
func (r *Recorder) WriteRun(runID, scenario string, res *station.Result) error {
	if r.closed {
		return errors.New("recording is closed")
	}
	cfg := res.Config
	r.add("runs", runID, scenario, cfg.Seed, cfg.Horizon, cfg.FlowRate, cfg.Mode(), res.EventsFired, res.EventsDropped)
	for _, f := range cfg.Fuels {
		p := res.Pools[f.Name]
		r.add("pools", runID, f.Name, p.Capacity, res.Arrivals[f.Name], res.InStation[f.Name],
			p.Grants, p.Releases, p.MaxQueueLen, p.BusyTime, p.QueueTime, p.Utilization, p.MeanQueueLen)

		m := res.Metrics.Fuel(f.Name)
		for i, v := range m.WaitTimes {
			r.add("wait_times", runID, f.Name, i, v)
		}
		for i, v := range m.TotalTimes {
			r.add("total_times", runID, f.Name, i, v)
		}
		for i, v := range m.ServiceTimes {
			r.add("service_times", runID, f.Name, i, v)
		}
		for i, q := range m.QueueSamples {
			r.add("queue_samples", runID, f.Name, i, q.Time, q.Length)
		}
	}
	if r.count >= r.batchSize {
		return r.Flush()
	}
	return nil
}

// Flush writes all buffered rows in a single transaction.
func (r *Recorder) Flush() error {
	if r.count == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for _, table := range tableOrder {
		rows := r.pending[table]
		if len(rows) == 0 {
			continue
		}
		stmt, err := tx.Prepare(inserts[table])
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("preparing insert into %s: %w", table, err)
		}
		for _, args := range rows {
			if _, err := stmt.Exec(args...); err != nil {
				stmt.Close()
				tx.Rollback()
				return fmt.Errorf("inserting into %s: %w", table, err)
			}
		}
		stmt.Close()
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %d rows: %w", r.count, err)
	}
	logrus.Debugf("flushed %d rows to %s", r.count, r.path)
	r.pending = make(map[string][][]any)
	r.count = 0
	return nil
}

// Close flushes and closes the database. Closing twice is a no-op.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	ferr := r.Flush()
	return errors.Join(ferr, r.db.Close())
}
