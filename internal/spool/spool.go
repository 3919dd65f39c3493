// Package spool holds the printer/job data model: the typed status
// values, the slot tables that own printers and jobs (they have no fixed
// capacity and grow as printers and jobs are added), and the
// auxiliary side-tables the dispatcher consults (process-group id,
// completion timestamp, correlation id).
package spool

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"imprimer/internal/typegraph"
)

// PrinterStatus is a printer's position in its small state machine.
type PrinterStatus int

const (
	PrinterDisabled PrinterStatus = iota
	PrinterIdle
	PrinterBusy
)

func (s PrinterStatus) String() string {
	switch s {
	case PrinterDisabled:
		return "disabled"
	case PrinterIdle:
		return "idle"
	case PrinterBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// JobStatus is a job's position in its state machine.
type JobStatus int

const (
	JobCreated JobStatus = iota
	JobRunning
	JobPaused
	JobFinished
	JobAborted
	JobDeleted
)

func (s JobStatus) String() string {
	switch s {
	case JobCreated:
		return "created"
	case JobRunning:
		return "running"
	case JobPaused:
		return "paused"
	case JobFinished:
		return "finished"
	case JobAborted:
		return "aborted"
	case JobDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

func (s JobStatus) Terminal() bool { return s == JobFinished || s == JobAborted }

// Printer is a declared print destination. Created by the `printer`
// command; never destroyed during a session (§3).
type Printer struct {
	ID     int
	Name   string
	Type   typegraph.Type
	Status PrinterStatus
}

// Job is one print request moving through the dispatcher's state
// machine (§3).
type Job struct {
	ID          int
	SourceType  typegraph.Type
	Status      JobStatus
	Eligibility Bitset // eligible printer ids, frozen at creation
	File        string

	// Printer is the selected printer, set by the spawner when the job
	// starts; it keeps that value after the job reaches a terminal state.
	Printer int // -1 when none selected

	// Path is the ordered conversion path chosen for this job. Immutable
	// once attached (§4.2, §9 "immutable owned sequence"); nil for an
	// empty (no-conversion) path, which is a distinct state from "not
	// yet selected" (tracked via PathChosen).
	Path       []typegraph.Edge
	PathChosen bool

	// Correlation is an ambient per-job identifier threaded through
	// event-sink notifications and log fields, generalized from the
	// teacher's per-HTTP-request id (internal/http/middleware/request_id.go).
	Correlation uuid.UUID
}

// Bitset is a small fixed-growth set of printer ids.
type Bitset struct {
	bits map[int]struct{}
}

// AllPrinters constructs a Bitset containing every id in [0, n).
func AllPrinters(n int) Bitset {
	b := Bitset{bits: make(map[int]struct{}, n)}
	for i := 0; i < n; i++ {
		b.bits[i] = struct{}{}
	}
	return b
}

// NewBitset constructs a Bitset containing exactly the given ids.
func NewBitset(ids ...int) Bitset {
	b := Bitset{bits: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		b.bits[id] = struct{}{}
	}
	return b
}

func (b Bitset) Has(id int) bool {
	_, ok := b.bits[id]
	return ok
}

// Tables owns the printer and job slots plus the dispatcher's
// auxiliary side-tables. Printer slots are never reclaimed; job slots
// are reclaimed by the retention dequeue and reused by later `print`
// commands, mirroring the teacher's PIDAllocator wrap-around reuse
// scheme generalized from pids to job ids.
type Tables struct {
	Printers []*Printer
	Jobs     []*Job // nil entries are free slots

	Pgid       map[int]int       // job id -> active process-group id (0 = none)
	Completed  map[int]time.Time // job id -> terminal-transition time
	freeJobIDs []int
}

// NewTables returns an empty set of tables.
func NewTables() *Tables {
	return &Tables{
		Pgid:      make(map[int]int),
		Completed: make(map[int]time.Time),
	}
}

// AddPrinter appends a new disabled printer and returns it. Names must
// be unique; the caller (dispatch.Supervisor.AddPrinter) is responsible
// for checking that before calling.
func (t *Tables) AddPrinter(name string, ty typegraph.Type) *Printer {
	p := &Printer{ID: len(t.Printers), Name: name, Type: ty, Status: PrinterDisabled}
	t.Printers = append(t.Printers, p)
	return p
}

// FindPrinterByName returns the printer with the given name, if any.
func (t *Tables) FindPrinterByName(name string) (*Printer, bool) {
	for _, p := range t.Printers {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// NewJob allocates a job slot, reusing a freed one if available, and
// returns the job in the `created` state.
func (t *Tables) NewJob(ty typegraph.Type, eligibility Bitset, file string) *Job {
	j := &Job{
		SourceType:  ty,
		Status:      JobCreated,
		Eligibility: eligibility,
		File:        file,
		Printer:     -1,
		Correlation: uuid.New(),
	}

	if n := len(t.freeJobIDs); n > 0 {
		id := t.freeJobIDs[n-1]
		t.freeJobIDs = t.freeJobIDs[:n-1]
		j.ID = id
		t.Jobs[id] = j
		return j
	}

	j.ID = len(t.Jobs)
	t.Jobs = append(t.Jobs, j)
	return j
}

// Job returns the job with the given id, or an error if the slot is
// free or out of range.
func (t *Tables) Job(id int) (*Job, error) {
	if id < 0 || id >= len(t.Jobs) || t.Jobs[id] == nil {
		return nil, fmt.Errorf("no such job %d", id)
	}
	return t.Jobs[id], nil
}

// FreeJob reclaims a job's slot for reuse by a later `print` command.
// Must only be called once the job has reached `deleted`.
func (t *Tables) FreeJob(id int) {
	if id < 0 || id >= len(t.Jobs) || t.Jobs[id] == nil {
		return
	}
	t.Jobs[id] = nil
	delete(t.Pgid, id)
	delete(t.Completed, id)
	t.freeJobIDs = append(t.freeJobIDs, id)
}
