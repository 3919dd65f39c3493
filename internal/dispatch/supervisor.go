// Package dispatch implements the dispatcher and job/printer state
// machine: job admission, conversion-path selection, pipeline spawning
// with descriptor wiring, child-process lifecycle handling, and the
// retention-window dequeue (spec.md §4). It generalizes the teacher's
// internal/infrastructure/processmgr (ProcessManager/ProcessManager2)
// from supervising one unit per external id to supervising a pipeline
// of conversion stages per job, routed to a printer.
package dispatch

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"imprimer/internal/events"
	"imprimer/internal/printerdev"
	"imprimer/internal/spool"
	"imprimer/internal/typegraph"
)

// RetentionWindow is the default time a terminal job lingers before
// being reclaimed (spec.md §4.5).
const RetentionWindow = 10 * time.Second

// Config tunes the supervisor's admission and retention behavior. All
// fields have sane zero-value-free defaults applied by NewSupervisor.
type Config struct {
	RetentionWindow time.Duration
	MaxPreflight    int // max pipelines in flight (spawned, not yet terminal)
}

// Supervisor owns the printer/job tables, the conversion registry, the
// printer transport, and the event sink, and implements the scanner,
// path selector, spawner, reaper, and retention dequeue as methods.
// All mutating methods are meant to be called from a single foreground
// goroutine, per spec.md §5; the only concurrency is the SIGCHLD
// channel, which is drained rather than handled concurrently.
type Supervisor struct {
	log      *zap.Logger
	registry *typegraph.Registry
	printers *printerdev.Transport
	sink     events.Sink
	tables   *spool.Tables

	retention time.Duration
	preflight *slotPool
	deadlines *retentionScheduler

	pidToJob map[int]int // leader pid -> job id

	sigCh chan os.Signal
}

// NewSupervisor wires a Supervisor from its collaborators.
func NewSupervisor(log *zap.Logger, registry *typegraph.Registry, printers *printerdev.Transport, sink events.Sink, cfg Config) *Supervisor {
	if cfg.RetentionWindow <= 0 {
		cfg.RetentionWindow = RetentionWindow
	}
	if cfg.MaxPreflight <= 0 {
		cfg.MaxPreflight = 8
	}

	s := &Supervisor{
		log:       log.Named("dispatch"),
		registry:  registry,
		printers:  printers,
		sink:      sink,
		tables:    spool.NewTables(),
		retention: cfg.RetentionWindow,
		preflight: newSlotPool(cfg.MaxPreflight),
		deadlines: newRetentionScheduler(),
		pidToJob:  make(map[int]int),
		sigCh:     make(chan os.Signal, 1),
	}

	signal.Notify(s.sigCh, syscall.SIGCHLD)
	return s
}

// Tables exposes the underlying printer/job tables for the command
// surface's read-only `printers`/`jobs` enumeration.
func (s *Supervisor) Tables() *spool.Tables { return s.tables }

// Registry exposes the conversion registry for the command surface's
// type/conversion declaration verbs.
func (s *Supervisor) Registry() *typegraph.Registry { return s.registry }

// PreBlock is the line source's pre-block hook (spec.md §5): drains the
// reaper if a SIGCHLD arrived, then runs retention, then the scanner.
func (s *Supervisor) PreBlock() {
	select {
	case <-s.sigCh:
		s.Drain()
	default:
	}
	s.Retain()
	s.Tick()
}

// AfterDispatch is the second scanner/retention invocation point
// (spec.md §4.1, §4.5): run after every command has been parsed and
// dispatched, independent of the pre-block hook.
func (s *Supervisor) AfterDispatch() {
	s.Retain()
	s.Tick()
}

// Tick is the scanner (spec.md §4.1): iterate jobs in id order; for
// each `created` job, ask the path selector for a candidate printer,
// and if one exists, hand the pair to the spawner.
func (s *Supervisor) Tick() {
	for _, job := range s.tables.Jobs {
		if job == nil || job.Status != spool.JobCreated {
			continue
		}

		if !s.preflight.tryAcquire(job.ID) {
			continue // at capacity; retry next tick
		}

		printer, path, ok := s.selectPrinter(job)
		if !ok {
			s.preflight.release(job.ID)
			continue
		}

		if !s.spawn(job, printer, path) {
			// Dispatch error (printer open / fork failure): not runnable
			// this tick, retried next tick (spec.md §4.3 last paragraph).
			s.preflight.release(job.ID)
		}
	}
}

// selectPrinter is the path selector (spec.md §4.2).
func (s *Supervisor) selectPrinter(job *spool.Job) (*spool.Printer, []typegraph.Edge, bool) {
	for _, p := range s.tables.Printers {
		if !job.Eligibility.Has(p.ID) {
			continue
		}
		if p.Status != spool.PrinterIdle {
			continue
		}
		path, ok := s.registry.FindConversionPath(job.SourceType, p.Type)
		if !ok {
			continue
		}
		return p, path, true
	}
	return nil, nil, false
}

// Retain is the retention dequeue (spec.md §4.5): pops every job whose
// deadline has matured from the scheduler instead of rescanning the
// whole job table every tick (see retentionScheduler).
func (s *Supervisor) Retain() {
	for _, jobID := range s.deadlines.popDue(time.Now()) {
		job, err := s.tables.Job(jobID)
		if err != nil {
			continue // already reclaimed by some other path
		}

		job.Status = spool.JobDeleted
		s.sink.JobDeleted(job.ID, job.Correlation)
		s.sink.JobStatus(job.ID, job.Correlation, job.Status.String())
		s.tables.FreeJob(job.ID)
	}
}

// markTerminal stamps completion, clears the process-group mapping,
// releases the preflight slot, schedules the job's retention deadline,
// and returns the printer (if any) to idle unless it was
// administratively disabled in the meantime (spec.md §4.4, §9).
func (s *Supervisor) markTerminal(job *spool.Job, status spool.JobStatus) {
	job.Status = status
	now := time.Now()
	s.tables.Completed[job.ID] = now
	s.deadlines.push(job.ID, now.Add(s.retention))
	delete(s.pidToJob, s.tables.Pgid[job.ID])
	delete(s.tables.Pgid, job.ID)
	s.preflight.release(job.ID)

	if job.Printer >= 0 {
		p := s.tables.Printers[job.Printer]
		if p.Status != spool.PrinterDisabled {
			p.Status = spool.PrinterIdle
			s.sink.PrinterStatus(p.ID, p.Name, p.Status.String())
		}
	}
}

