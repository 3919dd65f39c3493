//go:build linux

package dispatch

import (
	"fmt"
	"syscall"
	"time"

	"imprimer/internal/spool"
)

// Cancel implements the `cancel` command (spec.md §4.7). A job with an
// active process group is group-terminated (continued first if
// paused, so the termination can be delivered); a job still `created`
// is transitioned straight to `aborted` with exit 0, preserving
// original_source/src/cli.c's behavior per spec.md §9's first open
// question. Any other status is already terminal and is reported as
// an error.
func (s *Supervisor) Cancel(jobID int) error {
	job, err := s.tables.Job(jobID)
	if err != nil {
		return err
	}

	if pgid := s.tables.Pgid[jobID]; pgid != 0 {
		if job.Status == spool.JobPaused {
			_ = syscall.Kill(-pgid, syscall.SIGCONT)
		}
		return syscall.Kill(-pgid, syscall.SIGTERM)
	}

	if job.Status == spool.JobCreated {
		job.Status = spool.JobAborted
		now := time.Now()
		s.tables.Completed[jobID] = now
		s.deadlines.push(jobID, now.Add(s.retention))
		s.sink.JobAborted(job.ID, job.Correlation, 0)
		s.sink.JobStatus(job.ID, job.Correlation, job.Status.String())
		return nil
	}

	return fmt.Errorf("job %d is already terminal", jobID)
}

// Pause implements the `pause` command (spec.md §4.7): stop the whole
// process group. The reaper transitions the job to `paused` once the
// stop is observed.
func (s *Supervisor) Pause(jobID int) error {
	job, err := s.tables.Job(jobID)
	if err != nil {
		return err
	}
	pgid := s.tables.Pgid[jobID]
	if pgid == 0 {
		return fmt.Errorf("job %d has no active process group", jobID)
	}
	_ = job
	return syscall.Kill(-pgid, syscall.SIGSTOP)
}

// Resume implements the `resume` command (spec.md §4.7): continue the
// whole process group. The reaper transitions the job to `running`
// once the continue is observed.
func (s *Supervisor) Resume(jobID int) error {
	job, err := s.tables.Job(jobID)
	if err != nil {
		return err
	}
	pgid := s.tables.Pgid[jobID]
	if pgid == 0 {
		return fmt.Errorf("job %d has no active process group", jobID)
	}
	_ = job
	return syscall.Kill(-pgid, syscall.SIGCONT)
}

// SetPrinterStatus implements `disable`/`enable` (spec.md §4.6). The
// operator may move a printer between idle and disabled, and may
// disable a busy printer without interrupting its pipeline; a request
// to set a busy printer idle is ignored, since busy->idle is driven
// only by the reaper. A notification fires only when the status
// actually changes.
func (s *Supervisor) SetPrinterStatus(printerID int, want spool.PrinterStatus) error {
	if printerID < 0 || printerID >= len(s.tables.Printers) {
		return fmt.Errorf("no such printer %d", printerID)
	}
	if want != spool.PrinterIdle && want != spool.PrinterDisabled {
		return fmt.Errorf("operator may only set idle or disabled")
	}

	p := s.tables.Printers[printerID]
	if p.Status == spool.PrinterBusy {
		// Accepted administratively; the running pipeline is not
		// interrupted (spec.md §4.6, §9's second open question).
		if want == spool.PrinterDisabled {
			p.Status = spool.PrinterDisabled
			s.sink.PrinterStatus(p.ID, p.Name, p.Status.String())
		}
		return nil
	}

	if p.Status == want {
		return nil
	}
	p.Status = want
	s.sink.PrinterStatus(p.ID, p.Name, p.Status.String())
	return nil
}
