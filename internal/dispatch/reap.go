//go:build linux

package dispatch

import (
	"syscall"

	"go.uber.org/zap"

	"imprimer/internal/spool"
)

// Drain is the reaper (spec.md §4.4). It non-blockingly collects every
// pending stopped/continued/exited leader, translating each wait
// status into the matching job/printer transition, until no more
// statuses are available. This is the Go rendering of
// original_source/src/cli.c's readline_callback: the signal handler
// itself (registered in NewSupervisor via signal.Notify) does no
// substantive work, it only lets a SIGCHLD value sit in a
// size-1-buffered channel; Drain is what actually reaps.
func (s *Supervisor) Drain() {
	var ws syscall.WaitStatus

	for {
		pid, err := syscall.Wait4(-1, &ws, syscall.WNOHANG|syscall.WUNTRACED|syscall.WCONTINUED, nil)
		if err != nil || pid <= 0 {
			return
		}

		jobID, ok := s.pidToJob[pid]
		if !ok {
			continue // not one of our pipeline leaders
		}
		job, err := s.tables.Job(jobID)
		if err != nil {
			continue
		}

		switch {
		case ws.Exited():
			if code := ws.ExitStatus(); code == 0 {
				s.markTerminal(job, spool.JobFinished)
				s.sink.JobFinished(job.ID, job.Correlation, code)
			} else {
				s.markTerminal(job, spool.JobAborted)
				s.sink.JobAborted(job.ID, job.Correlation, code)
			}
			s.sink.JobStatus(job.ID, job.Correlation, job.Status.String())

		case ws.Signaled():
			signum := int(ws.Signal())
			s.markTerminal(job, spool.JobAborted)
			s.sink.JobAborted(job.ID, job.Correlation, signum)
			s.sink.JobStatus(job.ID, job.Correlation, job.Status.String())

		case ws.Stopped():
			// Printer status is left unchanged: the pipeline still
			// holds the printer descriptor (spec.md §4.4).
			job.Status = spool.JobPaused
			s.sink.JobStatus(job.ID, job.Correlation, job.Status.String())

		case ws.Continued():
			job.Status = spool.JobRunning
			s.sink.JobStatus(job.ID, job.Correlation, job.Status.String())

		default:
			s.log.Debug("unrecognized wait status", zap.Int("pid", pid), zap.Uint32("raw", uint32(ws)))
		}
	}
}
